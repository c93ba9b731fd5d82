package token

import "strings"

// stringEnd returns the index just past the closing quote of a literal whose body starts at p
func (l *lexer) stringEnd(p int, quote string, format bool) (int, error) {
	for p < len(l.src) {
		c := l.src[p]
		switch {
		case c == '\\':
			p += 2
			if p < len(l.src) && l.src[p-1] == '\r' && l.src[p] == '\n' {
				p++
			}
			continue
		case strings.HasPrefix(l.src[p:], quote):
			return p + len(quote), nil
		case c == '\n' && len(quote) == 1:
			return 0, l.errorf("unterminated string literal")
		case format && c == '{':
			if strings.HasPrefix(l.src[p:], "{{") {
				p += 2
				continue
			}
			end, err := l.fieldEnd(p+1, quote)
			if err != nil {
				return 0, err
			}
			p = end
			continue
		}
		p++
	}
	return 0, l.errorf("unterminated string literal")
}

// fieldEnd skips a replacement field expression of a formatted literal
func (l *lexer) fieldEnd(p int, quote string) (int, error) {
	depth := 0
	for p < len(l.src) {
		c := l.src[p]
		switch {
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == '}':
			if depth == 0 {
				return p + 1, nil
			}
			depth--
		case c == ':' && depth == 0:
			return l.specEnd(p+1, quote)
		case c == '"' || c == '\'':
			nested := l.src[p : p+1]
			if triple := strings.Repeat(nested, 3); strings.HasPrefix(l.src[p:], triple) {
				nested = triple
			}
			end, err := l.stringEnd(p+len(nested), nested, isFormatPrefix(prefixBefore(l.src, p)))
			if err != nil {
				return 0, err
			}
			p = end
			continue
		case c == '\n' && len(quote) == 1:
			return 0, l.errorf("unterminated string literal")
		}
		p++
	}
	return 0, l.errorf("unterminated string literal")
}

// specEnd skips a format specification, which may nest replacement fields
func (l *lexer) specEnd(p int, quote string) (int, error) {
	for p < len(l.src) {
		switch l.src[p] {
		case '{':
			end, err := l.fieldEnd(p+1, quote)
			if err != nil {
				return 0, err
			}
			p = end
			continue
		case '}':
			return p + 1, nil
		}
		if strings.HasPrefix(l.src[p:], quote) || (l.src[p] == '\n' && len(quote) == 1) {
			break
		}
		p++
	}
	return 0, l.errorf("unterminated string literal")
}

func prefixBefore(src string, quoteAt int) string {
	start := quoteAt
	for start > 0 {
		c := src[start-1]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			break
		}
		start--
	}
	prefix := strings.ToLower(src[start:quoteAt])
	if !stringPrefixes[prefix] {
		return ""
	}
	return prefix
}

func isFormatPrefix(prefix string) bool {
	return strings.ContainsAny(prefix, "ft")
}
