package token

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrTokenize reports source that cannot be lexed
var ErrTokenize = errors.New("failed to tokenize")

var operators = [3][]string{
	{"(", ")", "[", "]", "{", "}", ":", ",", ";", "+", "-", "*", "/", "|", "&", "<", ">", "=", ".", "%", "~", "^", "@", "!"},
	{"**", "//", ">>", "<<", "<=", ">=", "==", "!=", "<>", "->", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=", ":="},
	{"**=", "//=", ">>=", "<<=", "..."},
}

var stringPrefixes = map[string]bool{
	"r": true, "u": true, "b": true, "f": true, "t": true,
	"br": true, "rb": true, "fr": true, "rf": true, "tr": true, "rt": true,
}

type lexer struct {
	src         string
	pos         int
	line        int
	col         int
	depth       int
	indents     []int
	lineStart   bool
	lineHasCode bool
	tokens      []Token
}

// Tokenize splits Python source into a lossless token stream
func Tokenize(src string) (*Stream, error) {
	l := &lexer{src: src, line: 1, indents: []int{0}, lineStart: true}
	if err := l.run(); err != nil {
		return nil, err
	}
	return NewStream(l.tokens), nil
}

func (l *lexer) run() error {
	for l.pos < len(l.src) {
		if l.lineStart {
			l.lineStart = false
			if err := l.indentation(); err != nil {
				return err
			}
			continue
		}
		if err := l.scan(); err != nil {
			return err
		}
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(Dedent, 0)
	}
	l.emit(EndMarker, 0)
	return nil
}

// indentation handles the leading whitespace of a logical line
func (l *lexer) indentation() error {
	end, width := l.pos, 0
scan:
	for ; end < len(l.src); end++ {
		switch l.src[end] {
		case ' ':
			width++
		case '\t':
			width = (width/8 + 1) * 8
		case '\f':
			width = 0
		default:
			break scan
		}
	}
	rest := l.src[end:]
	blank := rest == "" || rest[0] == '#' || rest[0] == '\n' || rest[0] == '\\' || strings.HasPrefix(rest, "\r\n")
	if !blank {
		if width > l.indents[len(l.indents)-1] {
			l.indents = append(l.indents, width)
			l.emit(Indent, 0)
		}
		for width < l.indents[len(l.indents)-1] {
			l.indents = l.indents[:len(l.indents)-1]
			l.emit(Dedent, 0)
		}
		if width != l.indents[len(l.indents)-1] {
			return l.errorf("unindent does not match any outer indentation level")
		}
	}
	if end > l.pos {
		l.emit(Whitespace, end-l.pos)
	}
	return nil
}

func (l *lexer) scan() error {
	rest := l.src[l.pos:]
	c := rest[0]
	switch {
	case c == ' ' || c == '\t' || c == '\f':
		n := 1
		for n < len(rest) && (rest[n] == ' ' || rest[n] == '\t' || rest[n] == '\f') {
			n++
		}
		l.emit(Whitespace, n)
	case c == '\n':
		l.newline(1)
	case c == '\r':
		if strings.HasPrefix(rest, "\r\n") {
			l.newline(2)
			return nil
		}
		l.emit(Whitespace, 1)
	case c == '#':
		n := strings.IndexAny(rest, "\r\n")
		if n < 0 {
			n = len(rest)
		}
		l.emit(Comment, n)
	case c == '\\':
		switch {
		case strings.HasPrefix(rest, "\\\n"):
			l.emit(EscapedNL, 2)
		case strings.HasPrefix(rest, "\\\r\n"):
			l.emit(EscapedNL, 3)
		default:
			return l.errorf("unexpected character after line continuation")
		}
	case c == '"' || c == '\'':
		return l.string(l.pos)
	case isDigit(c) || (c == '.' && len(rest) > 1 && isDigit(rest[1])):
		l.emit(Number, numberLen(rest))
	default:
		r, _ := utf8.DecodeRuneInString(rest)
		if isIdentStart(r) {
			n := identifierLen(rest)
			if n < len(rest) && (rest[n] == '"' || rest[n] == '\'') && stringPrefixes[strings.ToLower(rest[:n])] {
				return l.string(l.pos + n)
			}
			l.emit(Name, n)
			return nil
		}
		n := operatorLen(rest)
		if n == 0 {
			return l.errorf(fmt.Sprintf("unexpected character %q", r))
		}
		switch rest[:n] {
		case "(", "[", "{":
			l.depth++
		case ")", "]", "}":
			if l.depth > 0 {
				l.depth--
			}
		}
		l.emit(Op, n)
	}
	return nil
}

func (l *lexer) newline(n int) {
	kind := NL
	if l.depth == 0 && l.lineHasCode {
		kind = Newline
	}
	l.emit(kind, n)
	if l.depth == 0 {
		l.lineStart = true
		l.lineHasCode = false
	}
}

// string emits a string literal whose opening quote is at quoteAt
func (l *lexer) string(quoteAt int) error {
	prefix := strings.ToLower(l.src[l.pos:quoteAt])
	quote := l.src[quoteAt : quoteAt+1]
	if triple := strings.Repeat(quote, 3); strings.HasPrefix(l.src[quoteAt:], triple) {
		quote = triple
	}
	end, err := l.stringEnd(quoteAt+len(quote), quote, isFormatPrefix(prefix))
	if err != nil {
		return err
	}
	l.emit(String, end-l.pos)
	return nil
}

func (l *lexer) emit(kind Kind, n int) {
	text := l.src[l.pos : l.pos+n]
	l.tokens = append(l.tokens, Token{Kind: kind, Text: text, Line: l.line, Col: l.col})
	l.pos += n
	if idx := strings.LastIndexByte(text, '\n'); idx >= 0 {
		l.line += strings.Count(text, "\n")
		l.col = len(text) - idx - 1
	} else {
		l.col += n
	}
	switch kind {
	case Name, Number, String, Op:
		l.lineHasCode = true
	}
}

func (l *lexer) errorf(msg string) error {
	return fmt.Errorf("%w: %s at line %d, column %d", ErrTokenize, msg, l.line, l.col)
}

func numberLen(s string) int {
	if len(s) > 1 && s[0] == '0' && strings.IndexByte("xXoObB", s[1]) >= 0 {
		i := 2
		for i < len(s) && (isHexDigit(s[i]) || s[i] == '_') {
			i++
		}
		return i
	}
	i := digitsEnd(s, 0)
	if i < len(s) && s[i] == '.' {
		i = digitsEnd(s, i+1)
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			i = digitsEnd(s, j)
		}
	}
	if i < len(s) && (s[i] == 'j' || s[i] == 'J') {
		i++
	}
	return i
}

func digitsEnd(s string, i int) int {
	for i < len(s) && (isDigit(s[i]) || (s[i] == '_' && i+1 < len(s) && isDigit(s[i+1]))) {
		i++
	}
	return i
}

func identifierLen(s string) int {
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isIdentPart(r) {
			break
		}
		i += size
	}
	return i
}

func operatorLen(s string) int {
	for n := len(operators); n > 0; n-- {
		if len(s) < n {
			continue
		}
		for _, candidate := range operators[n-1] {
			if s[:n] == candidate {
				return n
			}
		}
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc)
}
