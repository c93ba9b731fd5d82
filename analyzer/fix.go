package analyzer

import (
	"github.com/viant/trailcomma/inspector/info"
	"github.com/viant/trailcomma/inspector/token"
)

// Class is the rewrite eligibility of a bracketed region
type Class uint8

const (
	Ineligible Class = iota // region is left untouched
	IndentOnly              // only the closing bracket indentation may change
	Eligible                // trailing comma rule applies
)

func (c Class) String() string {
	switch c {
	case IndentOnly:
		return "indent-only"
	case Eligible:
		return "eligible"
	}
	return "ineligible"
}

// Fix describes a matched bracket region
type Fix struct {
	Open        int
	Close       int
	Multiline   bool
	Elements    int
	Trailing    int // index of the trailing comma, -1 when absent
	Kind        info.Kind
	Class       Class
	LoadBearing bool   // trailing comma changes meaning when removed or added
	MinVersion  string // python version required to add a comma
	Indent      string // leading whitespace of the line holding the open bracket
}

// Match finds the closing bracket for the opening bracket at open; false means the region is ambiguous
func Match(open int, tokens *token.Stream) (*Fix, bool) {
	first := tokens.At(open)
	if !first.IsOpenBracket() {
		return nil, false
	}
	fix := &Fix{Open: open, Close: -1, Trailing: -1}
	stack := []string{token.Closer(first.Text)}
	groupHasCode := false
	for i := open + 1; i < tokens.Len(); i++ {
		tok := tokens.At(i)
		switch {
		case tok.Kind == token.NL || tok.Kind == token.Newline:
			fix.Multiline = true
		case tok.IsOpenBracket():
			groupHasCode = true
			stack = append(stack, token.Closer(tok.Text))
		case tok.IsCloseBracket():
			if tok.Text != stack[len(stack)-1] {
				return nil, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				fix.Close = i
			}
		case len(stack) == 1 && tok.IsOp(","):
			if groupHasCode {
				fix.Elements++
			}
			groupHasCode = false
		case !tok.IsNonCoding():
			groupHasCode = true
		}
		if fix.Close != -1 {
			break
		}
	}
	if fix.Close == -1 {
		return nil, false
	}
	if groupHasCode {
		fix.Elements++
	}
	if last := lastCoding(tokens, fix.Close); last > open && tokens.At(last).IsOp(",") {
		fix.Trailing = last
	}
	fix.Indent = lineIndent(tokens, open)
	return fix, true
}

// Analyze matches and classifies the region opened at open, nil means the region is ambiguous
func Analyze(open int, tokens *token.Stream, hint *info.Hint) *Fix {
	fix, ok := Match(open, tokens)
	if !ok {
		return nil
	}
	fix.classify(hint)
	return fix
}

func (f *Fix) classify(hint *info.Hint) {
	if hint == nil {
		if f.Elements >= 2 {
			f.Class = Eligible
		}
		return
	}
	f.Kind = hint.Kind
	f.MinVersion = hint.MinVersion
	if hint.Elements >= 0 {
		f.Elements = hint.Elements
	}
	if hint.Excluded || f.Elements == 0 {
		f.Class = Ineligible
		return
	}
	switch hint.Kind {
	case info.KindUnknown:
		if f.Elements >= 2 {
			f.Class = Eligible
		}
	case info.KindGenerator:
		f.Class = Ineligible
	case info.KindComprehension, info.KindGrouping:
		f.Class = IndentOnly
	case info.KindSubscript:
		switch {
		case f.Elements >= 2:
			f.Class = Eligible
		case hint.Slice:
			f.Class = Ineligible
		default:
			f.Class = IndentOnly
			f.LoadBearing = true
		}
	case info.KindTuple:
		f.Class = Eligible
		f.LoadBearing = f.Elements == 1
	default:
		f.Class = Eligible
	}
}

// OwnLine reports whether the closing bracket starts its own line
func (f *Fix) OwnLine(tokens *token.Stream) bool {
	i := f.Close - 1
	if i > f.Open && tokens.At(i).Kind == token.Whitespace {
		i--
	}
	return i > f.Open && tokens.At(i).Kind == token.NL
}

// lastCoding returns the index of the last coding token before end
func lastCoding(tokens *token.Stream, end int) int {
	i := end - 1
	for i >= 0 && tokens.At(i).IsNonCoding() {
		i--
	}
	return i
}

// lineIndent returns the leading whitespace of the line holding token at i; a multi-line token
// preceding it on that line counts as being on the line where it starts
func lineIndent(tokens *token.Stream, i int) string {
	start := 0
	for j := i - 1; j >= 0; j-- {
		tok := tokens.At(j)
		if tok.IsLineBreak() {
			start = j + 1
			break
		}
	}
	for start < i && tokens.At(start).Text == "" {
		start++
	}
	if tok := tokens.At(start); start < i && tok.Kind == token.Whitespace {
		return tok.Text
	}
	return ""
}
