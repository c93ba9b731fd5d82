package token

// Kind identifies the lexical class of a token
type Kind uint8

const (
	EndMarker Kind = iota
	Name
	Number
	String
	Op
	Comment
	NL         // line break that does not end a logical line
	Newline    // line break ending a logical line
	Whitespace // spaces, tabs and form feeds
	EscapedNL  // backslash line continuation
	Indent
	Dedent
)

var kindNames = [...]string{
	EndMarker:  "ENDMARKER",
	Name:       "NAME",
	Number:     "NUMBER",
	String:     "STRING",
	Op:         "OP",
	Comment:    "COMMENT",
	NL:         "NL",
	Newline:    "NEWLINE",
	Whitespace: "UNIMPORTANT_WS",
	EscapedNL:  "ESCAPED_NL",
	Indent:     "INDENT",
	Dedent:     "DEDENT",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Offset is a source position: Line is 1-based, Col is a 0-based byte column
type Offset struct {
	Line int
	Col  int
}

// Token represents a single lexical unit; Text is the exact source slice
type Token struct {
	Kind Kind
	Text string
	Line int
	Col  int
}

// Offset returns token source position, tokens inserted by a rewrite have Line 0
func (t Token) Offset() Offset {
	return Offset{Line: t.Line, Col: t.Col}
}

// IsSynthetic reports whether the token was not produced by the tokenizer
func (t Token) IsSynthetic() bool {
	return t.Line == 0
}

// IsNonCoding reports whether the token carries no program meaning
func (t Token) IsNonCoding() bool {
	switch t.Kind {
	case Comment, NL, Newline, Whitespace, EscapedNL, Indent, Dedent, EndMarker:
		return true
	}
	return false
}

// IsLineBreak reports whether the token ends a physical line
func (t Token) IsLineBreak() bool {
	return t.Kind == NL || t.Kind == Newline || t.Kind == EscapedNL
}

// IsOp reports whether the token is the given operator
func (t Token) IsOp(text string) bool {
	return t.Kind == Op && t.Text == text
}

// IsOpenBracket reports whether the token opens a bracketed region
func (t Token) IsOpenBracket() bool {
	if t.Kind != Op {
		return false
	}
	_, ok := closers[t.Text]
	return ok
}

// IsCloseBracket reports whether the token closes a bracketed region
func (t Token) IsCloseBracket() bool {
	return t.Kind == Op && (t.Text == ")" || t.Text == "]" || t.Text == "}")
}

// Closer returns the closing counterpart of an opening bracket
func Closer(open string) string {
	return closers[open]
}

var closers = map[string]string{
	"(": ")",
	"[": "]",
	"{": "}",
}
