package analyzer

import (
	"log/slog"

	"github.com/viant/trailcomma/inspector/info"
	"github.com/viant/trailcomma/inspector/token"
	"golang.org/x/mod/semver"
)

// Mode selects whether trailing commas are added or removed
type Mode uint8

const (
	Add Mode = iota
	Remove
)

func (m Mode) String() string {
	if m == Remove {
		return "remove"
	}
	return "add"
}

// Rewriter applies the trailing comma rule to a token stream in a single left-to-right pass
type Rewriter struct {
	mode          Mode
	targetVersion string
	logger        *slog.Logger
}

// New creates a Rewriter
func New(options ...Option) *Rewriter {
	r := &Rewriter{}
	for _, option := range options {
		option(r)
	}
	return r
}

// Mode returns rewrite mode
func (r *Rewriter) Mode() Mode {
	return r.mode
}

// Rewrite mutates tokens in place and returns the number of edits
func (r *Rewriter) Rewrite(tokens *token.Stream, index *info.Index) int {
	edits := 0
	for i := 0; i < tokens.Len(); i++ {
		tok := tokens.At(i)
		if tok.Text == "" {
			continue
		}
		hint := index.Apply(i, tokens)
		if !tok.IsOpenBracket() {
			continue
		}
		fix := Analyze(i, tokens, hint)
		if fix == nil {
			r.debug("skipping ambiguous region", "line", tok.Line, "col", tok.Col)
			continue
		}
		if n := r.apply(tokens, fix); n > 0 {
			r.debug("rewrote region", "line", tok.Line, "col", tok.Col, "kind", fix.Kind.String(), "edits", n)
			edits += n
		}
	}
	return edits
}

func (r *Rewriter) apply(tokens *token.Stream, fix *Fix) int {
	if fix.Class == Ineligible {
		return 0
	}
	if !fix.Multiline {
		return r.collapse(tokens, fix)
	}
	if r.mode == Remove {
		if fix.Class != Eligible || fix.LoadBearing || fix.Trailing == -1 {
			return 0
		}
		tokens.RemoveRange(fix.Trailing, fix.Trailing+1)
		return 1
	}
	if !fix.OwnLine(tokens) {
		return 0
	}
	edits := 0
	if fix.Class == Eligible && fix.Trailing == -1 && r.allows(fix.MinVersion) {
		last := lastCoding(tokens, fix.Close)
		tokens.InsertBefore(last+1, token.Token{Kind: token.Op, Text: ","})
		fix.Close++
		edits++
	}
	return edits + r.dedent(tokens, fix)
}

// collapse removes a cosmetic trailing comma, with the whitespace after it, from a single-line region
func (r *Rewriter) collapse(tokens *token.Stream, fix *Fix) int {
	if fix.Class != Eligible || fix.Trailing == -1 || fix.LoadBearing {
		return 0
	}
	if fix.Elements < 2 && r.mode != Remove {
		return 0
	}
	tokens.RemoveRange(fix.Trailing, fix.Close)
	return 1
}

// dedent aligns the closing bracket with the line holding the opening bracket
func (r *Rewriter) dedent(tokens *token.Stream, fix *Fix) int {
	prev := tokens.At(fix.Close - 1)
	switch prev.Kind {
	case token.Whitespace:
		if prev.Text == fix.Indent {
			return 0
		}
		if fix.Indent == "" {
			tokens.RemoveRange(fix.Close-1, fix.Close)
			return 1
		}
		prev.Text = fix.Indent
		tokens.ReplaceAt(fix.Close-1, prev)
		return 1
	case token.NL:
		if fix.Indent == "" {
			return 0
		}
		tokens.InsertBefore(fix.Close, token.Token{Kind: token.Whitespace, Text: fix.Indent})
		return 1
	}
	return 0
}

func (r *Rewriter) allows(minVersion string) bool {
	if minVersion == "" || r.targetVersion == "" {
		return true
	}
	return semver.Compare(r.targetVersion, "v"+minVersion) >= 0
}

func (r *Rewriter) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
