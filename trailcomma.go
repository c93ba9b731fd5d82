// Package trailcomma adds or removes the optional trailing comma before a closing bracket
// in Python source, leaving every other byte untouched.
package trailcomma

import (
	"context"
	"strings"

	"github.com/viant/trailcomma/analyzer"
	"github.com/viant/trailcomma/inspector/python"
	"github.com/viant/trailcomma/inspector/token"
)

const bom = "\ufeff"

type (
	Mode   = analyzer.Mode
	Option = analyzer.Option
)

const (
	Add    = analyzer.Add
	Remove = analyzer.Remove
)

var (
	ErrParse    = python.ErrParse
	ErrTokenize = token.ErrTokenize

	WithMode          = analyzer.WithMode
	WithTargetVersion = analyzer.WithTargetVersion
	WithLogger        = analyzer.WithLogger
)

// Result holds rewritten source
type Result struct {
	Source  string
	Changed bool
	Edits   int
}

// Fix rewrites src; on ErrParse or ErrTokenize the returned result holds src unchanged
func Fix(ctx context.Context, src string, options ...Option) (*Result, error) {
	result := &Result{Source: src}
	body, hasBOM := strings.CutPrefix(src, bom)
	index, err := python.NewInspector().InspectSource(ctx, []byte(body))
	if err != nil {
		return result, err
	}
	stream, err := token.Tokenize(body)
	if err != nil {
		return result, err
	}
	result.Edits = analyzer.New(options...).Rewrite(stream, index)
	if result.Edits == 0 {
		return result, nil
	}
	rewritten := stream.Render()
	if hasBOM {
		rewritten = bom + rewritten
	}
	result.Changed = rewritten != src
	result.Source = rewritten
	return result, nil
}

// Rewrite returns text with trailing commas added or removed, text that cannot be parsed is returned as is
func Rewrite(text string, mode Mode) string {
	result, _ := Fix(context.Background(), text, WithMode(mode))
	return result.Source
}
