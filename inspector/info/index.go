package info

import (
	"github.com/viant/trailcomma/inspector/token"
)

// Index maps a source offset to actions in registration order
type Index struct {
	actions map[token.Offset][]Action
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{actions: map[token.Offset][]Action{}}
}

// Register appends action at offset
func (x *Index) Register(at token.Offset, action Action) {
	x.actions[at] = append(x.actions[at], action)
}

// Actions returns actions registered at offset
func (x *Index) Actions(at token.Offset) []Action {
	if x == nil {
		return nil
	}
	return x.actions[at]
}

// Len returns number of registered offsets
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.actions)
}

// Apply runs actions registered at the offset of token i; nil is returned when none was registered
func (x *Index) Apply(i int, tokens *token.Stream) *Hint {
	tok := tokens.At(i)
	if tok.IsSynthetic() {
		return nil
	}
	actions := x.Actions(tok.Offset())
	if len(actions) == 0 {
		return nil
	}
	hint := NewHint()
	for _, action := range actions {
		action(i, tokens, hint)
	}
	return hint
}
