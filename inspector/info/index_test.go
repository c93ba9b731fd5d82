package info_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/trailcomma/inspector/info"
	"github.com/viant/trailcomma/inspector/token"
)

func TestIndex_ComposesActions(t *testing.T) {
	stream, err := token.Tokenize("f(a)\n")
	require.NoError(t, err)

	index := info.NewIndex()
	var order []string
	index.Register(token.Offset{Line: 1, Col: 1}, func(i int, tokens *token.Stream, hint *info.Hint) {
		order = append(order, "first")
		hint.Kind = info.KindCall
	})
	index.Register(token.Offset{Line: 1, Col: 1}, func(i int, tokens *token.Stream, hint *info.Hint) {
		order = append(order, "second")
		hint.Excluded = true
	})

	hint := index.Apply(1, stream)
	require.NotNil(t, hint)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, info.KindCall, hint.Kind)
	assert.True(t, hint.Excluded)
	assert.Nil(t, index.Apply(0, stream))
}
