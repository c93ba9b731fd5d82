package python_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/trailcomma/inspector/python"
	"github.com/viant/trailcomma/inspector/token"
)

type bracketHint struct {
	Kind       string
	Elements   int
	Slice      bool
	Excluded   bool
	MinVersion string
}

// hintsOf runs registered actions for every opening bracket and keys the result by "line:col"
func hintsOf(t *testing.T, source string) map[string]bracketHint {
	index, err := python.NewInspector().InspectSource(context.Background(), []byte(source))
	require.NoError(t, err)
	stream, err := token.Tokenize(source)
	require.NoError(t, err)

	result := map[string]bracketHint{}
	for i := 0; i < stream.Len(); i++ {
		tok := stream.At(i)
		if !tok.IsOpenBracket() {
			continue
		}
		hint := index.Apply(i, stream)
		if hint == nil {
			continue
		}
		result[fmt.Sprintf("%d:%d", tok.Line, tok.Col)] = bracketHint{
			Kind:       hint.Kind.String(),
			Elements:   hint.Elements,
			Slice:      hint.Slice,
			Excluded:   hint.Excluded,
			MinVersion: hint.MinVersion,
		}
	}
	return result
}

func TestInspector_InspectSource(t *testing.T) {
	var testCases = []struct {
		description string
		source      string
		expect      map[string]bracketHint
	}{
		{
			description: "call arguments",
			source:      "f(\n    a,\n    b\n)\n",
			expect:      map[string]bracketHint{"1:1": {Kind: "call", Elements: 2}},
		},
		{
			description: "sole generator argument",
			source:      "tuple(\n    a for a in b\n)\n",
			expect:      map[string]bracketHint{"1:5": {Kind: "generator", Elements: 2, Excluded: true}},
		},
		{
			description: "parenthesized generator argument",
			source:      "f(a, (b for b in c))\n",
			expect: map[string]bracketHint{
				"1:1": {Kind: "call", Elements: 2},
				"1:5": {Kind: "comprehension", Elements: 2},
			},
		},
		{
			description: "star arguments",
			source:      "f(\n    *args,\n    **kwargs\n)\n",
			expect:      map[string]bracketHint{"1:1": {Kind: "call", Elements: 2, MinVersion: "3.5"}},
		},
		{
			description: "definition parameters",
			source:      "def f(\n    a,\n    *args\n): pass\n",
			expect:      map[string]bracketHint{"1:5": {Kind: "def-params", Elements: 2, MinVersion: "3.6"}},
		},
		{
			description: "single element tuple",
			source:      "x = (1,)\n",
			expect:      map[string]bracketHint{"1:4": {Kind: "tuple", Elements: 1}},
		},
		{
			description: "grouping parentheses",
			source:      "x = (\n    \"foo\"\n    \"bar\"\n)\n",
			expect:      map[string]bracketHint{"1:4": {Kind: "grouping", Elements: 1}},
		},
		{
			description: "collections",
			source:      "x = [{1: 2}, {3}]\n",
			expect: map[string]bracketHint{
				"1:4":  {Kind: "collection-literal", Elements: 2},
				"1:5":  {Kind: "collection-literal", Elements: 1},
				"1:13": {Kind: "collection-literal", Elements: 1},
			},
		},
		{
			description: "comprehension",
			source:      "x = [a for a in b if a]\n",
			expect:      map[string]bracketHint{"1:4": {Kind: "comprehension", Elements: 3}},
		},
		{
			description: "slice subscript",
			source:      "x[1:2]\n",
			expect:      map[string]bracketHint{"1:1": {Kind: "subscript", Elements: 1, Slice: true}},
		},
		{
			description: "tuple subscript",
			source:      "x[1, 2]\n",
			expect:      map[string]bracketHint{"1:1": {Kind: "subscript", Elements: 2}},
		},
		{
			description: "import list",
			source:      "from os import (\n    path,\n    sep,\n)\n",
			expect:      map[string]bracketHint{"1:15": {Kind: "import-list", Elements: 2}},
		},
		{
			description: "parenthesized target is grouping",
			source:      "for (a) in b:\n    pass\n",
			expect:      map[string]bracketHint{"1:4": {Kind: "grouping", Elements: 1}},
		},
		{
			description: "single element tuple target",
			source:      "for (a,) in b:\n    pass\n",
			expect:      map[string]bracketHint{"1:4": {Kind: "tuple", Elements: 1}},
		},
		{
			description: "generic annotation is a subscript",
			source:      "x: List[int] = []\n",
			expect: map[string]bracketHint{
				"1:7":  {Kind: "subscript", Elements: 1},
				"1:15": {Kind: "collection-literal", Elements: 0},
			},
		},
		{
			description: "comments are not elements",
			source:      "f(\n    # lead\n    a,  # trail\n)\n",
			expect:      map[string]bracketHint{"1:1": {Kind: "call", Elements: 1}},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.EqualValues(t, testCase.expect, hintsOf(t, testCase.source))
		})
	}
}

func TestInspector_InspectSource_ParseError(t *testing.T) {
	for _, source := range []string{
		"def f(\n",
		"x = (1,\n",
		"class :\n    pass\n",
	} {
		_, err := python.NewInspector().InspectSource(context.Background(), []byte(source))
		assert.ErrorIs(t, err, python.ErrParse, source)
	}
}
