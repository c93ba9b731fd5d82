package info

import (
	"github.com/viant/trailcomma/inspector/token"
)

// Kind is the syntactic role of a bracketed region
type Kind uint8

const (
	KindUnknown       Kind = iota // bracket the syntax tree did not classify
	KindCall                      // call, class bases and decorator arguments
	KindGenerator                 // generator expression being the sole call argument
	KindParameters                // function definition parameter list
	KindCollection                // list, set and dict displays and their patterns
	KindTuple                     // parenthesized tuple literal or pattern
	KindComprehension             // list, set, dict comprehension or bare generator
	KindGrouping                  // parentheses used for grouping or line continuation
	KindSubscript                 // index or slice subscript
	KindImport                    // parenthesized from-import list
	KindWith                      // parenthesized context-manager list
	KindTypeParams                // type parameter list
)

var kindNames = [...]string{
	KindUnknown:       "unknown",
	KindCall:          "call",
	KindGenerator:     "generator",
	KindParameters:    "def-params",
	KindCollection:    "collection-literal",
	KindTuple:         "tuple",
	KindComprehension: "comprehension",
	KindGrouping:      "grouping",
	KindSubscript:     "subscript",
	KindImport:        "import-list",
	KindWith:          "with-list",
	KindTypeParams:    "type-params",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Hint carries what the syntax tree knows about the bracket at a registered offset
type Hint struct {
	Kind       Kind
	Elements   int    // element count from the tree, -1 when unknown
	Slice      bool   // sole subscript element is a slice
	Excluded   bool   // region must not be rewritten
	MinVersion string // python version needed for a trailing comma, e.g. "3.6"
}

// NewHint creates an empty hint
func NewHint() *Hint {
	return &Hint{Elements: -1}
}

// Action is invoked when the rewrite pass reaches the token at a registered offset;
// it may inspect or alter tokens near index i and refine the hint
type Action func(i int, tokens *token.Stream, hint *Hint)
