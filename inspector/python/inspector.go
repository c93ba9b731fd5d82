package python

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/viant/trailcomma/inspector/info"
	"github.com/viant/trailcomma/inspector/token"
)

// ErrParse reports source the python grammar could not parse without errors
var ErrParse = errors.New("failed to parse python source")

// Inspector parses Python source with tree-sitter and indexes bracket actions by offset
type Inspector struct{}

// NewInspector creates a new Python Inspector
func NewInspector() *Inspector {
	return &Inspector{}
}

// InspectSource parses Python source code and returns registered bracket actions
func (i *Inspector) InspectSource(ctx context.Context, src []byte) (*info.Index, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		if at := firstError(rootNode); at != nil {
			return nil, fmt.Errorf("%w: syntax error at line %d, column %d", ErrParse, at.Line, at.Col)
		}
		return nil, ErrParse
	}

	index := info.NewIndex()
	w := &walker{index: index}
	w.walk(rootNode, nil)
	return index, nil
}

// firstError locates the first error or missing node
func firstError(node *sitter.Node) *token.Offset {
	if node.Type() == "ERROR" || node.IsMissing() {
		at := offset(node)
		return &at
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if at := firstError(child); at != nil {
			return at
		}
	}
	return nil
}

func offset(node *sitter.Node) token.Offset {
	point := node.StartPoint()
	return token.Offset{Line: int(point.Row) + 1, Col: int(point.Column)}
}
