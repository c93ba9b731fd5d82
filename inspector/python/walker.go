package python

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/trailcomma/inspector/info"
	"github.com/viant/trailcomma/inspector/token"
)

const (
	// trailing comma after *args/**kwargs in a call
	callStarVersion = "3.5"
	// trailing comma after *args/**kwargs in a definition
	defStarVersion = "3.6"
)

type walker struct {
	index *info.Index
}

// bracketed describes the elements enclosed by a node's bracket pair
type bracketed struct {
	open     *sitter.Node
	elements []*sitter.Node
}

func (w *walker) walk(node *sitter.Node, parent *sitter.Node) {
	w.visit(node, parent)
	for j := 0; j < int(node.NamedChildCount()); j++ {
		if child := node.NamedChild(j); child != nil {
			w.walk(child, node)
		}
	}
}

func (w *walker) visit(node *sitter.Node, parent *sitter.Node) {
	switch node.Type() {
	case "argument_list":
		w.register(node, "(", info.KindCall)
		w.registerStar(node, "(", callStarVersion, "list_splat", "dictionary_splat")
	case "class_pattern":
		w.register(node, "(", info.KindCall)
	case "generator_expression":
		if parent != nil && parent.Type() == "call" {
			w.register(node, "(", info.KindGenerator, excluded)
			return
		}
		w.register(node, "(", info.KindComprehension)
	case "parameters":
		w.register(node, "(", info.KindParameters)
		w.registerStar(node, "(", defStarVersion, "list_splat_pattern", "dictionary_splat_pattern")
	case "list", "list_pattern":
		w.register(node, "[", info.KindCollection)
	case "set", "dictionary", "dict_pattern":
		w.register(node, "{", info.KindCollection)
	case "tuple", "tuple_pattern":
		if grouped(node) {
			w.register(node, "(", info.KindGrouping)
			return
		}
		w.register(node, "(", info.KindTuple)
	case "list_comprehension":
		w.register(node, "[", info.KindComprehension)
	case "set_comprehension", "dictionary_comprehension":
		w.register(node, "{", info.KindComprehension)
	case "parenthesized_expression", "parenthesized_list_splat":
		w.register(node, "(", info.KindGrouping)
	case "subscript":
		w.register(node, "[", info.KindSubscript, sliced(node))
	case "import_from_statement":
		w.register(node, "(", info.KindImport)
	case "with_clause":
		w.register(node, "(", info.KindWith)
	case "type_parameter":
		if parent != nil && parent.Type() == "generic_type" {
			w.register(node, "[", info.KindSubscript)
			return
		}
		w.register(node, "[", info.KindTypeParams)
	}
}

// register adds a classification action at the node's opening bracket
func (w *walker) register(node *sitter.Node, open string, kind info.Kind, options ...func(hint *info.Hint)) {
	region := enclosed(node, open)
	if region == nil {
		return
	}
	elements := len(region.elements)
	w.index.Register(offset(region.open), func(i int, tokens *token.Stream, hint *info.Hint) {
		hint.Kind = kind
		hint.Elements = elements
		for _, option := range options {
			option(hint)
		}
	})
}

// registerStar records the python version needed once the last element is a star form
func (w *walker) registerStar(node *sitter.Node, open string, version string, starTypes ...string) {
	region := enclosed(node, open)
	if region == nil || len(region.elements) == 0 {
		return
	}
	last := region.elements[len(region.elements)-1].Type()
	for _, candidate := range starTypes {
		if last != candidate {
			continue
		}
		w.index.Register(offset(region.open), func(i int, tokens *token.Stream, hint *info.Hint) {
			hint.MinVersion = version
		})
		return
	}
}

func excluded(hint *info.Hint) {
	hint.Excluded = true
}

func sliced(node *sitter.Node) func(hint *info.Hint) {
	region := enclosed(node, "[")
	isSlice := region != nil && len(region.elements) == 1 && region.elements[0].Type() == "slice"
	return func(hint *info.Hint) {
		hint.Slice = isSlice
	}
}

// grouped reports a parenthesized single target without a comma, e.g. `for (a) in b`
func grouped(node *sitter.Node) bool {
	region := enclosed(node, "(")
	if region == nil || len(region.elements) != 1 {
		return false
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		if child := node.Child(j); child != nil && !child.IsNamed() && child.Type() == "," {
			return false
		}
	}
	return true
}

// enclosed returns the first open bracket child and the named elements before its matching close
func enclosed(node *sitter.Node, open string) *bracketed {
	closer := token.Closer(open)
	var result *bracketed
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if child == nil {
			continue
		}
		if result == nil {
			if !child.IsNamed() && child.Type() == open {
				result = &bracketed{open: child}
			}
			continue
		}
		if !child.IsNamed() && child.Type() == closer {
			return result
		}
		if child.IsNamed() && child.Type() != "comment" {
			result.elements = append(result.elements, child)
		}
	}
	return nil
}
