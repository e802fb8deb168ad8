package rewriter

import (
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/typedoc/inspector/info"
	"github.com/viant/typedoc/inspector/python"
)

// unwrapType strips the grammar's "type" wrapper around an annotation expression
func unwrapType(node *sitter.Node) *sitter.Node {
	for node != nil && node.Type() == "type" && node.NamedChildCount() == 1 {
		node = node.NamedChild(0)
	}
	return node
}

// annotationKind returns the supported form of an annotation node
func annotationKind(node *sitter.Node, src []byte) (info.TypeKind, bool) {
	node = unwrapType(node)
	if node == nil {
		return 0, false
	}
	switch node.Type() {
	case "identifier":
		return info.Bare, true
	case "generic_type", "subscript":
		return info.Parameterized, true
	case "union_type":
		return info.Union, true
	case "binary_operator":
		if operator := node.ChildByFieldName("operator"); operator != nil && operator.Content(src) == "|" {
			return info.Union, true
		}
	}
	return 0, false
}

// Resolve returns the literal text of an annotation node.
// Bare names come straight from the tree; parameterized and union forms are
// reconstructed from the token sequence starting at the node offset.
func Resolve(source *python.Source, node *sitter.Node) (*info.TypeExpression, error) {
	node = unwrapType(node)
	kind, ok := annotationKind(node, source.Text)
	if !ok {
		return nil, internalError("unsupported annotation at %v", source.Offset(node))
	}
	if kind == info.Bare {
		return &info.TypeExpression{Kind: kind, Text: source.Content(node)}, nil
	}
	offset := source.Offset(node)
	start, ok := source.TokenAt(offset)
	if !ok {
		return nil, internalError("no token at annotation offset %v", offset)
	}
	span := scanAnnotation(source.Tokens, start)
	text := strings.TrimRightFunc(python.Serialize(source.Tokens[span.From:span.To]), unicode.IsSpace)
	if text == "" {
		return nil, internalError("empty annotation at %v", offset)
	}
	ret := &info.TypeExpression{Kind: kind, Text: text, Span: span}
	if kind == info.Parameterized {
		ret.Base = baseName(node, source.Text)
	}
	return ret, nil
}

// scanAnnotation accumulates tokens until a top level ',', ')', ':', '=' or comment
func scanAnnotation(tokens []python.Token, start int) info.Span {
	depth := 0
	end := start
scan:
	for ; end < len(tokens); end++ {
		token := tokens[end]
		if token.Kind == python.KindComment && depth == 0 {
			break
		}
		if token.Kind != python.KindOp {
			continue
		}
		switch token.Text {
		case "[", "(", "{":
			depth++
		case "]", ")", "}":
			if depth == 0 {
				break scan
			}
			depth--
		case ",", ":", "=":
			if depth == 0 {
				break scan
			}
		}
	}
	return info.Span{From: start, To: end}
}

func baseName(node *sitter.Node, src []byte) string {
	switch node.Type() {
	case "subscript":
		if value := node.ChildByFieldName("value"); value != nil {
			return value.Content(src)
		}
	case "generic_type":
		if node.NamedChildCount() > 0 {
			return node.NamedChild(0).Content(src)
		}
	}
	return ""
}
