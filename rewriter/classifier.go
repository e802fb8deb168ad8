package rewriter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/typedoc/inspector/info"
	"github.com/viant/typedoc/inspector/python"
)

// function is a function definition with the declaration it is declared in
type function struct {
	node       *sitter.Node
	declaredIn *sitter.Node
}

// IsMethod returns true if the function is declared directly in a class body
func (f *function) IsMethod() bool {
	return f.declaredIn != nil && f.declaredIn.Type() == "class_definition"
}

// parameter is a parameter node reduced to its name and annotation node
type parameter struct {
	name       string
	annotation *sitter.Node
	node       *sitter.Node
}

// classifier finds eligible functions and extracts their signatures
type classifier struct {
	source    *python.Source
	config    *info.Config
	functions []*function
}

// Classify returns signatures of all functions that are fully annotated and undocumented
func Classify(source *python.Source, config *info.Config) (info.Candidates, error) {
	if config == nil {
		config = info.DefaultConfig()
	}
	c := &classifier{source: source, config: config}
	c.link(source.Root, nil)

	candidates := info.Candidates{}
	for _, fn := range c.functions {
		if !c.eligible(fn) {
			continue
		}
		signature, err := c.extract(fn)
		if err != nil {
			return nil, err
		}
		candidates[signature.Offset] = signature
	}
	return candidates, nil
}

// link records the declared-in relation for every function in a single traversal.
// Blocks and decorators are transparent; any other node becomes the parent of its descendants.
func (c *classifier) link(node *sitter.Node, declaredIn *sitter.Node) {
	switch node.Type() {
	case "function_definition":
		c.functions = append(c.functions, &function{node: node, declaredIn: declaredIn})
		declaredIn = node
	case "block", "decorated_definition":
	default:
		if node.IsNamed() {
			declaredIn = node
		}
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c.link(node.NamedChild(i), declaredIn)
	}
}

func (c *classifier) eligible(fn *function) bool {
	src := c.source.Text
	result := fn.node.ChildByFieldName("return_type")
	if result == nil {
		return false
	}
	if _, ok := annotationKind(result, src); !ok {
		return false
	}
	body := fn.node.ChildByFieldName("body")
	if body == nil {
		return false
	}
	first := firstStatement(body)
	if first == nil || hasDocstring(first, src) {
		return false
	}
	if colon := headerColon(fn.node); colon == nil || first.StartPoint().Row <= colon.StartPoint().Row {
		return false
	}
	params, ok := parameters(fn.node, src)
	if !ok {
		return false
	}
	for i, param := range params {
		if param.annotation == nil {
			if i == 0 && fn.IsMethod() && c.config.IsReceiver(param.name) {
				continue
			}
			return false
		}
		if _, ok := annotationKind(param.annotation, src); !ok {
			return false
		}
	}
	return true
}

func (c *classifier) extract(fn *function) (*info.Signature, error) {
	src := c.source.Text
	offset := c.source.Offset(fn.node)
	signature := &info.Signature{
		Offset:   offset,
		IsMethod: fn.IsMethod(),
		IsAsync:  fn.node.ChildCount() > 0 && fn.node.Child(0).Type() == "async",
	}
	if name := fn.node.ChildByFieldName("name"); name != nil {
		signature.Name = name.Content(src)
	}
	params, ok := parameters(fn.node, src)
	if !ok {
		return nil, internalError("unsupported parameter list in %v at %v", signature.Name, offset)
	}
	for i, param := range params {
		if param.annotation == nil {
			if i == 0 && signature.IsMethod && c.config.IsReceiver(param.name) {
				signature.Parameters = append(signature.Parameters, info.Parameter{Name: param.name})
				continue
			}
			return nil, internalError("parameter %v of %v at %v has no annotation", param.name, signature.Name, offset)
		}
		annotation, err := Resolve(c.source, param.annotation)
		if err != nil {
			return nil, err
		}
		signature.Parameters = append(signature.Parameters, info.Parameter{Name: param.name, Type: annotation})
	}
	result, err := Resolve(c.source, fn.node.ChildByFieldName("return_type"))
	if err != nil {
		return nil, err
	}
	signature.Result = result
	return signature, nil
}

// parameters returns declared parameters; false for forms that cannot be documented
func parameters(fn *sitter.Node, src []byte) ([]*parameter, bool) {
	list := fn.ChildByFieldName("parameters")
	if list == nil {
		return nil, false
	}
	var result []*parameter
	for i := 0; i < int(list.NamedChildCount()); i++ {
		node := list.NamedChild(i)
		param := &parameter{node: node}
		switch node.Type() {
		case "comment", "positional_separator", "keyword_separator":
			continue
		case "identifier", "list_splat_pattern", "dictionary_splat_pattern", "default_parameter":
		case "typed_parameter", "typed_default_parameter":
			param.annotation = node.ChildByFieldName("type")
		default:
			return nil, false
		}
		if param.name = parameterName(node, src); param.name == "" {
			return nil, false
		}
		result = append(result, param)
	}
	return result, true
}

func parameterName(node *sitter.Node, src []byte) string {
	switch node.Type() {
	case "identifier":
		return node.Content(src)
	case "default_parameter", "typed_default_parameter":
		if name := node.ChildByFieldName("name"); name != nil {
			return parameterName(name, src)
		}
	case "typed_parameter", "list_splat_pattern", "dictionary_splat_pattern":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.Type() == "type" {
				continue
			}
			return parameterName(child, src)
		}
	}
	return ""
}

// headerColon returns the ':' terminating a function header
func headerColon(fn *sitter.Node) *sitter.Node {
	for i := 0; i < int(fn.ChildCount()); i++ {
		if child := fn.Child(i); child.Type() == ":" && !child.IsNamed() {
			return child
		}
	}
	return nil
}

func firstStatement(body *sitter.Node) *sitter.Node {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		if child := body.NamedChild(i); child.Type() != "comment" {
			return child
		}
	}
	return nil
}

// hasDocstring returns true if statement is a plain string expression
func hasDocstring(statement *sitter.Node, src []byte) bool {
	if statement.Type() != "expression_statement" || statement.NamedChildCount() != 1 {
		return false
	}
	expr := statement.NamedChild(0)
	switch expr.Type() {
	case "concatenated_string":
		if expr.NamedChildCount() == 0 {
			return false
		}
		expr = expr.NamedChild(0)
		fallthrough
	case "string":
		content := expr.Content(src)
		prefix := content[:strings.IndexAny(content, `"'`)+1]
		return !strings.ContainsAny(prefix, "fFbB")
	}
	return false
}
