package python

import (
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/typedoc/inspector/info"
)

// ErrSyntax is returned when the source cannot be parsed
var ErrSyntax = errors.New("syntax error")

// SyntaxError describes the first erroneous node of a parse tree
type SyntaxError struct {
	Offset info.Offset
	Near   string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("%v at %v", ErrSyntax, e.Offset)
	}
	return fmt.Sprintf("%v at %v near %q", ErrSyntax, e.Offset, e.Near)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Source holds the syntax tree and the matching token sequence of one file.
// Both are addressed by info.Offset, which is the only link between them.
type Source struct {
	Text   []byte
	Tree   *sitter.Tree
	Root   *sitter.Node
	Tokens []Token
	index  map[info.Offset]int
}

func newSource(tree *sitter.Tree, src []byte) *Source {
	root := tree.RootNode()
	ret := &Source{Text: src, Tree: tree, Root: root}
	ret.Tokens = Tokenize(root, src)
	ret.index = make(map[info.Offset]int, len(ret.Tokens))
	for i, token := range ret.Tokens {
		if _, ok := ret.index[token.Offset]; !ok {
			ret.index[token.Offset] = i
		}
	}
	return ret
}

// Offset returns the start offset of a node
func (s *Source) Offset(node *sitter.Node) info.Offset {
	point := node.StartPoint()
	return info.NewOffset(point.Row, point.Column)
}

// TokenAt returns index of the first token starting at offset
func (s *Source) TokenAt(offset info.Offset) (int, bool) {
	idx, ok := s.index[offset]
	return idx, ok
}

// Content returns node source text
func (s *Source) Content(node *sitter.Node) string {
	return node.Content(s.Text)
}

// String re-serializes the token sequence
func (s *Source) String() string {
	return Serialize(s.Tokens)
}

// Close releases the syntax tree
func (s *Source) Close() {
	if s.Tree != nil {
		s.Tree.Close()
	}
}

// syntaxError returns the first error or missing node in document order
func syntaxError(node *sitter.Node, src []byte) *SyntaxError {
	if node.IsError() || node.IsMissing() {
		point := node.StartPoint()
		near := node.Content(src)
		if node.IsMissing() {
			near = node.Type()
		}
		if len(near) > 32 {
			near = near[:32]
		}
		return &SyntaxError{Offset: info.NewOffset(point.Row, point.Column), Near: near}
	}
	if !node.HasError() {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if err := syntaxError(node.Child(i), src); err != nil {
			return err
		}
	}
	point := node.StartPoint()
	return &SyntaxError{Offset: info.NewOffset(point.Row, point.Column)}
}
