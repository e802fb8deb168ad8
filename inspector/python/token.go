package python

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/typedoc/inspector/info"
)

// Kind represents a token category
type Kind uint8

const (
	KindOther Kind = iota
	KindName
	KindKeyword
	KindOp
	KindNumber
	KindString
	KindComment
	KindNewline
	KindIndent // leading whitespace of a line that starts with code
	KindWhitespace
)

var kindNames = [...]string{"OTHER", "NAME", "KEYWORD", "OP", "NUMBER", "STRING", "COMMENT", "NEWLINE", "INDENT", "WHITESPACE"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsTrivia returns true for tokens without syntactic meaning
func (k Kind) IsTrivia() bool {
	return k == KindWhitespace || k == KindIndent || k == KindComment || k == KindNewline
}

// Token represents a lexical unit pointing back to the source
type Token struct {
	Kind   Kind
	Text   string
	Offset info.Offset
}

// Is returns true if the token is an operator or keyword with the given text
func (t Token) Is(text string) bool {
	return (t.Kind == KindOp || t.Kind == KindKeyword) && t.Text == text
}

// Serialize concatenates token texts
func Serialize(tokens []Token) string {
	builder := strings.Builder{}
	for _, token := range tokens {
		builder.WriteString(token.Text)
	}
	return builder.String()
}

// atomic node types are emitted as a single token regardless of their children
var atomic = map[string]bool{
	"string":  true,
	"comment": true,
}

// tokenizer turns tree leaves plus the bytes between them into a lossless token sequence
type tokenizer struct {
	src    []byte
	pos    int
	line   int
	column int
	tokens []Token
}

// Tokenize builds the token sequence for the tree rooted at root
func Tokenize(root *sitter.Node, src []byte) []Token {
	t := &tokenizer{src: src, line: 1}
	if root != nil {
		t.visit(root)
	}
	t.gap(len(src), KindOther, false)
	return t.tokens
}

func (t *tokenizer) visit(n *sitter.Node) {
	if n.ChildCount() == 0 || atomic[n.Type()] {
		start, end := int(n.StartByte()), int(n.EndByte())
		if end <= t.pos || end <= start {
			return
		}
		if start < t.pos {
			start = t.pos
		}
		kind := leafKind(n)
		t.gap(start, kind, true)
		t.emit(kind, end)
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		t.visit(n.Child(i))
	}
}

// gap emits trivia tokens for src[pos:end]; next is the kind of the leaf that follows
func (t *tokenizer) gap(end int, next Kind, hasNext bool) {
	for t.pos < end {
		if size := t.newlineAt(t.pos, end); size > 0 {
			t.emit(KindNewline, t.pos+size)
			continue
		}
		j := t.pos
		blank := true
		for j < end && t.newlineAt(j, end) == 0 {
			switch t.src[j] {
			case ' ', '\t', '\f':
			default:
				blank = false
			}
			j++
		}
		kind := KindWhitespace
		switch {
		case !blank:
			kind = KindOther
		case t.column == 0 && j == end && hasNext && next != KindComment:
			kind = KindIndent
		}
		t.emit(kind, j)
	}
}

func (t *tokenizer) newlineAt(i, end int) int {
	switch {
	case t.src[i] == '\n':
		return 1
	case t.src[i] == '\r' && i+1 < end && t.src[i+1] == '\n':
		return 2
	}
	return 0
}

func (t *tokenizer) emit(kind Kind, end int) {
	text := string(t.src[t.pos:end])
	t.tokens = append(t.tokens, Token{Kind: kind, Text: text, Offset: info.Offset{Line: t.line, Column: t.column}})
	for i := t.pos; i < end; i++ {
		if t.src[i] == '\n' {
			t.line++
			t.column = 0
			continue
		}
		t.column++
	}
	t.pos = end
}

func leafKind(n *sitter.Node) Kind {
	switch n.Type() {
	case "comment":
		return KindComment
	case "string":
		return KindString
	case "identifier":
		return KindName
	case "integer", "float":
		return KindNumber
	}
	if n.IsNamed() {
		return KindOther
	}
	if isWord(n.Type()) {
		return KindKeyword
	}
	return KindOp
}

func isWord(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
