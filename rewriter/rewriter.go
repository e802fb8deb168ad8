package rewriter

import (
	"context"
	"sort"
	"strings"

	"github.com/viant/typedoc/docstring"
	"github.com/viant/typedoc/inspector/info"
	"github.com/viant/typedoc/inspector/python"
)

// Edit inserts Text before the token at Index
type Edit struct {
	Index int
	Text  string
}

// Result is the outcome of rewriting one source
type Result struct {
	Output    []byte
	Changed   bool
	Functions []*info.Signature // documented functions in source order
}

// Rewriter inserts docstring templates into annotated, undocumented functions
type Rewriter struct {
	formatter docstring.Formatter
	config    *info.Config
	inspector *python.Inspector
}

// New creates a rewriter rendering with formatter
func New(formatter docstring.Formatter, options ...Option) *Rewriter {
	ret := &Rewriter{
		formatter: formatter,
		config:    info.DefaultConfig(),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.inspector == nil {
		ret.inspector = python.NewInspector(nil)
	}
	return ret
}

// Rewrite returns src with a docstring inserted after every eligible function header
func (r *Rewriter) Rewrite(ctx context.Context, src []byte) (*Result, error) {
	source, err := r.inspector.InspectSource(ctx, src)
	if err != nil {
		return nil, err
	}
	defer source.Close()

	candidates, err := Classify(source, r.config)
	if err != nil {
		return nil, err
	}
	result := &Result{Output: src}
	if len(candidates) == 0 {
		return result, nil
	}

	var edits []Edit
	for _, offset := range candidates.Offsets() {
		signature := candidates[offset]
		start, ok := source.TokenAt(offset)
		if !ok {
			return nil, internalError("no token at function offset %v", offset)
		}
		insertion, err := Locate(source.Tokens, start)
		if err != nil {
			return nil, err
		}
		text := r.formatter.Format(signature, insertion.Indent)
		if insertion.Newline != "\n" {
			text = strings.ReplaceAll(text, "\n", insertion.Newline)
		}
		edits = append(edits, Edit{Index: insertion.At, Text: text})
		result.Functions = append(result.Functions, signature)
	}
	tokens, err := Apply(source.Tokens, edits)
	if err != nil {
		return nil, err
	}
	output := python.Serialize(tokens)
	result.Changed = output != string(src)
	if result.Changed {
		result.Output = []byte(output)
	}
	sort.Slice(result.Functions, func(i, j int) bool {
		return result.Functions[i].Offset.Before(result.Functions[j].Offset)
	})
	return result, nil
}

// Apply returns a copy of tokens with edits inserted, highest index first
func Apply(tokens []python.Token, edits []Edit) ([]python.Token, error) {
	sorted := append([]Edit{}, edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Index > sorted[j].Index
	})
	ret := append(make([]python.Token, 0, len(tokens)+len(edits)), tokens...)
	for i, edit := range sorted {
		if edit.Index < 0 || edit.Index > len(tokens) {
			return nil, internalError("edit index %d out of range", edit.Index)
		}
		if i > 0 && sorted[i-1].Index == edit.Index {
			return nil, internalError("duplicate edit at token %d", edit.Index)
		}
		ret = append(ret, python.Token{})
		copy(ret[edit.Index+1:], ret[edit.Index:])
		ret[edit.Index] = python.Token{Kind: python.KindString, Text: edit.Text}
	}
	return ret, nil
}
