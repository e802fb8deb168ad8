package python

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/viant/afs"
)

// Inspector parses Python source code into a Source model
type Inspector struct {
	fs afs.Service
}

// NewInspector creates a new Python Inspector, fs defaults to afs.New()
func NewInspector(fs afs.Service) *Inspector {
	if fs == nil {
		fs = afs.New()
	}
	return &Inspector{fs: fs}
}

// InspectSource parses Python source code from a byte slice
func (i *Inspector) InspectSource(ctx context.Context, src []byte) (*Source, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	if err := syntaxError(tree.RootNode(), src); err != nil {
		tree.Close()
		return nil, err
	}
	return newSource(tree, src), nil
}

// InspectFile reads and parses a Python source file
func (i *Inspector) InspectFile(ctx context.Context, URL string) (*Source, error) {
	src, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	source, err := i.InspectSource(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", URL, err)
	}
	return source, nil
}
