package rewriter

import (
	"github.com/viant/typedoc/inspector/info"
	"github.com/viant/typedoc/inspector/python"
)

type Option func(*Rewriter)

// WithConfig sets receiver names and other classification settings
func WithConfig(config *info.Config) Option {
	return func(r *Rewriter) {
		if config != nil {
			r.config = config
		}
	}
}

// WithInspector sets the source inspector, e.g. one sharing an afs.Service
func WithInspector(inspector *python.Inspector) Option {
	return func(r *Rewriter) {
		if inspector != nil {
			r.inspector = inspector
		}
	}
}
