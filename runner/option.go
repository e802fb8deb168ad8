package runner

import (
	"github.com/viant/afs"
	"github.com/viant/typedoc/inspector/info"
	"go.uber.org/zap"
)

type Option func(*Runner)

// WithFS sets the file system used for walking, reading and writing sources
func WithFS(fs afs.Service) Option {
	return func(r *Runner) {
		if fs != nil {
			r.fs = fs
		}
	}
}

// WithConfig sets worker count, file patterns and check mode
func WithConfig(config *info.Config) Option {
	return func(r *Runner) {
		if config != nil {
			r.config = config
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}
