package rewriter

import (
	"errors"
	"fmt"

	"github.com/viant/typedoc/inspector/python"
)

var (
	// ErrSyntax is returned when a file cannot be parsed
	ErrSyntax = python.ErrSyntax
	// ErrInternal flags a broken invariant between the syntax tree and the token sequence
	ErrInternal = errors.New("internal error")
)

func internalError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...))
}
