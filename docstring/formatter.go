// Package docstring renders docstring templates for annotated function signatures.
package docstring

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/typedoc/inspector/info"
)

// ErrUnknownStyle is returned when a style is not registered
var ErrUnknownStyle = errors.New("unknown docstring style")

const (
	descriptionPlaceholder = "[function description]"
	returnPlaceholder      = "[return description]"
	noArguments            = "No arguments"
	nested                 = "    "
)

// Formatter renders a docstring block for a signature.
//
// The returned text starts with a line break and every line is prefixed with indent,
// so it can be inserted right before the newline that ends a function header.
// Blank lines carry no indentation.
type Formatter interface {
	Name() string
	Format(signature *info.Signature, indent string) string
}

// Registry maps style names to formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a registry with the supplied formatters, later names win
func NewRegistry(formatters ...Formatter) *Registry {
	ret := &Registry{formatters: map[string]Formatter{}}
	for _, formatter := range formatters {
		ret.Register(formatter)
	}
	return ret
}

// Default returns registry with all built-in styles
func Default(quote string) *Registry {
	return NewRegistry(
		&RST{Quote: quote},
		&Google{Quote: quote},
		&Numpy{Quote: quote},
	)
}

// Register adds a formatter
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Lookup returns formatter for style name
func (r *Registry) Lookup(name string) (Formatter, error) {
	formatter, ok := r.formatters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q, available: %s", ErrUnknownStyle, name, strings.Join(r.Names(), ", "))
	}
	return formatter, nil
}

// Names returns sorted style names
func (r *Registry) Names() []string {
	var result []string
	for name := range r.formatters {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// block accumulates docstring lines
type block struct {
	indent string
	lines  []string
}

func (b *block) add(lines ...string) {
	b.lines = append(b.lines, lines...)
}

func (b *block) String() string {
	builder := strings.Builder{}
	for _, line := range b.lines {
		builder.WriteByte('\n')
		if line == "" {
			continue
		}
		builder.WriteString(b.indent)
		builder.WriteString(line)
	}
	return builder.String()
}

func quoteOrDefault(quote string) string {
	if quote == "" {
		return `"""`
	}
	return quote
}
