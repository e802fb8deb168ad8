package info

import "fmt"

// Offset addresses a syntax node or token start in the source file.
// Line is 1-based, Column is a 0-based byte column.
type Offset struct {
	Line   int
	Column int
}

// NewOffset creates an offset from a 0-based row and byte column
func NewOffset(row, column uint32) Offset {
	return Offset{Line: int(row) + 1, Column: int(column)}
}

// Before reports whether o precedes other in the file
func (o Offset) Before(other Offset) bool {
	if o.Line != other.Line {
		return o.Line < other.Line
	}
	return o.Column < other.Column
}

func (o Offset) String() string {
	return fmt.Sprintf("%d:%d", o.Line, o.Column)
}

// Span represents a token index range [From, To) in a token sequence
type Span struct {
	From int
	To   int
}

// Len returns number of tokens in the span
func (s Span) Len() int {
	return s.To - s.From
}
