package info

import "sort"

// TypeKind identifies the surface form of an annotation
type TypeKind int

const (
	// Bare is a single name, e.g. int
	Bare TypeKind = iota
	// Parameterized is a subscripted type, e.g. list[dict[str, int]]
	Parameterized
	// Union is a binary or-type, e.g. int | None
	Union
)

func (k TypeKind) String() string {
	switch k {
	case Bare:
		return "bare"
	case Parameterized:
		return "parameterized"
	case Union:
		return "union"
	}
	return "unknown"
}

// TypeExpression represents a resolved annotation with its literal text
type TypeExpression struct {
	Kind TypeKind
	Base string // Base name of a parameterized type (list in list[int])
	Text string // Literal annotation text as written in the source
	Span Span   // Token span the text was reconstructed from, empty for Bare
}

func (t *TypeExpression) String() string {
	if t == nil {
		return ""
	}
	return t.Text
}

// Parameter represents a function parameter
type Parameter struct {
	Name string
	Type *TypeExpression // nil only for an exempt receiver (self, cls)
}

// IsReceiver returns true if the parameter is an unannotated method receiver
func (p Parameter) IsReceiver() bool {
	return p.Type == nil
}

// Signature represents the annotations of an eligible function
type Signature struct {
	Name       string
	Offset     Offset
	IsMethod   bool
	IsAsync    bool
	Parameters []Parameter
	Result     *TypeExpression
}

// Documented returns the parameters that carry an annotation, in declaration order
func (s *Signature) Documented() []Parameter {
	var result []Parameter
	for _, param := range s.Parameters {
		if param.Name == "" || param.IsReceiver() {
			continue
		}
		result = append(result, param)
	}
	return result
}

// Candidates maps a function offset to its extracted signature
type Candidates map[Offset]*Signature

// Offsets returns candidate offsets in descending source order
func (c Candidates) Offsets() []Offset {
	result := make([]Offset, 0, len(c))
	for offset := range c {
		result = append(result, offset)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[j].Before(result[i])
	})
	return result
}
