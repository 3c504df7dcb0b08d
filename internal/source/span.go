package source

import (
	"fmt"
)

// Span identifies a byte-offset range inside a named source.
// An empty Name means the span points at nothing printable.
type Span struct {
	Name  string
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// NewSpan builds a span over [start, end) in the named source.
func NewSpan(name string, start, end uint32) *Span {
	return &Span{Name: name, Start: start, End: end}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d-%d", s.Name, s.Start, s.End)
}

// Cover extends the span to include other. Spans from different sources
// are left untouched.
func (s Span) Cover(other Span) Span {
	if s.Name != other.Name {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
