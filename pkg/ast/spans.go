package ast

import "fmt"

// Position is a 1-based line/column location in source text.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Span records where a node starts in the source.
type Span struct {
	Start Position `json:"start" yaml:"start"`
}

func (s Span) IsZero() bool { return s.Start.Line == 0 && s.Start.Column == 0 }

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
}

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// At builds a span starting at line/column.
func At(line, column int) Span {
	return Span{Start: Position{Line: line, Column: column}}
}
