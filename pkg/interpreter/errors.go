package interpreter

import (
	"fmt"
	"strings"

	"lambd/interpreter-go/pkg/ast"
)

// InterpreterError is implemented by every failure raised during evaluation:
// *TypeError and *RuntimeError.
type InterpreterError interface {
	error
	Span() ast.Span
	interpreterError()
}

// TypeError reports an operator applied to operands of the wrong kind.
type TypeError struct {
	Operation string
	Types     []string
	Loc       ast.Span
}

func (e *TypeError) Error() string {
	return linePrefix(e.Loc) + fmt.Sprintf("TypeError: Cannot perform '%s' on types %s", e.Operation, strings.Join(e.Types, ", "))
}

func (e *TypeError) Span() ast.Span   { return e.Loc }
func (*TypeError) interpreterError() {}

// RuntimeError reports undefined names, calls of non-functions, arity
// mismatches and arithmetic faults.
type RuntimeError struct {
	Message string
	Loc     ast.Span
}

func (e *RuntimeError) Error() string {
	return linePrefix(e.Loc) + "RuntimeError: " + e.Message
}

func (e *RuntimeError) Span() ast.Span   { return e.Loc }
func (*RuntimeError) interpreterError() {}

func linePrefix(span ast.Span) string {
	if span.Start.Line == 0 {
		return ""
	}
	return fmt.Sprintf("[line %d] ", span.Start.Line)
}

func newTypeError(node ast.Node, op string, types ...string) *TypeError {
	return &TypeError{Operation: op, Types: types, Loc: spanOf(node)}
}

func newRuntimeError(node ast.Node, format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Loc: spanOf(node)}
}

func spanOf(node ast.Node) ast.Span {
	if node == nil {
		return ast.Span{}
	}
	return node.Span()
}
