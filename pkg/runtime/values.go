package runtime

import (
	"fmt"
	"math/big"

	"lambd/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindBool
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBool:
		return "bool"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

// IntegerValue holds an arbitrary-precision integer; Val is never mutated
// after construction.
type IntegerValue struct {
	Val *big.Int
}

func (v IntegerValue) Kind() Kind { return KindInteger }

// NewInteger wraps an int64.
func NewInteger(n int64) IntegerValue {
	return IntegerValue{Val: big.NewInt(n)}
}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// CloneBigInt copies v so callers can keep literal values immutable.
func CloneBigInt(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// FunctionValue pairs a declaration with the environment captured where it
// was created.
type FunctionValue struct {
	Declaration ast.Node // *ast.LambdaExpression or *ast.FunctionDefinition
	Closure     *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// Name returns the bound name of a definition, or "" for lambdas.
func (v *FunctionValue) Name() string {
	if def, ok := v.Declaration.(*ast.FunctionDefinition); ok {
		return def.Name
	}
	return ""
}

// Params returns the declared parameter names.
func (v *FunctionValue) Params() []string {
	switch decl := v.Declaration.(type) {
	case *ast.FunctionDefinition:
		return decl.Params
	case *ast.LambdaExpression:
		return decl.Params
	default:
		return nil
	}
}

// Body returns the expression evaluated on invocation.
func (v *FunctionValue) Body() ast.Expression {
	switch decl := v.Declaration.(type) {
	case *ast.FunctionDefinition:
		return decl.Body
	case *ast.LambdaExpression:
		return decl.Body
	default:
		return nil
	}
}
