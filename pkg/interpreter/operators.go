package interpreter

import (
	"math/big"

	"lambd/interpreter-go/pkg/ast"
	"lambd/interpreter-go/pkg/runtime"
)

// asInteger coerces integers and booleans (False=0, True=1) to a big.Int.
// Functions never coerce.
func asInteger(v runtime.Value) (*big.Int, bool) {
	switch val := v.(type) {
	case runtime.IntegerValue:
		if val.Val == nil {
			return new(big.Int), true
		}
		return val.Val, true
	case runtime.BoolValue:
		if val.Val {
			return big.NewInt(1), true
		}
		return new(big.Int), true
	default:
		return nil, false
	}
}

func applyBinaryOperator(node ast.Node, op string, left, right runtime.Value) (runtime.Value, error) {
	l, lok := asInteger(left)
	r, rok := asInteger(right)
	if !lok || !rok {
		return nil, newTypeError(node, op, kindName(left), kindName(right))
	}
	switch op {
	case "&&":
		// The deciding operand is the result, keeping its kind.
		if l.Sign() == 0 {
			return left, nil
		}
		return right, nil
	case "||":
		if l.Sign() != 0 {
			return left, nil
		}
		return right, nil
	case "+":
		return runtime.IntegerValue{Val: new(big.Int).Add(l, r)}, nil
	case "-":
		return runtime.IntegerValue{Val: new(big.Int).Sub(l, r)}, nil
	case "*":
		return runtime.IntegerValue{Val: new(big.Int).Mul(l, r)}, nil
	case "/", "%":
		if r.Sign() == 0 {
			return nil, newRuntimeError(node, "Division by zero.")
		}
		q, m := floorDivMod(l, r)
		if op == "/" {
			return runtime.IntegerValue{Val: q}, nil
		}
		return runtime.IntegerValue{Val: m}, nil
	case "==":
		return runtime.BoolValue{Val: l.Cmp(r) == 0}, nil
	case "!=":
		return runtime.BoolValue{Val: l.Cmp(r) != 0}, nil
	case "<":
		return runtime.BoolValue{Val: l.Cmp(r) < 0}, nil
	case "<=":
		return runtime.BoolValue{Val: l.Cmp(r) <= 0}, nil
	case ">":
		return runtime.BoolValue{Val: l.Cmp(r) > 0}, nil
	case ">=":
		return runtime.BoolValue{Val: l.Cmp(r) >= 0}, nil
	default:
		return nil, newRuntimeError(node, "Unsupported binary operator %s", op)
	}
}

// floorDivMod rounds the quotient toward negative infinity; the remainder
// takes the sign of the divisor. b must be non-zero.
func floorDivMod(a, b *big.Int) (*big.Int, *big.Int) {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && r.Sign() != b.Sign() {
		q.Sub(q, big.NewInt(1))
		r.Add(r, b)
	}
	return q, r
}
