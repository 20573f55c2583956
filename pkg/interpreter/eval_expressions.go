package interpreter

import (
	"lambd/interpreter-go/pkg/ast"
	"lambd/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: runtime.CloneBigInt(n.Value)}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.Identifier:
		val, err := env.Get(n.Name)
		if err != nil {
			return nil, newRuntimeError(n, "%s", err.Error())
		}
		return val, nil
	case *ast.LambdaExpression:
		return &runtime.FunctionValue{Declaration: n, Closure: env}, nil
	case *ast.FunctionApplication:
		return i.evaluateFunctionApplication(n, env)
	case *ast.BinaryOperation:
		return i.evaluateBinaryOperation(n, env)
	case *ast.UnaryOperation:
		return i.evaluateUnaryOperation(n, env)
	case *ast.TernaryOperation:
		return i.evaluateTernaryOperation(n, env)
	case nil:
		return nil, newRuntimeError(nil, "Unexpected nil expression")
	default:
		return nil, newRuntimeError(node, "Unsupported expression type: %s", node.NodeType())
	}
}

// evaluateFunctionApplication evaluates the callee, then each argument left
// to right, and only then checks that the callee is callable.
func (i *Interpreter) evaluateFunctionApplication(call *ast.FunctionApplication, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	fn, ok := callee.(*runtime.FunctionValue)
	if !ok {
		return nil, newRuntimeError(call, "Can only call functions, got %s", kindName(callee))
	}
	return i.invokeFunction(fn, args, call)
}

func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value, call *ast.FunctionApplication) (runtime.Value, error) {
	params := fn.Params()
	body := fn.Body()
	if body == nil {
		return nil, newRuntimeError(call, "Function has no body")
	}
	if len(args) != len(params) {
		if name := fn.Name(); name != "" {
			return nil, newRuntimeError(call, "Function '%s' expects %d arguments, got %d", name, len(params), len(args))
		}
		return nil, newRuntimeError(call, "Lambda expects %d arguments, got %d", len(params), len(args))
	}
	if i.depth >= i.maxCallDepth {
		return nil, newRuntimeError(call, "Maximum call depth exceeded")
	}
	i.depth++
	defer func() { i.depth-- }()

	if i.trace != nil {
		i.trace(i.depth, fn, args)
	}
	localEnv := runtime.NewEnvironment(fn.Closure)
	for idx, param := range params {
		localEnv.Define(param, args[idx])
	}
	return i.evaluateExpression(body, localEnv)
}

// evaluateBinaryOperation evaluates both operands before applying the
// operator, including for && and ||.
func (i *Interpreter) evaluateBinaryOperation(expr *ast.BinaryOperation, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinaryOperator(expr, expr.Operator, left, right)
}

func (i *Interpreter) evaluateUnaryOperation(expr *ast.UnaryOperation, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "!":
		b, ok := operand.(runtime.BoolValue)
		if !ok {
			return nil, newTypeError(expr, "!", kindName(operand))
		}
		return runtime.BoolValue{Val: !b.Val}, nil
	default:
		return nil, newRuntimeError(expr, "Unsupported unary operator %s", expr.Operator)
	}
}

// evaluateTernaryOperation evaluates only the selected branch.
func (i *Interpreter) evaluateTernaryOperation(expr *ast.TernaryOperation, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.evaluateExpression(expr.Condition, env)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(runtime.BoolValue)
	if !ok {
		return nil, newTypeError(expr, "?", kindName(cond))
	}
	if b.Val {
		return i.evaluateExpression(expr.TrueBranch, env)
	}
	return i.evaluateExpression(expr.FalseBranch, env)
}

func kindName(v runtime.Value) string {
	if v == nil {
		return "none"
	}
	return v.Kind().String()
}
