package ast

import "math/big"

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(big.NewInt(value))
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

// Operator helpers.

func Bin(op string, left, right Expression) *BinaryOperation {
	return NewBinaryOperation(left, op, right)
}

func Not(operand Expression) *UnaryOperation {
	return NewUnaryOperation("!", operand)
}

func Tern(condition, whenTrue, whenFalse Expression) *TernaryOperation {
	return NewTernaryOperation(condition, whenTrue, whenFalse)
}

// Function helpers.

func Call(callee Expression, args ...Expression) *FunctionApplication {
	if args == nil {
		args = []Expression{}
	}
	return NewFunctionApplication(callee, args)
}

func CallName(name string, args ...Expression) *FunctionApplication {
	return Call(ID(name), args...)
}

func Lam(param string, body Expression) *LambdaExpression {
	return NewLambdaExpression([]string{param}, body)
}

func Fn(name string, params []string, body Expression) *FunctionDefinition {
	if params == nil {
		params = []string{}
	}
	return NewFunctionDefinition(name, params, body)
}

func Prog(statements ...Statement) *Program {
	if statements == nil {
		statements = []Statement{}
	}
	return NewProgram(statements)
}
