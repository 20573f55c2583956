package interpreter

import (
	"lambd/interpreter-go/pkg/ast"
	"lambd/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested function invocations.
const DefaultMaxCallDepth = 10000

// CallTrace observes every function invocation after its arguments have been
// evaluated. depth is 1 for calls made from top-level statements.
type CallTrace func(depth int, fn *runtime.FunctionValue, args []runtime.Value)

// Interpreter evaluates programs against an explicit global environment.
type Interpreter struct {
	global       *runtime.Environment
	maxCallDepth int
	depth        int
	trace        CallTrace
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithMaxCallDepth sets the call-nesting limit; n <= 0 keeps the default.
func WithMaxCallDepth(n int) Option {
	return func(i *Interpreter) {
		if n > 0 {
			i.maxCallDepth = n
		}
	}
}

// WithTrace installs a hook invoked on every function call.
func WithTrace(trace CallTrace) Option {
	return func(i *Interpreter) {
		i.trace = trace
	}
}

// WithGlobalEnvironment evaluates top-level statements in env.
func WithGlobalEnvironment(env *runtime.Environment) Option {
	return func(i *Interpreter) {
		if env != nil {
			i.global = env
		}
	}
}

// New returns an interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global:       runtime.NewEnvironment(nil),
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Interpret evaluates program in the global environment and returns the value
// of its last statement. The value is nil when the program is empty or ends
// with a function definition.
func (i *Interpreter) Interpret(program *ast.Program) (runtime.Value, error) {
	return i.InterpretIn(program, i.global)
}

// InterpretIn evaluates each statement of program in order against env.
func (i *Interpreter) InterpretIn(program *ast.Program, env *runtime.Environment) (runtime.Value, error) {
	if program == nil {
		return nil, nil
	}
	var last runtime.Value
	for _, stmt := range program.Statements {
		val, err := i.Evaluate(stmt, env)
		if err != nil {
			return nil, err
		}
		last = val
	}
	return last, nil
}

// Evaluate evaluates a single node. Function definitions bind their name in
// env and produce no value.
func (i *Interpreter) Evaluate(node ast.Node, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Program:
		return i.InterpretIn(n, env)
	case *ast.FunctionDefinition:
		return nil, i.evaluateFunctionDefinition(n, env)
	case ast.Expression:
		return i.evaluateExpression(n, env)
	case nil:
		return nil, newRuntimeError(nil, "Unexpected nil node")
	default:
		return nil, newRuntimeError(node, "Unexpected node type: %s", node.NodeType())
	}
}

// evaluateFunctionDefinition binds the function before its body can run, so
// the body sees its own name and recursion works.
func (i *Interpreter) evaluateFunctionDefinition(def *ast.FunctionDefinition, env *runtime.Environment) error {
	env.Define(def.Name, &runtime.FunctionValue{Declaration: def, Closure: env})
	return nil
}
