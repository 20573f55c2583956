package driver

import (
	"log"
	"strings"

	"lambd/interpreter-go/pkg/ast"
	"lambd/interpreter-go/pkg/interpreter"
	"lambd/interpreter-go/pkg/lexer"
	"lambd/interpreter-go/pkg/parser"
	"lambd/interpreter-go/pkg/runtime"
	"lambd/interpreter-go/pkg/token"
)

// Session runs source text through tokenize, parse and interpret against one
// interpreter, so definitions survive between Run calls.
type Session struct {
	interp *interpreter.Interpreter
	logger *log.Logger
}

// Binding is a global name with its rendered value.
type Binding struct {
	Name  string
	Value string
}

// NewSession builds a session from cfg (nil means defaults). A non-nil logger
// receives pipeline stages and every function call.
func NewSession(cfg *Config, logger *log.Logger) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Session{logger: logger}
	opts := []interpreter.Option{interpreter.WithMaxCallDepth(cfg.MaxCallDepth)}
	if logger != nil {
		opts = append(opts, interpreter.WithTrace(s.traceCall))
	}
	s.interp = interpreter.New(opts...)
	return s
}

// Interpreter exposes the underlying interpreter.
func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

// Tokenize scans source.
func (s *Session) Tokenize(source string) []token.Token {
	tokens := lexer.Tokenize(source)
	s.logf("tokenized %d tokens", len(tokens))
	return tokens
}

// Parse tokenizes and parses source.
func (s *Session) Parse(source string) (*ast.Program, error) {
	return s.ParseTokens(s.Tokenize(source))
}

// ParseTokens parses an already scanned token sequence.
func (s *Session) ParseTokens(tokens []token.Token) (*ast.Program, error) {
	program, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	s.logf("parsed %d statements", len(program.Statements))
	return program, nil
}

// Run evaluates source and returns the value of its last statement, or nil
// when there is none.
func (s *Session) Run(source string) (runtime.Value, error) {
	program, err := s.Parse(source)
	if err != nil {
		return nil, err
	}
	return s.Interpret(program)
}

// Interpret evaluates a parsed program in the session's global environment.
func (s *Session) Interpret(program *ast.Program) (runtime.Value, error) {
	val, err := s.interp.Interpret(program)
	if err != nil {
		return nil, err
	}
	s.logf("result %s", describe(val))
	return val, nil
}

// Bindings lists the global environment in name order.
func (s *Session) Bindings() []Binding {
	env := s.interp.GlobalEnvironment()
	snapshot := env.Snapshot()
	out := make([]Binding, 0, len(snapshot))
	for _, name := range env.Keys() {
		out = append(out, Binding{Name: name, Value: runtime.Format(snapshot[name])})
	}
	return out
}

func (s *Session) traceCall(depth int, fn *runtime.FunctionValue, args []runtime.Value) {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, runtime.Format(arg))
	}
	name := fn.Name()
	if name == "" {
		name = "<lambda>"
	}
	s.logf("%scall %s(%s)", strings.Repeat("  ", depth-1), name, strings.Join(parts, ", "))
}

func (s *Session) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func describe(v runtime.Value) string {
	if v == nil {
		return "none"
	}
	return v.Kind().String() + " " + runtime.Format(v)
}
