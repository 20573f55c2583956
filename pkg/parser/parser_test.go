package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"lambd/interpreter-go/pkg/ast"
	"lambd/interpreter-go/pkg/lexer"
	"lambd/interpreter-go/pkg/token"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, err := Parse(lexer.Tokenize(source))
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return program
}

func parseFailure(t *testing.T, source string) *ParseError {
	t.Helper()
	_, err := Parse(lexer.Tokenize(source))
	if err == nil {
		t.Fatalf("expected parse error for %q", source)
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	return perr
}

// normalizeNode clears spans so parsed trees compare equal to DSL-built ones.
func normalizeNode(node ast.Node) {
	if node == nil {
		return
	}
	ast.SetSpan(node, ast.Span{})
	switch n := node.(type) {
	case *ast.Program:
		for _, stmt := range n.Statements {
			normalizeNode(stmt)
		}
	case *ast.FunctionDefinition:
		normalizeNode(n.Body)
	case *ast.LambdaExpression:
		normalizeNode(n.Body)
	case *ast.FunctionApplication:
		normalizeNode(n.Callee)
		for _, arg := range n.Arguments {
			normalizeNode(arg)
		}
	case *ast.BinaryOperation:
		normalizeNode(n.Left)
		normalizeNode(n.Right)
	case *ast.UnaryOperation:
		normalizeNode(n.Operand)
	case *ast.TernaryOperation:
		normalizeNode(n.Condition)
		normalizeNode(n.TrueBranch)
		normalizeNode(n.FalseBranch)
	}
}

func assertProgramsEqual(t testing.TB, expected, actual *ast.Program) {
	t.Helper()
	normalizeNode(actual)
	if reflect.DeepEqual(expected, actual) {
		return
	}
	wantJSON, _ := json.MarshalIndent(expected, "", "  ")
	gotJSON, _ := json.MarshalIndent(actual, "", "  ")
	if bytes.Equal(wantJSON, gotJSON) {
		return
	}
	t.Fatalf("program mismatch\nexpected: %s\n   actual: %s", wantJSON, gotJSON)
}

func TestParseEmptyProgram(t *testing.T) {
	program := parseSource(t, "")
	if len(program.Statements) != 0 {
		t.Fatalf("expected no statements, got %d", len(program.Statements))
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   ast.Expression
	}{
		{
			name:   "factor binds tighter than term",
			source: "1 + 2 * 3",
			want:   ast.Bin("+", ast.Int(1), ast.Bin("*", ast.Int(2), ast.Int(3))),
		},
		{
			name:   "term is left associative",
			source: "10 - 3 - 2",
			want:   ast.Bin("-", ast.Bin("-", ast.Int(10), ast.Int(3)), ast.Int(2)),
		},
		{
			name:   "factor is left associative",
			source: "8 / 2 % 3",
			want:   ast.Bin("%", ast.Bin("/", ast.Int(8), ast.Int(2)), ast.Int(3)),
		},
		{
			name:   "comparison binds tighter than equality",
			source: "1 < 2 == True",
			want:   ast.Bin("==", ast.Bin("<", ast.Int(1), ast.Int(2)), ast.Bool(true)),
		},
		{
			name:   "and binds tighter than or",
			source: "True || False && False",
			want:   ast.Bin("||", ast.Bool(true), ast.Bin("&&", ast.Bool(false), ast.Bool(false))),
		},
		{
			name:   "equality binds tighter than and",
			source: "1 == 1 && 2 != 3",
			want: ast.Bin("&&",
				ast.Bin("==", ast.Int(1), ast.Int(1)),
				ast.Bin("!=", ast.Int(2), ast.Int(3)),
			),
		},
		{
			name:   "unary not nests",
			source: "!!True",
			want:   ast.Not(ast.Not(ast.Bool(true))),
		},
		{
			name:   "not binds tighter than and",
			source: "!True && False",
			want:   ast.Bin("&&", ast.Not(ast.Bool(true)), ast.Bool(false)),
		},
		{
			name:   "parentheses group",
			source: "(3 + 4) * (2 - 1)",
			want: ast.Bin("*",
				ast.Bin("+", ast.Int(3), ast.Int(4)),
				ast.Bin("-", ast.Int(2), ast.Int(1)),
			),
		},
		{
			name:   "ternary has lowest precedence",
			source: "n == 0 || n == 1 ? 1 : n * 2",
			want: ast.Tern(
				ast.Bin("||",
					ast.Bin("==", ast.ID("n"), ast.Int(0)),
					ast.Bin("==", ast.ID("n"), ast.Int(1)),
				),
				ast.Int(1),
				ast.Bin("*", ast.ID("n"), ast.Int(2)),
			),
		},
		{
			name:   "ternary branches nest to the right",
			source: "a ? 1 : b ? 2 : 3",
			want:   ast.Tern(ast.ID("a"), ast.Int(1), ast.Tern(ast.ID("b"), ast.Int(2), ast.Int(3))),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseSource(t, tc.source)
			assertProgramsEqual(t, ast.Prog(tc.want), got)
		})
	}
}

func TestParseFunctionDefinition(t *testing.T) {
	got := parseSource(t, `
		Defun {'name': 'add', 'arguments': (x, y)}
		x + y
		add(3, 4)
	`)
	want := ast.Prog(
		ast.Fn("add", []string{"x", "y"}, ast.Bin("+", ast.ID("x"), ast.ID("y"))),
		ast.CallName("add", ast.Int(3), ast.Int(4)),
	)
	assertProgramsEqual(t, want, got)
}

func TestParseFunctionDefinitionTrailingCommaAndEmptyParams(t *testing.T) {
	got := parseSource(t, `
		Defun {'name': 'one', 'arguments': (n,)} n
		Defun {"name": "zero", "arguments": ()} 0
	`)
	want := ast.Prog(
		ast.Fn("one", []string{"n"}, ast.ID("n")),
		ast.Fn("zero", []string{}, ast.Int(0)),
	)
	assertProgramsEqual(t, want, got)
}

func TestParseLambdaApplication(t *testing.T) {
	got := parseSource(t, "(Lambd x. x * x)(5)")
	want := ast.Prog(
		ast.Call(ast.Lam("x", ast.Bin("*", ast.ID("x"), ast.ID("x"))), ast.Int(5)),
	)
	assertProgramsEqual(t, want, got)
}

func TestParseLambdaBodyStopsAtComma(t *testing.T) {
	got := parseSource(t, "apply(Lambd x. x * x, 5)")
	want := ast.Prog(
		ast.CallName("apply", ast.Lam("x", ast.Bin("*", ast.ID("x"), ast.ID("x"))), ast.Int(5)),
	)
	assertProgramsEqual(t, want, got)
}

func TestParseChainedCalls(t *testing.T) {
	got := parseSource(t, "add5()(10)")
	want := ast.Prog(ast.Call(ast.CallName("add5"), ast.Int(10)))
	assertProgramsEqual(t, want, got)
}

func TestParseIdentifierWithoutParenIsNotCall(t *testing.T) {
	got := parseSource(t, "f\ng")
	want := ast.Prog(ast.ID("f"), ast.ID("g"))
	assertProgramsEqual(t, want, got)
}

func TestParseLambdaReturnedFromDefinition(t *testing.T) {
	got := parseSource(t, `
		Defun {'name': 'make_adder', 'arguments': (n,)}
		Lambd x. x + n

		Defun {'name': 'add5', 'arguments': ()}
		make_adder(5)
	`)
	want := ast.Prog(
		ast.Fn("make_adder", []string{"n"}, ast.Lam("x", ast.Bin("+", ast.ID("x"), ast.ID("n")))),
		ast.Fn("add5", []string{}, ast.CallName("make_adder", ast.Int(5))),
	)
	assertProgramsEqual(t, want, got)
}

func TestParseRecordsSpans(t *testing.T) {
	program := parseSource(t, "1 +\n  foo")
	bin, ok := program.Statements[0].(*ast.BinaryOperation)
	if !ok {
		t.Fatalf("expected binary operation, got %T", program.Statements[0])
	}
	if span := bin.Span(); span != ast.At(1, 3) {
		t.Fatalf("unexpected operator span %v", span)
	}
	if span := bin.Right.Span(); span != ast.At(2, 3) {
		t.Fatalf("unexpected identifier span %v", span)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		message string
		atEnd   bool
		lexeme  string
	}{
		{name: "missing brace", source: "Defun 'name'", message: "Expect '{' after 'Defun'.", lexeme: "name"},
		{name: "wrong first key", source: "Defun {'id': 'f'", message: "Expect 'name' key.", lexeme: "id"},
		{name: "missing colon after name", source: "Defun {'name' 'f'", message: "Expect ':' after 'name'.", lexeme: "f"},
		{name: "missing function name", source: "Defun {'name': f", message: "Expect function name.", lexeme: "f"},
		{name: "function name not identifier", source: "Defun {'name': 'my fn'", message: "Function name must be an identifier.", lexeme: "my fn"},
		{name: "keyword function name", source: "Defun {'name': 'Lambd'", message: "Function name must be an identifier.", lexeme: "Lambd"},
		{name: "missing comma", source: "Defun {'name': 'f' 'arguments'", message: "Expect ',' after function name.", lexeme: "arguments"},
		{name: "wrong second key", source: "Defun {'name': 'f', 'args': ()}", message: "Expect 'arguments' key.", lexeme: "args"},
		{name: "missing paren", source: "Defun {'name': 'f', 'arguments': x}", message: "Expect '(' before argument list.", lexeme: "x"},
		{name: "bad parameter", source: "Defun {'name': 'f', 'arguments': (1)}", message: "Expect argument name.", lexeme: "1"},
		{name: "duplicate parameter", source: "Defun {'name': 'f', 'arguments': (x, x)} x", message: "Duplicate parameter name.", lexeme: "x"},
		{name: "missing close brace", source: "Defun {'name': 'f', 'arguments': (x) x", message: "Expect '}' after function definition.", lexeme: "x"},
		{name: "missing body", source: "Defun {'name': 'f', 'arguments': (x)}", message: "Expect expression.", atEnd: true},
		{name: "unclosed group", source: "(1 + 2", message: "Expect ')' after expression.", atEnd: true},
		{name: "unclosed call", source: "f(1, 2", message: "Expect ')' after arguments.", atEnd: true},
		{name: "ternary missing colon", source: "True ? 1 2", message: "Expect ':' in ternary expression.", lexeme: "2"},
		{name: "lambda missing parameter", source: "Lambd . x", message: "Expect parameter name.", lexeme: "."},
		{name: "lambda missing dot", source: "Lambd x x", message: "Expect '.' after parameter name.", lexeme: "x"},
		{name: "dangling operator", source: "1 +", message: "Expect expression.", atEnd: true},
		{name: "stray close paren", source: "1 )", message: "Expect expression.", lexeme: ")"},
		{name: "illegal character", source: "1 & 2", message: "Unexpected character.", lexeme: "&"},
		{name: "single equals", source: "1 = 2", message: "Unexpected character.", lexeme: "="},
		{name: "unterminated string", source: "Defun {'name", message: "Unterminated string.", lexeme: "'name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			perr := parseFailure(t, tc.source)
			if perr.Message != tc.message {
				t.Fatalf("message = %q, want %q", perr.Message, tc.message)
			}
			if perr.AtEnd() != tc.atEnd {
				t.Fatalf("AtEnd = %v, want %v (token %v)", perr.AtEnd(), tc.atEnd, perr.Token)
			}
			if !tc.atEnd && perr.Token.Lexeme != tc.lexeme {
				t.Fatalf("token lexeme = %q, want %q", perr.Token.Lexeme, tc.lexeme)
			}
		})
	}
}

func TestParseErrorFormatting(t *testing.T) {
	perr := parseFailure(t, "1 +\n)")
	if got, want := perr.Error(), "[line 2] Error at ')': Expect expression."; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	perr = parseFailure(t, "(1\n+ 2")
	if got, want := perr.Error(), "[line 2] Error at end: Expect ')' after expression."; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestIsIncomplete(t *testing.T) {
	_, err := Parse(lexer.Tokenize("Defun {'name': 'f', 'arguments': (x)}"))
	if !IsIncomplete(err) {
		t.Fatalf("expected incomplete error, got %v", err)
	}
	_, err = Parse(lexer.Tokenize("1 )"))
	if err == nil || IsIncomplete(err) {
		t.Fatalf("expected complete parse error, got %v", err)
	}
	if IsIncomplete(errors.New("other")) {
		t.Fatalf("unrelated errors are never incomplete")
	}
}

func TestParseAppendsMissingEOF(t *testing.T) {
	tokens := []token.Token{{Kind: token.Integer, Lexeme: "7", Line: 3, Column: 1}}
	program, err := Parse(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertProgramsEqual(t, ast.Prog(ast.Int(7)), program)

	_, err = Parse([]token.Token{{Kind: token.Operator, Lexeme: "+", Line: 4, Column: 2}})
	if err == nil || !strings.Contains(err.Error(), "[line 4]") {
		t.Fatalf("expected error on line 4, got %v", err)
	}
}

func TestParseLineStartingWithParenContinuesPreviousStatement(t *testing.T) {
	got := parseSource(t, "Defun {'name': 'f', 'arguments': (n)} n\n(f)(3)")
	want := ast.Prog(
		ast.Fn("f", []string{"n"}, ast.Call(ast.Call(ast.ID("n"), ast.ID("f")), ast.Int(3))),
	)
	assertProgramsEqual(t, want, got)

	got = parseSource(t, "Defun {'name': 'f', 'arguments': (n)} n\nf(3)")
	want = ast.Prog(
		ast.Fn("f", []string{"n"}, ast.ID("n")),
		ast.CallName("f", ast.Int(3)),
	)
	assertProgramsEqual(t, want, got)
}
