package parser

import (
	"math/big"

	"lambd/interpreter-go/pkg/ast"
	"lambd/interpreter-go/pkg/lexer"
	"lambd/interpreter-go/pkg/token"
)

// Parse builds a program from a token sequence produced by lexer.Tokenize.
// Parsing stops at the first error, which is always a *ParseError.
func Parse(tokens []token.Token) (*ast.Program, error) {
	p := newParser(tokens)
	return p.parseProgram()
}

type parser struct {
	tokens  []token.Token
	current int
}

func newParser(tokens []token.Token) *parser {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != token.EOF {
		eof := token.Token{Kind: token.EOF, Line: 1, Column: 1}
		if n > 0 {
			eof.Line = tokens[n-1].Line
		}
		tokens = append(append([]token.Token(nil), tokens...), eof)
	}
	return &parser{tokens: tokens}
}

func (p *parser) parseProgram() (*ast.Program, error) {
	statements := make([]ast.Statement, 0)
	for !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	program := ast.NewProgram(statements)
	ast.SetSpan(program, ast.At(1, 1))
	return program, nil
}

func (p *parser) parseStatement() (ast.Statement, error) {
	if p.check(token.Defun) {
		return p.parseFunctionDefinition(p.advance())
	}
	return p.parseExpression()
}

// parseFunctionDefinition reads
//
//	Defun {'name': 'f', 'arguments': (a, b)} body
func (p *parser) parseFunctionDefinition(defun token.Token) (ast.Statement, error) {
	if _, err := p.consume(token.LeftBrace, "Expect '{' after 'Defun'."); err != nil {
		return nil, err
	}
	if err := p.consumeKey("name"); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Colon, "Expect ':' after 'name'."); err != nil {
		return nil, err
	}
	nameTok, err := p.consume(token.String, "Expect function name.")
	if err != nil {
		return nil, err
	}
	if !isIdentifierText(nameTok.Lexeme) {
		return nil, p.errorAt(nameTok, "Function name must be an identifier.")
	}
	if _, err := p.consume(token.Comma, "Expect ',' after function name."); err != nil {
		return nil, err
	}
	if err := p.consumeKey("arguments"); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Colon, "Expect ':' after 'arguments'."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LeftParen, "Expect '(' before argument list."); err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after argument list."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after function definition."); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	def := ast.NewFunctionDefinition(nameTok.Lexeme, params, body)
	annotate(def, defun)
	return def, nil
}

func (p *parser) consumeKey(key string) error {
	message := "Expect '" + key + "' key."
	tok, err := p.consume(token.String, message)
	if err != nil {
		return err
	}
	if tok.Lexeme != key {
		return p.errorAt(tok, message)
	}
	return nil
}

// parseParameterList accepts a single trailing comma so that `(n,)` is valid.
func (p *parser) parseParameterList() ([]string, error) {
	params := make([]string, 0)
	seen := make(map[string]struct{})
	for !p.check(token.RightParen) {
		tok, err := p.consume(token.Identifier, "Expect argument name.")
		if err != nil {
			return nil, err
		}
		if _, dup := seen[tok.Lexeme]; dup {
			return nil, p.errorAt(tok, "Duplicate parameter name.")
		}
		seen[tok.Lexeme] = struct{}{}
		params = append(params, tok.Lexeme)
		if !p.match(token.Comma) {
			break
		}
	}
	return params, nil
}

func (p *parser) parseExpression() (ast.Expression, error) {
	return p.parseTernary()
}

func (p *parser) parseTernary() (ast.Expression, error) {
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.check(token.Question) {
		return cond, nil
	}
	question := p.advance()
	whenTrue, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Colon, "Expect ':' in ternary expression."); err != nil {
		return nil, err
	}
	whenFalse, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	expr := ast.NewTernaryOperation(cond, whenTrue, whenFalse)
	annotate(expr, question)
	return expr, nil
}

func (p *parser) parseOr() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseAnd, token.Logical, "||")
}

func (p *parser) parseAnd() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseEquality, token.Logical, "&&")
}

func (p *parser) parseEquality() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseComparison, token.Comparison, "==", "!=")
}

func (p *parser) parseComparison() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseTerm, token.Comparison, "<", ">", "<=", ">=")
}

func (p *parser) parseTerm() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseFactor, token.Operator, "+", "-")
}

func (p *parser) parseFactor() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseUnary, token.Operator, "*", "/", "%")
}

// parseBinaryLevel folds a left-associative chain of operators drawn from ops.
func (p *parser) parseBinaryLevel(operand func() (ast.Expression, error), kind token.Kind, ops ...string) (ast.Expression, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.peek().Is(kind, ops...) {
		opTok := p.advance()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		bin := ast.NewBinaryOperation(expr, opTok.Lexeme, right)
		annotate(bin, opTok)
		expr = bin
	}
	return expr, nil
}

func (p *parser) parseUnary() (ast.Expression, error) {
	if p.peek().Is(token.Logical, "!") {
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr := ast.NewUnaryOperation(opTok.Lexeme, operand)
		annotate(expr, opTok)
		return expr, nil
	}
	return p.parseCall()
}

// parseCall applies any number of argument lists to a primary, so both
// `f(1)(2)` and `(Lambd x. x)(1)` are applications.
func (p *parser) parseCall() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.check(token.LeftParen) {
		open := p.advance()
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expect ')' after arguments."); err != nil {
			return nil, err
		}
		call := ast.NewFunctionApplication(expr, args)
		annotate(call, open)
		expr = call
	}
	return expr, nil
}

func (p *parser) parseArguments() ([]ast.Expression, error) {
	args := make([]ast.Expression, 0)
	if p.check(token.RightParen) {
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(token.Comma) {
			return args, nil
		}
	}
}

func (p *parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.Integer:
		p.advance()
		value, ok := new(big.Int).SetString(tok.Lexeme, 10)
		if !ok {
			return nil, p.errorAt(tok, "Invalid integer literal.")
		}
		lit := ast.NewIntegerLiteral(value)
		annotate(lit, tok)
		return lit, nil
	case token.Boolean:
		p.advance()
		lit := ast.NewBooleanLiteral(tok.Lexeme == "True")
		annotate(lit, tok)
		return lit, nil
	case token.Identifier:
		p.advance()
		id := ast.NewIdentifier(tok.Lexeme)
		annotate(id, tok)
		return id, nil
	case token.LeftParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return expr, nil
	case token.Lambd:
		return p.parseLambda(p.advance())
	default:
		return nil, p.errorAt(tok, "Expect expression.")
	}
}

func (p *parser) parseLambda(lambd token.Token) (ast.Expression, error) {
	param, err := p.consume(token.Identifier, "Expect parameter name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Dot, "Expect '.' after parameter name."); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	expr := ast.NewLambdaExpression([]string{param.Lexeme}, body)
	annotate(expr, lambd)
	return expr, nil
}

// Cursor helpers.

func (p *parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *parser) advance() token.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), message)
}

// errorAt builds a ParseError. Illegal tokens explain themselves.
func (p *parser) errorAt(tok token.Token, message string) *ParseError {
	if tok.Kind == token.Illegal && tok.Reason != "" {
		message = tok.Reason
	}
	return &ParseError{Token: tok, Message: message}
}

func annotate(node ast.Node, tok token.Token) {
	ast.SetSpan(node, ast.At(tok.Line, tok.Column))
}

func isIdentifierText(text string) bool {
	toks := lexer.Tokenize(text)
	return len(toks) == 2 && toks[0].Kind == token.Identifier && toks[0].Lexeme == text
}
