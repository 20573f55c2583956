package lexer

import (
	"unicode"

	"lambd/interpreter-go/pkg/token"
)

// Tokenize scans source into tokens. It never fails: characters outside the
// language become Illegal tokens which the parser reports at first use. The
// result always ends with exactly one EOF token.
func Tokenize(source string) []token.Token {
	s := &scanner{src: []rune(source), line: 1, col: 1}
	var out []token.Token
	for {
		tok := s.next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

type scanner struct {
	src  []rune
	pos  int
	line int
	col  int
}

// twoCharTokens must be tried before any single-character token sharing a prefix.
var twoCharTokens = map[string]token.Kind{
	"==": token.Comparison,
	"!=": token.Comparison,
	"<=": token.Comparison,
	">=": token.Comparison,
	"&&": token.Logical,
	"||": token.Logical,
}

var singleCharTokens = map[rune]token.Kind{
	'+': token.Operator,
	'-': token.Operator,
	'*': token.Operator,
	'/': token.Operator,
	'%': token.Operator,
	'<': token.Comparison,
	'>': token.Comparison,
	'!': token.Logical,
	'(': token.LeftParen,
	')': token.RightParen,
	'{': token.LeftBrace,
	'}': token.RightBrace,
	',': token.Comma,
	':': token.Colon,
	'.': token.Dot,
	'?': token.Question,
}

func (s *scanner) next() token.Token {
	s.skipTrivia()
	if s.atEnd() {
		return token.Token{Kind: token.EOF, Line: s.line, Column: s.col}
	}
	line, col := s.line, s.col
	start := s.pos
	r := s.advance()

	switch {
	case isDigit(r):
		for !s.atEnd() && isDigit(s.peek()) {
			s.advance()
		}
		return s.emit(token.Integer, start, line, col)
	case isIdentStart(r):
		for !s.atEnd() && isIdentPart(s.peek()) {
			s.advance()
		}
		word := string(s.src[start:s.pos])
		if kind, ok := token.Keywords[word]; ok {
			return token.Token{Kind: kind, Lexeme: word, Line: line, Column: col}
		}
		return token.Token{Kind: token.Identifier, Lexeme: word, Line: line, Column: col}
	case r == '\'' || r == '"':
		return s.scanString(r, start, line, col)
	}

	if !s.atEnd() {
		pair := string([]rune{r, s.peek()})
		if kind, ok := twoCharTokens[pair]; ok {
			s.advance()
			return token.Token{Kind: kind, Lexeme: pair, Line: line, Column: col}
		}
	}
	if kind, ok := singleCharTokens[r]; ok {
		return s.emit(kind, start, line, col)
	}
	return token.Token{Kind: token.Illegal, Lexeme: string(r), Reason: "Unexpected character.", Line: line, Column: col}
}

func (s *scanner) scanString(quote rune, start, line, col int) token.Token {
	for !s.atEnd() && s.peek() != quote {
		if s.peek() == '\n' {
			break
		}
		s.advance()
	}
	if s.atEnd() || s.peek() != quote {
		return token.Token{
			Kind:   token.Illegal,
			Lexeme: string(s.src[start:s.pos]),
			Reason: "Unterminated string.",
			Line:   line,
			Column: col,
		}
	}
	body := string(s.src[start+1 : s.pos])
	s.advance()
	return token.Token{Kind: token.String, Lexeme: body, Line: line, Column: col}
}

func (s *scanner) skipTrivia() {
	for !s.atEnd() {
		r := s.peek()
		switch {
		case r == '#':
			for !s.atEnd() && s.peek() != '\n' {
				s.advance()
			}
		case unicode.IsSpace(r):
			s.advance()
		default:
			return
		}
	}
}

func (s *scanner) emit(kind token.Kind, start, line, col int) token.Token {
	return token.Token{Kind: kind, Lexeme: string(s.src[start:s.pos]), Line: line, Column: col}
}

func (s *scanner) atEnd() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() rune { return s.src[s.pos] }

func (s *scanner) advance() rune {
	r := s.src[s.pos]
	s.pos++
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentPart(r rune) bool { return isIdentStart(r) || isDigit(r) }
