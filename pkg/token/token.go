package token

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

const (
	EOF Kind = iota
	Illegal

	Integer
	Boolean
	Identifier
	String

	Defun
	Lambd

	Operator   // + - * / %
	Comparison // == != < > <= >=
	Logical    // && || !

	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Comma
	Colon
	Dot
	Question
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Illegal:
		return "ILLEGAL"
	case Integer:
		return "INTEGER"
	case Boolean:
		return "BOOLEAN"
	case Identifier:
		return "IDENTIFIER"
	case String:
		return "STRING"
	case Defun:
		return "DEFUN"
	case Lambd:
		return "LAMBD"
	case Operator:
		return "OPERATOR"
	case Comparison:
		return "COMPARISON"
	case Logical:
		return "LOGICAL"
	case LeftParen:
		return "LPAREN"
	case RightParen:
		return "RPAREN"
	case LeftBrace:
		return "LBRACE"
	case RightBrace:
		return "RBRACE"
	case Comma:
		return "COMMA"
	case Colon:
		return "COLON"
	case Dot:
		return "DOT"
	case Question:
		return "QUESTION"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Keywords maps reserved words to their token kinds.
var Keywords = map[string]Kind{
	"Defun": Defun,
	"Lambd": Lambd,
	"True":  Boolean,
	"False": Boolean,
}

// Token is a single lexical unit. String tokens hold their unquoted text in
// Lexeme; Illegal tokens explain themselves through Reason.
type Token struct {
	Kind   Kind
	Lexeme string
	Reason string
	Line   int
	Column int
}

// Is reports whether the token has the given kind and, when lexemes are
// supplied, one of those lexemes.
func (t Token) Is(kind Kind, lexemes ...string) bool {
	if t.Kind != kind {
		return false
	}
	if len(lexemes) == 0 {
		return true
	}
	for _, lex := range lexemes {
		if t.Lexeme == lex {
			return true
		}
	}
	return false
}

func (t Token) String() string {
	if t.Kind == EOF {
		return fmt.Sprintf("%d:%d %s", t.Line, t.Column, t.Kind)
	}
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Kind, t.Lexeme)
}
