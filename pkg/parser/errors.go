package parser

import (
	"errors"
	"fmt"

	"lambd/interpreter-go/pkg/token"
)

// ParseError reports the first grammar violation encountered. Token is the
// offending token, or the EOF token when input ran out.
type ParseError struct {
	Token   token.Token
	Message string
}

func (e *ParseError) Error() string {
	if e.Token.Kind == token.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

// AtEnd reports whether the error was raised at end of input.
func (e *ParseError) AtEnd() bool {
	return e.Token.Kind == token.EOF
}

// IsIncomplete reports whether err is a parse error caused by input ending
// early, i.e. more text could still complete the program.
func IsIncomplete(err error) bool {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.AtEnd()
	}
	return false
}
