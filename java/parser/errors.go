package parser

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedToken       = errors.New("unexpected token")
	ErrUnterminatedConstruct = errors.New("unterminated construct")
	ErrAmbiguity             = errors.New("ambiguous expression")
)

// SyntaxError reports the first token a production could not accept.
// Kind is one of the Err* sentinels and is returned by Unwrap.
type SyntaxError struct {
	Kind     error
	Expected string
	Got      Token
	Pos      Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %v: got %s, expected %s", e.Pos, e.Kind, e.Got.describe(), e.Expected)
}

func (e *SyntaxError) Unwrap() error {
	return e.Kind
}

func newSyntaxError(kind error, expected string, got Token) *SyntaxError {
	return &SyntaxError{
		Kind:     kind,
		Expected: expected,
		Got:      got,
		Pos:      got.Span.Start,
	}
}
