package lexer

import (
	"fmt"

	"github.com/xjarifx/minic/pkg/token"
)

// Error represents a single lexical error: the first character (or
// sequence) the scanner could not turn into a token. The lexer stops at
// the first error, per spec.md's fail-fast error model.
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("LexerError: at line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func newError(pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
