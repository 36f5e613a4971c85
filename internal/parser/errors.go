package parser

import (
	"fmt"

	"github.com/xjarifx/minic/pkg/token"
)

// Error is a single parse error: the first unexpected or missing token.
// The parser has no recovery mode — it returns the first Error it hits.
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("ParseError: at line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func newError(pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
