package semantic

import (
	"fmt"

	"github.com/xjarifx/minic/pkg/token"
)

// Kind classifies a semantic error (spec.md §4.3: redeclaration,
// undeclared use, type mismatch, wrong-typed condition).
type Kind string

const (
	Redeclaration    Kind = "redeclaration"
	UndeclaredUse    Kind = "undeclared use"
	TypeMismatch     Kind = "type mismatch"
	NonBoolCondition Kind = "non-bool condition"
)

// Error is a single semantic error. The analyzer fails fast on the
// first one (spec.md §4.3's error model).
type Error struct {
	Pos     token.Position
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("SemanticError: at line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func newError(pos token.Position, kind Kind, format string, args ...interface{}) *Error {
	return &Error{Pos: pos, Kind: kind, Message: fmt.Sprintf(format, args...)}
}
