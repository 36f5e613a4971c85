// Package errors provides the compiler's shared error formatting,
// unifying the four phase-local error kinds (spec.md §7) behind one
// type the driver can print consistently, with an optional richer
// caret-pointing format for interactive CLI use. Adapted from the
// teacher's internal/errors package, generalized with a Kind field.
package errors

import (
	"fmt"
	"strings"

	"github.com/xjarifx/minic/pkg/token"
)

// Kind names one of the four error kinds spec.md §7 defines.
type Kind string

const (
	LexerErrorKind    Kind = "LexerError"
	ParseErrorKind    Kind = "ParseError"
	SemanticErrorKind Kind = "SemanticError"
	InternalErrorKind Kind = "InternalError"
)

// CompilerError is a single compilation error carrying enough context
// to render either the minimal spec.md §7 line or a source-annotated
// caret display.
type CompilerError struct {
	Kind    Kind
	Pos     token.Position
	Message string
	Source  string
	File    string
}

// New builds a CompilerError. Source and File may be empty; Format
// degrades gracefully when they are.
func New(kind Kind, pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Kind: kind, Pos: pos, Message: message, Source: source, File: file}
}

// NewInternal builds an InternalError for an invariant violation
// raised downstream of semantic analysis (spec.md §7: "the IR
// generator, optimizer, and code generator... must not observe a
// semantic or syntactic error: if they do, it is an internal error").
func NewInternal(message string) *CompilerError {
	return &CompilerError{Kind: InternalErrorKind, Message: message}
}

// Error implements the error interface with exactly the line spec.md
// §7 specifies: `"<kind>: at line L, col C: <message>"`.
func (e *CompilerError) Error() string {
	return fmt.Sprintf("%s: at line %d, col %d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Message)
}

// Format renders the error with a source line and caret indicator,
// for interactive CLI use. If color is true, ANSI codes highlight the
// caret and message.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%s in %s:%d:%d\n", e.Kind, e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s at %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column))
	}

	if line := e.sourceLine(); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine() string {
	if e.Source == "" || e.Pos.Line < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line > len(lines) {
		return ""
	}
	return lines[e.Pos.Line-1]
}
