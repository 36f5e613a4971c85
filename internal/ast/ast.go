// Package ast defines the MiniC abstract syntax tree: the statement and
// expression node types from spec.md §3, following the teacher's node
// shape (a Token field for position/literal, plus a `String()` for
// debugging) but with tagged-variant statement/expression sums instead
// of the teacher's deep OOP-flavored class hierarchy — spec.md §9
// explicitly prefers this.
package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xjarifx/minic/pkg/token"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of every MiniC AST: a flat list of top-level
// statements (spec.md §3: "A Program owns its statements").
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

// ValueType is the set of primitive MiniC types (spec.md §3: "type ∈
// {int, bool}").
type ValueType int

const (
	// Unknown marks an expression whose type has not been resolved yet
	// (before semantic analysis runs).
	Unknown ValueType = iota
	Int
	Bool
)

func (vt ValueType) String() string {
	switch vt {
	case Int:
		return "int"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

// VarDecl declares a variable of a primitive type: `int x;` or `bool f;`.
type VarDecl struct {
	Token token.Token // the 'int' or 'bool' token
	Type  ValueType
	Name  string
}

func (vd *VarDecl) statementNode()       {}
func (vd *VarDecl) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDecl) Pos() token.Position  { return vd.Token.Pos }
func (vd *VarDecl) String() string {
	return fmt.Sprintf("%s %s;", vd.Type, vd.Name)
}

// Assign assigns the value of Value to the variable named Name:
// `x = expr;`.
type Assign struct {
	Token token.Token // the IDENT token on the left-hand side
	Name  string
	Value Expression
}

func (a *Assign) statementNode()       {}
func (a *Assign) TokenLiteral() string { return a.Token.Literal }
func (a *Assign) Pos() token.Position  { return a.Token.Pos }
func (a *Assign) String() string {
	return fmt.Sprintf("%s = %s;", a.Name, a.Value.String())
}

// If is `if (cond) { then } [else { else }]`. Else is nil when absent.
type If struct {
	Token token.Token // the 'if' token
	Cond  Expression
	Then  []Statement
	Else  []Statement
}

func (i *If) statementNode()       {}
func (i *If) TokenLiteral() string { return i.Token.Literal }
func (i *If) Pos() token.Position  { return i.Token.Pos }
func (i *If) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(i.Cond.String())
	out.WriteString(") { ")
	writeStatements(&out, i.Then)
	out.WriteString(" }")
	if i.Else != nil {
		out.WriteString(" else { ")
		writeStatements(&out, i.Else)
		out.WriteString(" }")
	}
	return out.String()
}

// While is `while (cond) { body }`.
type While struct {
	Token token.Token // the 'while' token
	Cond  Expression
	Body  []Statement
}

func (w *While) statementNode()       {}
func (w *While) TokenLiteral() string { return w.Token.Literal }
func (w *While) Pos() token.Position  { return w.Token.Pos }
func (w *While) String() string {
	var out bytes.Buffer
	out.WriteString("while (")
	out.WriteString(w.Cond.String())
	out.WriteString(") { ")
	writeStatements(&out, w.Body)
	out.WriteString(" }")
	return out.String()
}

// Print is `print(expr);`.
type Print struct {
	Token token.Token // the 'print' token
	Value Expression
}

func (p *Print) statementNode()       {}
func (p *Print) TokenLiteral() string { return p.Token.Literal }
func (p *Print) Pos() token.Position  { return p.Token.Pos }
func (p *Print) String() string {
	return fmt.Sprintf("print(%s);", p.Value.String())
}

// Block is a brace-delimited statement list: `{ stmt* }`. The parser
// unwraps Block into a plain []Statement for if/while bodies (spec.md
// §4.2), but keeps it as its own node for a bare nested block statement.
type Block struct {
	Token      token.Token // the '{' token
	Statements []Statement
}

func (b *Block) statementNode()       {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() token.Position  { return b.Token.Pos }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	writeStatements(&out, b.Statements)
	out.WriteString(" }")
	return out.String()
}

func writeStatements(out *bytes.Buffer, stmts []Statement) {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = s.String()
	}
	out.WriteString(strings.Join(parts, " "))
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// BinaryOp is `left op right` for one of the fixed binary operators.
type BinaryOp struct {
	Token token.Token // the operator token
	Op    string
	Left  Expression
	Right Expression
	Type  ValueType // filled in by the semantic analyzer
}

func (b *BinaryOp) expressionNode()      {}
func (b *BinaryOp) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryOp) Pos() token.Position  { return b.Token.Pos }
func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}

// UnaryOp is `op operand` for `-` or `!`.
type UnaryOp struct {
	Token   token.Token // the operator token
	Op      string
	Operand Expression
	Type    ValueType
}

func (u *UnaryOp) expressionNode()      {}
func (u *UnaryOp) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryOp) Pos() token.Position  { return u.Token.Pos }
func (u *UnaryOp) String() string {
	return fmt.Sprintf("(%s%s)", u.Op, u.Operand.String())
}

// Identifier is a variable reference.
type Identifier struct {
	Token token.Token // the IDENT token
	Name  string
	Type  ValueType // filled in by the semantic analyzer
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() token.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Name }

// IntLiteral is an integer constant.
type IntLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntLiteral) expressionNode()      {}
func (il *IntLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntLiteral) Pos() token.Position  { return il.Token.Pos }
func (il *IntLiteral) String() string       { return il.Token.Literal }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BoolLiteral) expressionNode()      {}
func (bl *BoolLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BoolLiteral) Pos() token.Position  { return bl.Token.Pos }
func (bl *BoolLiteral) String() string       { return bl.Token.Literal }
