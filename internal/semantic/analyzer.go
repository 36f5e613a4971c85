// Package semantic type-checks a MiniC AST against lexically scoped
// symbol tables, per spec.md §4.3. Grounded on the teacher's Analyzer
// (internal/semantic/analyzer.go) and SymbolTable, stripped of every
// concern MiniC's Non-goals exclude (classes, enums, records, overload
// sets, forward declarations) down to the two rules the language
// actually has: redeclaration and declared-use, plus primitive type
// checking.
package semantic

import (
	"fmt"

	"github.com/xjarifx/minic/internal/ast"
)

// Analyzer walks a Program, enforcing spec.md §4.3's rules and
// annotating each expression node with its resolved ValueType.
type Analyzer struct {
	scope *Scope
}

// NewAnalyzer creates an Analyzer with an empty outermost scope.
func NewAnalyzer() *Analyzer {
	return &Analyzer{scope: NewScope(nil)}
}

// Analyze type-checks prog in place, returning the first semantic
// error encountered, if any.
func (a *Analyzer) Analyze(prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		if err := a.analyzeStmt(stmt, a.scope); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStmt(stmt ast.Statement, scope *Scope) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return a.analyzeVarDecl(s, scope)
	case *ast.Assign:
		return a.analyzeAssign(s, scope)
	case *ast.If:
		return a.analyzeIf(s, scope)
	case *ast.While:
		return a.analyzeWhile(s, scope)
	case *ast.Print:
		_, err := a.analyzeExpr(s.Value, scope)
		return err
	case *ast.Block:
		return a.analyzeBlock(s.Statements, NewScope(scope))
	default:
		return fmt.Errorf("SemanticError: internal error: unhandled statement type %T", stmt)
	}
}

func (a *Analyzer) analyzeVarDecl(decl *ast.VarDecl, scope *Scope) error {
	if scope.IsDeclaredInCurrentScope(decl.Name) {
		return newError(decl.Pos(), Redeclaration, "'%s' is already declared in this scope", decl.Name)
	}
	scope.Define(decl.Name, decl.Type)
	return nil
}

func (a *Analyzer) analyzeAssign(assign *ast.Assign, scope *Scope) error {
	sym, ok := scope.Resolve(assign.Name)
	if !ok {
		return newError(assign.Pos(), UndeclaredUse, "'%s' is not declared", assign.Name)
	}
	valueType, err := a.analyzeExpr(assign.Value, scope)
	if err != nil {
		return err
	}
	if valueType != sym.Type {
		return newError(assign.Pos(), TypeMismatch,
			"cannot assign %s value to %s variable '%s'", valueType, sym.Type, assign.Name)
	}
	return nil
}

func (a *Analyzer) analyzeIf(stmt *ast.If, scope *Scope) error {
	condType, err := a.analyzeExpr(stmt.Cond, scope)
	if err != nil {
		return err
	}
	if condType != ast.Bool {
		return newError(stmt.Cond.Pos(), NonBoolCondition, "if condition must be bool, got %s", condType)
	}
	if err := a.analyzeBlock(stmt.Then, NewScope(scope)); err != nil {
		return err
	}
	if stmt.Else != nil {
		if err := a.analyzeBlock(stmt.Else, NewScope(scope)); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeWhile(stmt *ast.While, scope *Scope) error {
	condType, err := a.analyzeExpr(stmt.Cond, scope)
	if err != nil {
		return err
	}
	if condType != ast.Bool {
		return newError(stmt.Cond.Pos(), NonBoolCondition, "while condition must be bool, got %s", condType)
	}
	return a.analyzeBlock(stmt.Body, NewScope(scope))
}

// analyzeBlock runs each statement of a scoped statement list against
// its own scope (spec.md §4.3: "Block, If then-branch, If else-branch,
// While body each push a new scope on entry and pop on exit").
func (a *Analyzer) analyzeBlock(stmts []ast.Statement, scope *Scope) error {
	for _, stmt := range stmts {
		if err := a.analyzeStmt(stmt, scope); err != nil {
			return err
		}
	}
	return nil
}

// analyzeExpr resolves expr's type, annotating BinaryOp/UnaryOp/
// Identifier nodes with their resolved ValueType along the way so
// later phases never need to re-derive it.
func (a *Analyzer) analyzeExpr(expr ast.Expression, scope *Scope) (ast.ValueType, error) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return ast.Int, nil
	case *ast.BoolLiteral:
		return ast.Bool, nil
	case *ast.Identifier:
		sym, ok := scope.Resolve(e.Name)
		if !ok {
			return ast.Unknown, newError(e.Pos(), UndeclaredUse, "'%s' is not declared", e.Name)
		}
		e.Type = sym.Type
		return sym.Type, nil
	case *ast.BinaryOp:
		return a.analyzeBinaryOp(e, scope)
	case *ast.UnaryOp:
		return a.analyzeUnaryOp(e, scope)
	default:
		return ast.Unknown, fmt.Errorf("SemanticError: internal error: unhandled expression type %T", expr)
	}
}

// arithmeticOps are spec.md §4.3 rule 3's `+ - * / %` operators: both
// operands int, result int.
var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}

// relationalOps are `< > <= >=`: both operands int, result bool.
var relationalOps = map[string]bool{"<": true, ">": true, "<=": true, ">=": true}

// equalityOps are `== !=`: operands same type, result bool.
var equalityOps = map[string]bool{"==": true, "!=": true}

// logicalOps are `&& ||`: both operands bool, result bool.
var logicalOps = map[string]bool{"&&": true, "||": true}

func (a *Analyzer) analyzeBinaryOp(b *ast.BinaryOp, scope *Scope) (ast.ValueType, error) {
	leftType, err := a.analyzeExpr(b.Left, scope)
	if err != nil {
		return ast.Unknown, err
	}
	rightType, err := a.analyzeExpr(b.Right, scope)
	if err != nil {
		return ast.Unknown, err
	}

	switch {
	case arithmeticOps[b.Op]:
		if leftType != ast.Int || rightType != ast.Int {
			return ast.Unknown, newError(b.Pos(), TypeMismatch,
				"operator '%s' requires int operands, got %s and %s", b.Op, leftType, rightType)
		}
		b.Type = ast.Int
	case relationalOps[b.Op]:
		if leftType != ast.Int || rightType != ast.Int {
			return ast.Unknown, newError(b.Pos(), TypeMismatch,
				"operator '%s' requires int operands, got %s and %s", b.Op, leftType, rightType)
		}
		b.Type = ast.Bool
	case equalityOps[b.Op]:
		if leftType != rightType {
			return ast.Unknown, newError(b.Pos(), TypeMismatch,
				"operator '%s' requires operands of the same type, got %s and %s", b.Op, leftType, rightType)
		}
		b.Type = ast.Bool
	case logicalOps[b.Op]:
		if leftType != ast.Bool || rightType != ast.Bool {
			return ast.Unknown, newError(b.Pos(), TypeMismatch,
				"operator '%s' requires bool operands, got %s and %s", b.Op, leftType, rightType)
		}
		b.Type = ast.Bool
	default:
		return ast.Unknown, fmt.Errorf("SemanticError: internal error: unknown binary operator %q", b.Op)
	}
	return b.Type, nil
}

func (a *Analyzer) analyzeUnaryOp(u *ast.UnaryOp, scope *Scope) (ast.ValueType, error) {
	operandType, err := a.analyzeExpr(u.Operand, scope)
	if err != nil {
		return ast.Unknown, err
	}

	switch u.Op {
	case "-":
		if operandType != ast.Int {
			return ast.Unknown, newError(u.Pos(), TypeMismatch, "unary '-' requires an int operand, got %s", operandType)
		}
		u.Type = ast.Int
	case "!":
		if operandType != ast.Bool {
			return ast.Unknown, newError(u.Pos(), TypeMismatch, "unary '!' requires a bool operand, got %s", operandType)
		}
		u.Type = ast.Bool
	default:
		return ast.Unknown, fmt.Errorf("SemanticError: internal error: unknown unary operator %q", u.Op)
	}
	return u.Type, nil
}
