package ir

import (
	"fmt"

	"github.com/xjarifx/minic/internal/ast"
)

// Generator walks a type-checked AST and emits TAC in program order,
// maintaining the two fresh-name streams spec.md §4.4 requires
// (temporaries and labels). Per spec.md §9, these counters are
// instance fields on a short-lived generator object, not process-wide
// globals (the teacher's bytecode.Compiler follows the same rule for
// its constant pool and local slots).
type Generator struct {
	tempCounter  int
	labelCounter int
	instrs       Program
}

// NewGenerator creates a Generator with fresh counters.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate walks prog (which must already be type-checked by
// internal/semantic) and returns its TAC. The generator trusts its
// input completely: any shape it cannot handle is an internal error
// (spec.md §7: "the IR generator ... trust their inputs and must not
// observe a semantic or syntactic error").
func Generate(prog *ast.Program) Program {
	g := NewGenerator()
	for _, stmt := range prog.Statements {
		g.genStmt(stmt)
	}
	return g.instrs
}

func (g *Generator) newTemp() string {
	name := fmt.Sprintf("t%d", g.tempCounter)
	g.tempCounter++
	return name
}

func (g *Generator) newLabel() string {
	name := fmt.Sprintf("L%d", g.labelCounter)
	g.labelCounter++
	return name
}

func (g *Generator) emit(instr Instr) { g.instrs = append(g.instrs, instr) }

func (g *Generator) genStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		g.emit(&VarDeclInstr{Type: s.Type, Name: s.Name})
	case *ast.Assign:
		ev := g.genExpr(s.Value)
		g.emit(&AssignInstr{Dest: s.Name, Src: ev})
	case *ast.If:
		g.genIf(s)
	case *ast.While:
		g.genWhile(s)
	case *ast.Print:
		ev := g.genExpr(s.Value)
		g.emit(&PrintInstr{Value: ev})
	case *ast.Block:
		g.genStmts(s.Statements)
	default:
		panic(fmt.Sprintf("ir: internal error: unhandled statement type %T", stmt))
	}
}

func (g *Generator) genStmts(stmts []ast.Statement) {
	for _, stmt := range stmts {
		g.genStmt(stmt)
	}
}

// genIf follows spec.md §4.4's scheme verbatim: compute the condition,
// branch past the then-body on false, fall through to the then-body,
// jump past the else-body, then emit the else-body (empty if absent).
func (g *Generator) genIf(s *ast.If) {
	cv := g.genExpr(s.Cond)
	lElse := g.newLabel()
	lEnd := g.newLabel()

	g.emit(&IfFalseInstr{Cond: cv, Label: lElse})
	g.genStmts(s.Then)
	g.emit(&GotoInstr{Label: lEnd})
	g.emit(&LabelInstr{Name: lElse})
	g.genStmts(s.Else)
	g.emit(&LabelInstr{Name: lEnd})
}

// genWhile follows spec.md §4.4's scheme: test at the top, body, jump
// back to the test.
func (g *Generator) genWhile(s *ast.While) {
	lStart := g.newLabel()
	lEnd := g.newLabel()

	g.emit(&LabelInstr{Name: lStart})
	cv := g.genExpr(s.Cond)
	g.emit(&IfFalseInstr{Cond: cv, Label: lEnd})
	g.genStmts(s.Body)
	g.emit(&GotoInstr{Label: lStart})
	g.emit(&LabelInstr{Name: lEnd})
}

// genExpr evaluates expr, emitting whatever instructions are needed,
// and returns the operand holding its result.
func (g *Generator) genExpr(expr ast.Expression) Operand {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return IntLit(e.Value)
	case *ast.BoolLiteral:
		return BoolLit(e.Value)
	case *ast.Identifier:
		return Var(e.Name)
	case *ast.BinaryOp:
		lv := g.genExpr(e.Left)
		rv := g.genExpr(e.Right)
		dest := g.newTemp()
		g.emit(&BinOpInstr{Dest: dest, Left: lv, Op: e.Op, Right: rv})
		return Temp(dest)
	case *ast.UnaryOp:
		ev := g.genExpr(e.Operand)
		dest := g.newTemp()
		g.emit(&UnOpInstr{Dest: dest, Op: e.Op, Operand: ev})
		return Temp(dest)
	default:
		panic(fmt.Sprintf("ir: internal error: unhandled expression type %T", expr))
	}
}
