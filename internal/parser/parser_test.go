package parser

import (
	"testing"

	"github.com/xjarifx/minic/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return prog
}

func TestParseVarDeclAndAssign(t *testing.T) {
	prog := mustParse(t, "int x; x = 5;")
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VarDecl)
	if !ok || decl.Type != ast.Int || decl.Name != "x" {
		t.Fatalf("statement[0] = %#v, want VarDecl(int, x)", prog.Statements[0])
	}
	assign, ok := prog.Statements[1].(*ast.Assign)
	if !ok || assign.Name != "x" {
		t.Fatalf("statement[1] = %#v, want Assign(x, ...)", prog.Statements[1])
	}
}

func TestOperatorPrecedence(t *testing.T) {
	prog := mustParse(t, "int x; x = 2 + 3 * 4;")
	assign := prog.Statements[1].(*ast.Assign)
	bin, ok := assign.Value.(*ast.BinaryOp)
	if !ok || bin.Op != "+" {
		t.Fatalf("top expression = %#v, want '+' at the top", assign.Value)
	}
	right, ok := bin.Right.(*ast.BinaryOp)
	if !ok || right.Op != "*" {
		t.Fatalf("right of '+' = %#v, want '*'", bin.Right)
	}
}

func TestLogicalPrecedence(t *testing.T) {
	prog := mustParse(t, "bool b; b = true || false && true;")
	assign := prog.Statements[1].(*ast.Assign)
	bin, ok := assign.Value.(*ast.BinaryOp)
	if !ok || bin.Op != "||" {
		t.Fatalf("top expression op = %#v, want '||'", assign.Value)
	}
	right, ok := bin.Right.(*ast.BinaryOp)
	if !ok || right.Op != "&&" {
		t.Fatalf("right of '||' = %#v, want '&&'", bin.Right)
	}
}

func TestEqualityIsLeftAssociative(t *testing.T) {
	prog := mustParse(t, "bool b; b = true == false == true;")
	assign := prog.Statements[1].(*ast.Assign)
	outer, ok := assign.Value.(*ast.BinaryOp)
	if !ok || outer.Op != "==" {
		t.Fatalf("outer expression = %#v, want '=='", assign.Value)
	}
	if _, ok := outer.Left.(*ast.BinaryOp); !ok {
		t.Fatalf("left of outer '==' should itself be a '==' expression, got %#v", outer.Left)
	}
	if _, ok := outer.Right.(*ast.BoolLiteral); !ok {
		t.Fatalf("right of outer '==' should be a literal, got %#v", outer.Right)
	}
}

func TestUnaryIsRightAssociative(t *testing.T) {
	prog := mustParse(t, "int x; x = - - 5;")
	assign := prog.Statements[1].(*ast.Assign)
	outer, ok := assign.Value.(*ast.UnaryOp)
	if !ok || outer.Op != "-" {
		t.Fatalf("outer expression = %#v, want unary '-'", assign.Value)
	}
	if _, ok := outer.Operand.(*ast.UnaryOp); !ok {
		t.Fatalf("operand of outer '-' should be another unary '-', got %#v", outer.Operand)
	}
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	prog := mustParse(t, "int x; x = (2 + 3) * 4;")
	assign := prog.Statements[1].(*ast.Assign)
	top, ok := assign.Value.(*ast.BinaryOp)
	if !ok || top.Op != "*" {
		t.Fatalf("top expression = %#v, want '*'", assign.Value)
	}
	if _, ok := top.Left.(*ast.BinaryOp); !ok {
		t.Fatalf("left of '*' should be the parenthesized '+' expression, got %#v", top.Left)
	}
}

func TestIfElseUnwrapsBlocks(t *testing.T) {
	prog := mustParse(t, "int x; if (x < 5) { print(1); } else { print(2); }")
	ifStmt := prog.Statements[1].(*ast.If)
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		t.Fatalf("If.Then/Else not unwrapped to flat statement lists: %#v", ifStmt)
	}
	if _, ok := ifStmt.Cond.(*ast.BinaryOp); !ok {
		t.Fatalf("If.Cond = %#v, want a BinaryOp", ifStmt.Cond)
	}
}

func TestIfWithoutElseHasNilElse(t *testing.T) {
	prog := mustParse(t, "int x; if (x < 5) { print(1); }")
	ifStmt := prog.Statements[1].(*ast.If)
	if ifStmt.Else != nil {
		t.Fatalf("If.Else = %#v, want nil", ifStmt.Else)
	}
}

func TestWhileLoop(t *testing.T) {
	prog := mustParse(t, "int x; while (x < 10) { x = x * 2; }")
	whileStmt := prog.Statements[1].(*ast.While)
	if len(whileStmt.Body) != 1 {
		t.Fatalf("While.Body = %#v, want 1 statement", whileStmt.Body)
	}
}

func TestNestedBlockStatement(t *testing.T) {
	prog := mustParse(t, "int x; { int y; y = 1; }")
	block, ok := prog.Statements[1].(*ast.Block)
	if !ok {
		t.Fatalf("statement[1] = %#v, want *ast.Block", prog.Statements[1])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("block has %d statements, want 2", len(block.Statements))
	}
}

func TestMissingSemicolonIsParseError(t *testing.T) {
	_, err := Parse("int x")
	if err == nil {
		t.Fatal("expected a ParseError for a missing semicolon")
	}
	if _, ok := err.(*Error); !ok {
		t.Fatalf("error type = %T, want *parser.Error", err)
	}
}

func TestMissingBraceIsParseError(t *testing.T) {
	_, err := Parse("int x; if (x < 1) print(1);")
	if err == nil {
		t.Fatal("expected a ParseError: if-body must be brace-delimited")
	}
}

func TestUnexpectedTokenIsParseError(t *testing.T) {
	_, err := Parse("int x; x = ;")
	if err == nil {
		t.Fatal("expected a ParseError for an empty expression")
	}
}
