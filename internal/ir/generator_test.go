package ir

import (
	"testing"

	"github.com/xjarifx/minic/internal/parser"
	"github.com/xjarifx/minic/internal/semantic"
)

func generate(t *testing.T, src string) Program {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	if err := semantic.NewAnalyzer().Analyze(prog); err != nil {
		t.Fatalf("Analyze(%q): %v", src, err)
	}
	return Generate(prog)
}

func TestVarDeclEmitsVarDeclInstr(t *testing.T) {
	instrs := generate(t, "int x;")
	if len(instrs) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instrs))
	}
	decl, ok := instrs[0].(*VarDeclInstr)
	if !ok || decl.Name != "x" {
		t.Fatalf("instrs[0] = %#v, want VarDeclInstr(x)", instrs[0])
	}
}

func TestAssignOfLiteralEmitsOnlyAssign(t *testing.T) {
	instrs := generate(t, "int x; x = 5;")
	if len(instrs) != 2 {
		t.Fatalf("got %d instructions, want 2", len(instrs))
	}
	assign, ok := instrs[1].(*AssignInstr)
	if !ok || assign.Dest != "x" || !assign.Src.Equal(IntLit(5)) {
		t.Fatalf("instrs[1] = %#v, want Assign(x, 5)", instrs[1])
	}
}

func TestBinaryOpEmitsFreshTemp(t *testing.T) {
	instrs := generate(t, "int x; x = 2 + 3;")
	binOp, ok := instrs[1].(*BinOpInstr)
	if !ok {
		t.Fatalf("instrs[1] = %#v, want BinOpInstr", instrs[1])
	}
	if binOp.Dest != "t0" || binOp.Op != "+" {
		t.Fatalf("BinOpInstr = %#v, want dest t0, op +", binOp)
	}
	assign, ok := instrs[2].(*AssignInstr)
	if !ok || assign.Dest != "x" || !assign.Src.Equal(Temp("t0")) {
		t.Fatalf("instrs[2] = %#v, want Assign(x, t0)", instrs[2])
	}
}

func TestNestedBinaryOpChainsTemps(t *testing.T) {
	instrs := generate(t, "int x; x = 2 + 3 * 4;")
	var binOps []*BinOpInstr
	for _, instr := range instrs {
		if b, ok := instr.(*BinOpInstr); ok {
			binOps = append(binOps, b)
		}
	}
	if len(binOps) != 2 {
		t.Fatalf("got %d BinOpInstr, want 2", len(binOps))
	}
	if binOps[0].Op != "*" || binOps[1].Op != "+" {
		t.Fatalf("BinOp order = [%s, %s], want [*, +] (multiplication evaluated first)", binOps[0].Op, binOps[1].Op)
	}
	if !binOps[1].Right.Equal(Temp(binOps[0].Dest)) {
		t.Fatalf("outer '+' should consume the '*' temp; got %#v", binOps[1])
	}
}

func TestUnaryOpEmitsUnOpInstr(t *testing.T) {
	instrs := generate(t, "int x; x = -5;")
	unOp, ok := instrs[1].(*UnOpInstr)
	if !ok || unOp.Op != "-" || !unOp.Operand.Equal(IntLit(5)) {
		t.Fatalf("instrs[1] = %#v, want UnOpInstr(-, 5)", instrs[1])
	}
}

func TestIfElseShape(t *testing.T) {
	instrs := generate(t, "int x; x = 1; if (x < 5) { print(1); } else { print(2); }")

	var kinds []string
	for _, instr := range instrs {
		switch instr.(type) {
		case *IfFalseInstr:
			kinds = append(kinds, "ifFalse")
		case *GotoInstr:
			kinds = append(kinds, "goto")
		case *LabelInstr:
			kinds = append(kinds, "label")
		case *PrintInstr:
			kinds = append(kinds, "print")
		}
	}
	want := []string{"ifFalse", "print", "goto", "label", "print", "label"}
	if len(kinds) != len(want) {
		t.Fatalf("instruction shape = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("instruction shape = %v, want %v", kinds, want)
		}
	}
}

func TestWhileShape(t *testing.T) {
	instrs := generate(t, "int x; x = 1; while (x < 10) { x = x + 1; }")

	// instrs[0] is `var int x`, instrs[1] is `x = 1`; the loop starts at instrs[2].
	first, ok := instrs[2].(*LabelInstr)
	if !ok {
		t.Fatalf("while must start with a label; instrs[2] = %#v", instrs[2])
	}

	last, ok := instrs[len(instrs)-1].(*LabelInstr)
	if !ok {
		t.Fatalf("while must end with a label; last = %#v", last)
	}

	foundGotoToStart := false
	for _, instr := range instrs {
		if g, ok := instr.(*GotoInstr); ok && g.Label == first.Name {
			foundGotoToStart = true
		}
	}
	if !foundGotoToStart {
		t.Fatalf("expected a goto back to the loop's start label %s", first.Name)
	}
}

func TestFreshTempAndLabelCountersStartAtZeroPerGeneration(t *testing.T) {
	instrsA := generate(t, "int x; x = 1 + 2;")
	instrsB := generate(t, "int y; y = 3 + 4;")

	binA := instrsA[1].(*BinOpInstr)
	binB := instrsB[1].(*BinOpInstr)
	if binA.Dest != binB.Dest {
		t.Fatalf("temp counters should restart at t0 for each Generate call: got %s and %s", binA.Dest, binB.Dest)
	}
}
