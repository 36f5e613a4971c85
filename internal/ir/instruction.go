package ir

import (
	"fmt"

	"github.com/xjarifx/minic/internal/ast"
)

// Instr is a single TAC instruction. Modeled as a tagged variant via a
// marker method and type switches (spec.md §9: "prefer tagged variants"),
// the same idiom the teacher uses for its bytecode.OpCode table, just
// shaped for a tree-walking linear IR instead of a byte-coded one.
type Instr interface {
	isInstr()
	String() string
}

// VarDeclInstr records a declared variable's type; it has no runtime
// effect (spec.md §4.6: "VarDecl → comment only").
type VarDeclInstr struct {
	Type ast.ValueType
	Name string
}

func (*VarDeclInstr) isInstr() {}
func (v *VarDeclInstr) String() string {
	return fmt.Sprintf("var %s %s", v.Type, v.Name)
}

// AssignInstr stores Src into Dest, where Dest names a temp or a
// user variable.
type AssignInstr struct {
	Dest string
	Src  Operand
}

func (*AssignInstr) isInstr() {}
func (a *AssignInstr) String() string {
	return fmt.Sprintf("%s = %s", a.Dest, a.Src)
}

// BinOpInstr computes `Left Op Right` into Dest.
type BinOpInstr struct {
	Dest  string
	Left  Operand
	Op    string
	Right Operand
}

func (*BinOpInstr) isInstr() {}
func (b *BinOpInstr) String() string {
	return fmt.Sprintf("%s = %s %s %s", b.Dest, b.Left, b.Op, b.Right)
}

// UnOpInstr computes `Op Operand` into Dest.
type UnOpInstr struct {
	Dest    string
	Op      string
	Operand Operand
}

func (*UnOpInstr) isInstr() {}
func (u *UnOpInstr) String() string {
	return fmt.Sprintf("%s = %s%s", u.Dest, u.Op, u.Operand)
}

// LabelInstr marks a jump target.
type LabelInstr struct {
	Name string
}

func (*LabelInstr) isInstr() {}
func (l *LabelInstr) String() string { return l.Name + ":" }

// GotoInstr is an unconditional jump.
type GotoInstr struct {
	Label string
}

func (*GotoInstr) isInstr() {}
func (g *GotoInstr) String() string { return "goto " + g.Label }

// IfFalseInstr jumps to Label when Cond is false (`0`).
type IfFalseInstr struct {
	Cond  Operand
	Label string
}

func (*IfFalseInstr) isInstr() {}
func (i *IfFalseInstr) String() string {
	return fmt.Sprintf("ifFalse %s goto %s", i.Cond, i.Label)
}

// PrintInstr prints Value.
type PrintInstr struct {
	Value Operand
}

func (*PrintInstr) isInstr() {}
func (p *PrintInstr) String() string { return "print " + p.Value.String() }

// Program is the full list of TAC instructions for one compilation.
type Program []Instr

// String renders the program one instruction per line, for --show-ir.
func (p Program) String() string {
	var out string
	for _, instr := range p {
		out += instr.String() + "\n"
	}
	return out
}
