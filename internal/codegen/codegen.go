// Package codegen lowers optimized TAC to x86-64 System-V AT&T-syntax
// assembly text, suitable for `gcc file.s -o prog` (spec.md §4.6).
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xjarifx/minic/internal/ir"
)

// Generator emits one assembly file per instance; it holds no state
// across calls to Generate (spec.md §5: per-compilation state only).
type Generator struct {
	slots map[string]int
	out   strings.Builder
}

// NewGenerator constructs an empty code generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate lowers prog to assembly text. Identical TAC always yields
// byte-identical output (spec.md §4.6, §8: "Codegen determinism").
func Generate(prog ir.Program) string {
	g := NewGenerator()
	return g.Generate(prog)
}

// Generate is the instance form of the package-level Generate.
func (g *Generator) Generate(prog ir.Program) string {
	g.slots = allocateSlots(prog)
	g.out.Reset()

	g.header()
	for _, instr := range prog {
		g.emit(instr)
	}
	g.footer()

	return g.out.String()
}

// allocateSlots assigns every assigned-to name (variable or temp) an
// 8-byte stack slot, in sorted-name order starting at -8 and
// decrementing by 8 (spec.md §4.6: "deterministic layout").
func allocateSlots(prog ir.Program) map[string]int {
	seen := make(map[string]bool)
	for _, instr := range prog {
		switch in := instr.(type) {
		case *ir.AssignInstr:
			seen[in.Dest] = true
		case *ir.BinOpInstr:
			seen[in.Dest] = true
		case *ir.UnOpInstr:
			seen[in.Dest] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	slots := make(map[string]int, len(names))
	offset := -8
	for _, name := range names {
		slots[name] = offset
		offset -= 8
	}
	return slots
}

func (g *Generator) line(format string, args ...any) {
	fmt.Fprintf(&g.out, format+"\n", args...)
}

func (g *Generator) header() {
	g.line("    .section .data")
	g.line("fmt_int:")
	g.line("    .string \"%%d\\n\"")
	g.line("    .section .text")
	g.line("    .globl main")
	g.line("main:")
	g.line("    pushq   %%rbp")
	g.line("    movq    %%rsp, %%rbp")
	g.line("    subq    $%d, %%rsp", len(g.slots)*8)
}

func (g *Generator) footer() {
	g.line("    movq    $0, %%rax")
	g.line("    movq    %%rbp, %%rsp")
	g.line("    popq    %%rbp")
	g.line("    ret")
	g.line("    .section .note.GNU-stack,\"\",%%progbits")
}

// operand renders o as an AT&T source operand: an immediate for a
// literal, a stack slot for a name (spec.md §4.6: "Operand load").
func (g *Generator) operand(o ir.Operand) string {
	switch o.Kind {
	case ir.IntLitOperand:
		return fmt.Sprintf("$%d", o.IntValue)
	case ir.BoolLitOperand:
		if o.BoolValue {
			return "$1"
		}
		return "$0"
	default:
		return fmt.Sprintf("%d(%%rbp)", g.slots[o.Name])
	}
}

func (g *Generator) emit(instr ir.Instr) {
	switch in := instr.(type) {
	case *ir.VarDeclInstr:
		g.line("    # var %s %s", in.Type, in.Name)
	case *ir.AssignInstr:
		g.emitAssign(in)
	case *ir.BinOpInstr:
		g.emitBinOp(in)
	case *ir.UnOpInstr:
		g.emitUnOp(in)
	case *ir.LabelInstr:
		g.line("%s:", in.Name)
	case *ir.GotoInstr:
		g.line("    jmp     %s", in.Label)
	case *ir.IfFalseInstr:
		g.emitIfFalse(in)
	case *ir.PrintInstr:
		g.emitPrint(in)
	default:
		panic(fmt.Sprintf("codegen: unhandled instruction %T", instr))
	}
}

func (g *Generator) emitAssign(in *ir.AssignInstr) {
	g.line("    movq    %s, %%rax", g.operand(in.Src))
	g.line("    movq    %%rax, %d(%%rbp)", g.slots[in.Dest])
}

func (g *Generator) emitBinOp(in *ir.BinOpInstr) {
	g.line("    movq    %s, %%rax", g.operand(in.Left))
	g.line("    movq    %s, %%rbx", g.operand(in.Right))

	switch in.Op {
	case "+":
		g.line("    addq    %%rbx, %%rax")
	case "-":
		g.line("    subq    %%rbx, %%rax")
	case "*":
		g.line("    imulq   %%rbx, %%rax")
	case "/":
		g.line("    cqo")
		g.line("    idivq   %%rbx")
	case "%":
		g.line("    cqo")
		g.line("    idivq   %%rbx")
		g.line("    movq    %%rdx, %%rax")
	case "<":
		g.emitCompare("setl")
	case ">":
		g.emitCompare("setg")
	case "<=":
		g.emitCompare("setle")
	case ">=":
		g.emitCompare("setge")
	case "==":
		g.emitCompare("sete")
	case "!=":
		g.emitCompare("setne")
	case "&&":
		g.line("    andq    %%rbx, %%rax")
	case "||":
		g.line("    orq     %%rbx, %%rax")
	default:
		panic(fmt.Sprintf("codegen: unhandled binary operator %q", in.Op))
	}

	g.line("    movq    %%rax, %d(%%rbp)", g.slots[in.Dest])
}

func (g *Generator) emitCompare(set string) {
	g.line("    cmpq    %%rbx, %%rax")
	g.line("    %-7s %%al", set)
	g.line("    movzbq  %%al, %%rax")
}

func (g *Generator) emitUnOp(in *ir.UnOpInstr) {
	g.line("    movq    %s, %%rax", g.operand(in.Operand))
	switch in.Op {
	case "-":
		g.line("    negq    %%rax")
	case "!":
		g.line("    xorq    $1, %%rax")
	default:
		panic(fmt.Sprintf("codegen: unhandled unary operator %q", in.Op))
	}
	g.line("    movq    %%rax, %d(%%rbp)", g.slots[in.Dest])
}

func (g *Generator) emitIfFalse(in *ir.IfFalseInstr) {
	g.line("    movq    %s, %%rax", g.operand(in.Cond))
	g.line("    cmpq    $0, %%rax")
	g.line("    je      %s", in.Label)
}

func (g *Generator) emitPrint(in *ir.PrintInstr) {
	g.line("    movq    %s, %%rsi", g.operand(in.Value))
	g.line("    leaq    fmt_int(%%rip), %%rdi")
	g.line("    movq    $0, %%rax")
	g.line("    call    printf@PLT")
}
