package optimizer

import "github.com/xjarifx/minic/internal/ir"

// algebraicSimplify implements spec.md §4.5.3's rewrite table. It only
// fires when an operand is a literal — never when a non-literal
// identifier happens to share a literal's name.
func algebraicSimplify(instrs ir.Program) ir.Program {
	out := make(ir.Program, 0, len(instrs))
	for _, instr := range instrs {
		b, ok := instr.(*ir.BinOpInstr)
		if !ok {
			out = append(out, instr)
			continue
		}
		if simplified, ok := simplifyBinOp(b); ok {
			out = append(out, simplified)
		} else {
			out = append(out, instr)
		}
	}
	return out
}

func isIntLit(o ir.Operand, v int64) bool {
	return o.Kind == ir.IntLitOperand && o.IntValue == v
}

func isBoolLit(o ir.Operand, v bool) bool {
	return o.Kind == ir.BoolLitOperand && o.BoolValue == v
}

func simplifyBinOp(b *ir.BinOpInstr) (ir.Instr, bool) {
	assign := func(src ir.Operand) (ir.Instr, bool) {
		return &ir.AssignInstr{Dest: b.Dest, Src: src}, true
	}

	switch b.Op {
	case "+":
		if isIntLit(b.Right, 0) {
			return assign(b.Left)
		}
		if isIntLit(b.Left, 0) {
			return assign(b.Right)
		}
	case "-":
		if isIntLit(b.Right, 0) {
			return assign(b.Left)
		}
	case "*":
		if isIntLit(b.Right, 1) {
			return assign(b.Left)
		}
		if isIntLit(b.Left, 1) {
			return assign(b.Right)
		}
		if isIntLit(b.Right, 0) || isIntLit(b.Left, 0) {
			return assign(ir.IntLit(0))
		}
	case "/":
		if isIntLit(b.Right, 1) {
			return assign(b.Left)
		}
	case "||":
		if isBoolLit(b.Right, true) || isBoolLit(b.Left, true) {
			return assign(ir.BoolLit(true))
		}
		if isBoolLit(b.Left, false) {
			return assign(b.Right)
		}
		if isBoolLit(b.Right, false) {
			return assign(b.Left)
		}
	case "&&":
		if isBoolLit(b.Right, false) || isBoolLit(b.Left, false) {
			return assign(ir.BoolLit(false))
		}
		if isBoolLit(b.Left, true) {
			return assign(b.Right)
		}
		if isBoolLit(b.Right, true) {
			return assign(b.Left)
		}
	}
	return nil, false
}
