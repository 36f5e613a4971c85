package optimizer

import "github.com/xjarifx/minic/internal/ir"

// strengthReduction implements spec.md §4.5.4: rewrite `x * 2` (either
// operand order) as `x + x`. Deliberately not generalized to other
// powers of two — that would need overflow and sign-handling this
// pass doesn't do.
func strengthReduction(instrs ir.Program) ir.Program {
	out := make(ir.Program, 0, len(instrs))
	for _, instr := range instrs {
		b, ok := instr.(*ir.BinOpInstr)
		if ok && b.Op == "*" {
			if isIntLit(b.Right, 2) {
				out = append(out, &ir.BinOpInstr{Dest: b.Dest, Left: b.Left, Op: "+", Right: b.Left})
				continue
			}
			if isIntLit(b.Left, 2) {
				out = append(out, &ir.BinOpInstr{Dest: b.Dest, Left: b.Right, Op: "+", Right: b.Right})
				continue
			}
		}
		out = append(out, instr)
	}
	return out
}
