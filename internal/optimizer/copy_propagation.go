package optimizer

import "github.com/xjarifx/minic/internal/ir"

// copyPropagation implements spec.md §4.5.2: collapse chains of
// copies into temps (such as the `t0 = x` that algebraic simplification
// leaves for `x + 0`) down to their ultimate source operand.
// Each temp is single-assignment, so chasing a chain can never cycle.
func copyPropagation(instrs ir.Program) ir.Program {
	copies := make(map[string]ir.Operand)
	chase := func(o ir.Operand) ir.Operand {
		for o.Kind == ir.TempOperand {
			next, ok := copies[o.Name]
			if !ok {
				break
			}
			o = next
		}
		return o
	}

	out := make(ir.Program, 0, len(instrs))
	for _, instr := range instrs {
		switch in := instr.(type) {
		case *ir.AssignInstr:
			src := chase(in.Src)
			if isTempName(in.Dest) {
				copies[in.Dest] = src
			}
			out = append(out, &ir.AssignInstr{Dest: in.Dest, Src: src})

		case *ir.BinOpInstr:
			out = append(out, &ir.BinOpInstr{Dest: in.Dest, Left: chase(in.Left), Op: in.Op, Right: chase(in.Right)})
			if isTempName(in.Dest) {
				delete(copies, in.Dest)
			}

		case *ir.UnOpInstr:
			out = append(out, &ir.UnOpInstr{Dest: in.Dest, Op: in.Op, Operand: chase(in.Operand)})
			if isTempName(in.Dest) {
				delete(copies, in.Dest)
			}

		case *ir.IfFalseInstr:
			out = append(out, &ir.IfFalseInstr{Cond: chase(in.Cond), Label: in.Label})

		case *ir.PrintInstr:
			out = append(out, &ir.PrintInstr{Value: chase(in.Value)})

		default:
			out = append(out, instr)
		}
	}
	return out
}
