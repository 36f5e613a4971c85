package optimizer

import "github.com/xjarifx/minic/internal/ir"

// eliminateDeadCode implements spec.md §4.5.5's two sub-passes:
// instruction reachability, then iterated unused-temp removal.
func eliminateDeadCode(instrs ir.Program) ir.Program {
	instrs = eliminateUnreachable(instrs)
	instrs = eliminateUnusedTemps(instrs)
	return instrs
}

// eliminateUnreachable worklist-traverses from index 0, following
// Goto to its label target, IfFalse to both its label target and
// fallthrough, and everything else to fallthrough only.
func eliminateUnreachable(instrs ir.Program) ir.Program {
	if len(instrs) == 0 {
		return instrs
	}

	labelIndex := make(map[string]int)
	for i, instr := range instrs {
		if l, ok := instr.(*ir.LabelInstr); ok {
			labelIndex[l.Name] = i
		}
	}

	reached := make([]bool, len(instrs))
	worklist := []int{0}
	for len(worklist) > 0 {
		i := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if i < 0 || i >= len(instrs) || reached[i] {
			continue
		}
		reached[i] = true

		switch in := instrs[i].(type) {
		case *ir.GotoInstr:
			if target, ok := labelIndex[in.Label]; ok {
				worklist = append(worklist, target)
			}
		case *ir.IfFalseInstr:
			if target, ok := labelIndex[in.Label]; ok {
				worklist = append(worklist, target)
			}
			worklist = append(worklist, i+1)
		default:
			worklist = append(worklist, i+1)
		}
	}

	out := make(ir.Program, 0, len(instrs))
	for i, instr := range instrs {
		if reached[i] {
			out = append(out, instr)
		}
	}
	return out
}

// eliminateUnusedTemps repeatedly drops any Assign/BinOp/UnOp whose
// dest is a temp that is never read, until a pass removes nothing.
func eliminateUnusedTemps(instrs ir.Program) ir.Program {
	for {
		used := usedTemps(instrs)
		next := make(ir.Program, 0, len(instrs))
		changed := false
		for _, instr := range instrs {
			if dest, ok := tempDestOf(instr); ok && !used[dest] {
				changed = true
				continue
			}
			next = append(next, instr)
		}
		instrs = next
		if !changed {
			return instrs
		}
	}
}

// tempDestOf returns an instruction's destination name when that
// destination is a compiler temp (the only kind dead-code elimination
// may drop).
func tempDestOf(instr ir.Instr) (string, bool) {
	var dest string
	switch in := instr.(type) {
	case *ir.AssignInstr:
		dest = in.Dest
	case *ir.BinOpInstr:
		dest = in.Dest
	case *ir.UnOpInstr:
		dest = in.Dest
	default:
		return "", false
	}
	if !isTempName(dest) {
		return "", false
	}
	return dest, true
}

func usedTemps(instrs ir.Program) map[string]bool {
	used := make(map[string]bool)
	mark := func(o ir.Operand) {
		if o.Kind == ir.TempOperand {
			used[o.Name] = true
		}
	}
	for _, instr := range instrs {
		switch in := instr.(type) {
		case *ir.AssignInstr:
			mark(in.Src)
		case *ir.BinOpInstr:
			mark(in.Left)
			mark(in.Right)
		case *ir.UnOpInstr:
			mark(in.Operand)
		case *ir.IfFalseInstr:
			mark(in.Cond)
		case *ir.PrintInstr:
			mark(in.Value)
		}
	}
	return used
}
