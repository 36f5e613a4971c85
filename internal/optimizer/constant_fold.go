package optimizer

import "github.com/xjarifx/minic/internal/ir"

// constantFold implements spec.md §4.5.1: a flow-insensitive walk that
// tracks known-constant temps and folds any instruction whose operands
// are all constant. It relies on every temp being single-assignment
// (the IR generator's invariant), so the map never needs to be reset
// mid-walk — only between compilations.
func constantFold(instrs ir.Program) ir.Program {
	consts := make(map[string]ir.Operand)
	resolve := func(o ir.Operand) ir.Operand {
		if o.Kind == ir.TempOperand {
			if v, ok := consts[o.Name]; ok {
				return v
			}
		}
		return o
	}

	out := make(ir.Program, 0, len(instrs))
	for _, instr := range instrs {
		switch in := instr.(type) {
		case *ir.AssignInstr:
			src := resolve(in.Src)
			if isTempName(in.Dest) {
				if src.IsConst() {
					consts[in.Dest] = src
				} else {
					delete(consts, in.Dest)
				}
			}
			out = append(out, &ir.AssignInstr{Dest: in.Dest, Src: src})

		case *ir.BinOpInstr:
			left := resolve(in.Left)
			right := resolve(in.Right)
			if result, ok := evalBinOp(in.Op, left, right); ok {
				if isTempName(in.Dest) {
					consts[in.Dest] = result
				}
				out = append(out, &ir.AssignInstr{Dest: in.Dest, Src: result})
			} else {
				if isTempName(in.Dest) {
					delete(consts, in.Dest)
				}
				out = append(out, &ir.BinOpInstr{Dest: in.Dest, Left: left, Op: in.Op, Right: right})
			}

		case *ir.UnOpInstr:
			operand := resolve(in.Operand)
			if result, ok := evalUnOp(in.Op, operand); ok {
				if isTempName(in.Dest) {
					consts[in.Dest] = result
				}
				out = append(out, &ir.AssignInstr{Dest: in.Dest, Src: result})
			} else {
				if isTempName(in.Dest) {
					delete(consts, in.Dest)
				}
				out = append(out, &ir.UnOpInstr{Dest: in.Dest, Op: in.Op, Operand: operand})
			}

		case *ir.IfFalseInstr:
			out = append(out, &ir.IfFalseInstr{Cond: resolve(in.Cond), Label: in.Label})

		case *ir.PrintInstr:
			out = append(out, &ir.PrintInstr{Value: resolve(in.Value)})

		default:
			out = append(out, instr)
		}
	}
	return out
}

// evalBinOp evaluates a binary operator over two constant operands.
// Division and modulo truncate toward zero, matching the idivq the
// code generator emits (spec.md §9's open question, resolved by
// specifying truncation everywhere — which is exactly what Go's native
// integer / and % already do).
func evalBinOp(op string, left, right ir.Operand) (ir.Operand, bool) {
	switch op {
	case "+", "-", "*", "/", "%":
		if left.Kind != ir.IntLitOperand || right.Kind != ir.IntLitOperand {
			return ir.Operand{}, false
		}
		l, r := left.IntValue, right.IntValue
		switch op {
		case "+":
			return ir.IntLit(l + r), true
		case "-":
			return ir.IntLit(l - r), true
		case "*":
			return ir.IntLit(l * r), true
		case "/":
			if r == 0 {
				return ir.Operand{}, false
			}
			return ir.IntLit(l / r), true
		case "%":
			if r == 0 {
				return ir.Operand{}, false
			}
			return ir.IntLit(l % r), true
		}

	case "<", ">", "<=", ">=":
		if left.Kind != ir.IntLitOperand || right.Kind != ir.IntLitOperand {
			return ir.Operand{}, false
		}
		l, r := left.IntValue, right.IntValue
		switch op {
		case "<":
			return ir.BoolLit(l < r), true
		case ">":
			return ir.BoolLit(l > r), true
		case "<=":
			return ir.BoolLit(l <= r), true
		case ">=":
			return ir.BoolLit(l >= r), true
		}

	case "==", "!=":
		if !left.IsConst() || !right.IsConst() || left.Kind != right.Kind {
			return ir.Operand{}, false
		}
		var eq bool
		if left.Kind == ir.IntLitOperand {
			eq = left.IntValue == right.IntValue
		} else {
			eq = left.BoolValue == right.BoolValue
		}
		if op == "==" {
			return ir.BoolLit(eq), true
		}
		return ir.BoolLit(!eq), true

	case "&&", "||":
		if left.Kind != ir.BoolLitOperand || right.Kind != ir.BoolLitOperand {
			return ir.Operand{}, false
		}
		if op == "&&" {
			return ir.BoolLit(left.BoolValue && right.BoolValue), true
		}
		return ir.BoolLit(left.BoolValue || right.BoolValue), true
	}
	return ir.Operand{}, false
}

func evalUnOp(op string, operand ir.Operand) (ir.Operand, bool) {
	switch op {
	case "-":
		if operand.Kind != ir.IntLitOperand {
			return ir.Operand{}, false
		}
		return ir.IntLit(-operand.IntValue), true
	case "!":
		if operand.Kind != ir.BoolLitOperand {
			return ir.Operand{}, false
		}
		return ir.BoolLit(!operand.BoolValue), true
	}
	return ir.Operand{}, false
}
