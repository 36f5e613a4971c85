// Package optimizer rewrites TAC into a new program via five local passes run to
// a fixpoint (spec.md §4.5). Grounded on the teacher's chunkOptimizer
// (internal/bytecode/optimizer.go): named OptimizationPass constants,
// a functional-options config, and an ordered pass list driven by a
// run loop — adapted from a single-pass-per-call bytecode rewriter to
// a fixpoint over five named passes on a linear TAC program.
package optimizer

import "github.com/xjarifx/minic/internal/ir"

// Pass names one of the five optimization passes, enabled or disabled
// independently via WithPass.
type Pass string

const (
	PassConstantFold      Pass = "constant-fold"
	PassCopyPropagation   Pass = "copy-propagation"
	PassAlgebraicSimplify Pass = "algebraic-simplify"
	PassStrengthReduction Pass = "strength-reduction"
	PassDeadCodeEliminate Pass = "dead-code"
)

// maxIterations caps the fixpoint loop as a safety net; correctness
// must not depend on reaching it (spec.md §4.5).
const maxIterations = 10

// Option toggles optimizer passes. With no options, every pass runs.
type Option func(*config)

type config struct {
	disabled map[Pass]bool
}

func (c config) isEnabled(p Pass) bool {
	return !c.disabled[p]
}

// WithPass enables or disables a single named pass. The driver's
// --no-optimize flag does not use it: it skips Optimize altogether.
func WithPass(p Pass, enabled bool) Option {
	return func(c *config) {
		if c.disabled == nil {
			c.disabled = make(map[Pass]bool)
		}
		c.disabled[p] = !enabled
	}
}

type passFn func(ir.Program) ir.Program

// orderedPasses is the fixed pass order spec.md §4.5 requires.
var orderedPasses = []struct {
	id  Pass
	run passFn
}{
	{PassConstantFold, constantFold},
	{PassCopyPropagation, copyPropagation},
	{PassAlgebraicSimplify, algebraicSimplify},
	{PassStrengthReduction, strengthReduction},
	{PassDeadCodeEliminate, eliminateDeadCode},
}

// Optimize applies the enabled passes in order, repeating the whole
// cycle until a cycle leaves the program unchanged (structural
// equality, per spec.md §9's stronger-than-count change predicate),
// capped at maxIterations.
func Optimize(prog ir.Program, opts ...Option) ir.Program {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	current := append(ir.Program(nil), prog...)
	for i := 0; i < maxIterations; i++ {
		next := current
		for _, pass := range orderedPasses {
			if !cfg.isEnabled(pass.id) {
				continue
			}
			next = pass.run(next)
		}
		if instrsEqual(current, next) {
			return next
		}
		current = next
	}
	return current
}

func instrsEqual(a, b ir.Program) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].String() != b[i].String() {
			return false
		}
	}
	return true
}
