// Package driver orchestrates the full pipeline — lexer, parser,
// semantic analyzer, IR generator, optimizer, code generator — and
// classifies whatever fails along the way into the shared
// internal/errors.CompilerError shape (spec.md §7).
package driver

import (
	"fmt"

	"github.com/xjarifx/minic/internal/ast"
	"github.com/xjarifx/minic/internal/codegen"
	"github.com/xjarifx/minic/internal/errors"
	"github.com/xjarifx/minic/internal/ir"
	"github.com/xjarifx/minic/internal/lexer"
	"github.com/xjarifx/minic/internal/optimizer"
	"github.com/xjarifx/minic/internal/parser"
	"github.com/xjarifx/minic/internal/semantic"
	"github.com/xjarifx/minic/pkg/token"
)

// Options controls which phases run (the --no-optimize flag, spec.md
// §6). Compile always retains every phase's artifact on Result.
type Options struct {
	NoOptimize bool
}

// Result holds every pipeline phase's output, so the driver's CLI
// layer can render whichever --show-* flag the user asked for without
// recompiling.
type Result struct {
	Tokens      []token.Token
	Program     *ast.Program
	IR          ir.Program
	OptimizedIR ir.Program
	Assembly    string
}

// Compile runs the full pipeline over source. file is used only for
// error display (it may be empty or "<stdin>"). The returned error, if
// any, is always an *errors.CompilerError.
func Compile(source, file string, opts Options) (*Result, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, classify(err, source, file)
	}

	prog, err := parser.Parse(source)
	if err != nil {
		return nil, classify(err, source, file)
	}

	if err := semantic.NewAnalyzer().Analyze(prog); err != nil {
		return nil, classify(err, source, file)
	}

	result := &Result{Tokens: tokens, Program: prog}

	instrs, irErr := generateIR(prog)
	if irErr != nil {
		return nil, irErr
	}
	result.IR = instrs

	optimized := instrs
	if !opts.NoOptimize {
		optimizedIR, optErr := optimize(instrs)
		if optErr != nil {
			return nil, optErr
		}
		optimized = optimizedIR
	}
	result.OptimizedIR = optimized

	asm, asmErr := generateAsm(optimized)
	if asmErr != nil {
		return nil, asmErr
	}
	result.Assembly = asm

	return result, nil
}

// generateIR, optimize and generateAsm recover from a panic raised by
// their phase: per spec.md §7 these phases trust their input and treat
// any invariant violation as an InternalError, never a crash.
func generateIR(prog *ast.Program) (instrs ir.Program, err *errors.CompilerError) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewInternal(fmt.Sprintf("IR generation: %v", r))
		}
	}()
	return ir.Generate(prog), nil
}

func optimize(instrs ir.Program) (out ir.Program, err *errors.CompilerError) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewInternal(fmt.Sprintf("optimization: %v", r))
		}
	}()
	return optimizer.Optimize(instrs), nil
}

func generateAsm(instrs ir.Program) (asm string, err *errors.CompilerError) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewInternal(fmt.Sprintf("code generation: %v", r))
		}
	}()
	return codegen.Generate(instrs), nil
}

// classify turns a phase error into the shared CompilerError shape,
// reading the concrete phase error's Pos/Message by type switch.
func classify(err error, source, file string) *errors.CompilerError {
	switch e := err.(type) {
	case *lexer.Error:
		return errors.New(errors.LexerErrorKind, e.Pos, e.Message, source, file)
	case *parser.Error:
		return errors.New(errors.ParseErrorKind, e.Pos, e.Message, source, file)
	case *semantic.Error:
		return errors.New(errors.SemanticErrorKind, e.Pos, e.Message, source, file)
	default:
		return errors.NewInternal(err.Error())
	}
}
