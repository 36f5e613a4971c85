package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xjarifx/minic/internal/driver"
	"github.com/xjarifx/minic/internal/errors"
)

var (
	buildOutput     string
	buildShowTokens bool
	buildShowAST    bool
	buildShowIR     bool
	buildShowAsm    bool
	buildNoOptimize bool
	buildFormat     string
	buildColor      bool
)

var buildCmd = &cobra.Command{
	Use:   "build <input.mc>",
	Short: "Compile a MiniC source file to x86-64 assembly",
	Long: `build runs the full pipeline (lexer, parser, semantic analyzer,
IR generator, optimizer, code generator) over a MiniC source file and
writes the resulting assembly text.

Examples:
  minic build prog.mc
  minic build prog.mc -o prog.s --show-ir
  minic build prog.mc --no-optimize --show-ast --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output file (default: build/<stem>.s)")
	buildCmd.Flags().BoolVar(&buildShowTokens, "show-tokens", false, "print the token stream")
	buildCmd.Flags().BoolVar(&buildShowAST, "show-ast", false, "print the parsed AST")
	buildCmd.Flags().BoolVar(&buildShowIR, "show-ir", false, "print the generated TAC")
	buildCmd.Flags().BoolVar(&buildShowAsm, "show-asm", false, "print the generated assembly")
	buildCmd.Flags().BoolVar(&buildNoOptimize, "no-optimize", false, "skip the optimizer")
	buildCmd.Flags().StringVar(&buildFormat, "format", "text", "dump format for --show-*: text|json|yaml")
	buildCmd.Flags().BoolVar(&buildColor, "color", false, "colorize error output")
}

func runBuild(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	result, err := driver.Compile(source, filename, driver.Options{NoOptimize: buildNoOptimize})
	if err != nil {
		if compErr, ok := err.(*errors.CompilerError); ok {
			fmt.Fprintln(os.Stderr, compErr.Error())
			if buildColor {
				fmt.Fprintln(os.Stderr)
				fmt.Fprintln(os.Stderr, compErr.Format(buildColor))
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return err
	}

	format := driver.Format(buildFormat)

	if buildShowTokens {
		text, err := driver.DumpTokens(result.Tokens, format)
		if err != nil {
			return err
		}
		fmt.Println(text)
	}
	if buildShowAST {
		text, err := driver.DumpAST(result.Program, format)
		if err != nil {
			return err
		}
		fmt.Println(text)
	}
	if buildShowIR {
		text, err := driver.DumpIR(result.OptimizedIR, format)
		if err != nil {
			return err
		}
		fmt.Println(text)
	}
	if buildShowAsm {
		text, err := driver.DumpAsm(result.Assembly, format)
		if err != nil {
			return err
		}
		fmt.Println(text)
	}

	outFile := buildOutput
	if outFile == "" {
		stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		outFile = filepath.Join("build", stem+".s")
	}

	if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", outFile, err)
	}
	if err := os.WriteFile(outFile, []byte(result.Assembly), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	fmt.Printf("%s -> %s\n", filename, outFile)
	return nil
}
