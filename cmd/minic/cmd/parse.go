package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xjarifx/minic/internal/driver"
	"github.com/xjarifx/minic/internal/errors"
	"github.com/xjarifx/minic/internal/lexer"
	"github.com/xjarifx/minic/internal/parser"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a MiniC file and print the AST",
	Long: `Parse a MiniC program and print its Abstract Syntax Tree.

If no file is given, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseFormat, "format", "text", "output format: text|json|yaml")
}

func runParse(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	program, parseErr := parser.Parse(source)
	if parseErr != nil {
		compErr := classifyParseError(parseErr, source, filename)
		fmt.Fprintln(os.Stderr, compErr.Error())
		return compErr
	}

	text, err := driver.DumpAST(program, driver.Format(parseFormat))
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

// classifyParseError mirrors internal/driver's classification: the
// error surfacing from parser.Parse may be a *lexer.Error (from the
// token stream underneath) or a *parser.Error.
func classifyParseError(err error, source, filename string) *errors.CompilerError {
	switch e := err.(type) {
	case *lexer.Error:
		return errors.New(errors.LexerErrorKind, e.Pos, e.Message, source, filename)
	case *parser.Error:
		return errors.New(errors.ParseErrorKind, e.Pos, e.Message, source, filename)
	default:
		return errors.NewInternal(err.Error())
	}
}
