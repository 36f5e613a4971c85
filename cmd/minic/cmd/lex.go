package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xjarifx/minic/internal/driver"
	"github.com/xjarifx/minic/internal/errors"
	"github.com/xjarifx/minic/internal/lexer"
)

var lexFormat string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a MiniC file and print the resulting tokens",
	Long: `Tokenize a MiniC program and print the resulting token stream.

If no file is given, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVar(&lexFormat, "format", "text", "output format: text|json|yaml")
}

func runLex(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	tokens, tokErr := lexer.Tokenize(source)
	if tokErr != nil {
		lexErr, ok := tokErr.(*lexer.Error)
		if !ok {
			return tokErr
		}
		compErr := errors.New(errors.LexerErrorKind, lexErr.Pos, lexErr.Message, source, filename)
		fmt.Fprintln(os.Stderr, compErr.Error())
		return compErr
	}

	text, err := driver.DumpTokens(tokens, driver.Format(lexFormat))
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func readSource(args []string) (source, filename string, err error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(data), args[0], nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), "<stdin>", nil
}
