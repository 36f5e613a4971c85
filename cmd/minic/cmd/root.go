// Package cmd is the minic command tree, built on cobra the way the
// teacher's cmd/dwscript/cmd builds dwscript's.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags, mirrors the teacher's
	// Version/GitCommit/BuildDate ldflags pattern).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "minic",
	Short: "MiniC ahead-of-time compiler",
	Long: `minic compiles a small imperative language (ints, bools,
arithmetic, nested scoped blocks, if/else, while, print) to x86-64
System-V assembly text through a six-phase pipeline: lexer, parser,
semantic analyzer, IR generator, optimizer, code generator.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
