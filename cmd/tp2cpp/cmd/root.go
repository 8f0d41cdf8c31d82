// Package cmd implements the tp2cpp command-line interface: a thin cobra
// shell around internal/compiler.Pipeline. Grounded on the teacher's
// cmd/dwscript/cmd/root.go — a persistent --verbose flag, a version
// template, and RunE-style subcommands — generalized to this engine's
// single compile/lex/parse surface.
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose  bool
	noColor  bool
	unitPath []string
)

var rootCmd = &cobra.Command{
	Use:   "tp2cpp",
	Short: "Turbo Pascal 7 to C++17 translator",
	Long: `tp2cpp translates Turbo Pascal 7 compatible source into equivalent C++17.

It runs source through a lex -> parse -> semantic analysis -> code
generation pipeline. A compilation only ever emits target text once every
diagnostic list (lex, parse, semantic) is empty.`,
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

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace pipeline stage transitions")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color in diagnostic output")
	rootCmd.PersistentFlags().StringSliceVar(&unitPath, "unit-path", nil, "additional unit search path (repeatable)")

	cobra.OnInitialize(func() {
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	})
}

// wantColor reports whether diagnostic output should carry ANSI color:
// never when --no-color is set, and only when stderr is itself a
// terminal, matching the teacher's CompilerError.Format(color bool)
// contract.
func wantColor() bool {
	if noColor {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
