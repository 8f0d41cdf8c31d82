package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daver64/tp2cpp/internal/compiler"
	"github.com/daver64/tp2cpp/internal/errors"
)

var outputFile string

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Translate a Pascal source file to C++17",
	Long: `Translate a Turbo Pascal 7 compatible source file into equivalent C++17.

Examples:
  # Translate a program to hello.cpp next to the source
  tp2cpp compile hello.pas

  # Translate a program to stdout
  tp2cpp compile hello.pas -o -

  # Translate to a named output file
  tp2cpp compile hello.pas -o hello.cpp`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: <input> with .cpp extension; '-' writes to stdout)")
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	pipeline := compiler.New()
	for _, p := range unitPath {
		pipeline.Loader.AddSearchPath(p)
	}
	pipeline.Loader.AddSearchPath(filepath.Dir(filename))

	result := pipeline.Compile(string(content), filename)
	if !result.Success() {
		fmt.Fprintln(os.Stderr, errors.FormatAll(result.Diagnostics(), wantColor()))
		return fmt.Errorf("compilation failed with %d error(s)", len(result.Diagnostics()))
	}

	dest := outputFile
	if dest == "" {
		dest = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".cpp"
	}
	if dest == "-" {
		fmt.Print(result.Output)
		return nil
	}
	if err := os.WriteFile(dest, []byte(result.Output), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", dest)
	return nil
}
