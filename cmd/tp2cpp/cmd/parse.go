package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/errors"
	"github.com/daver64/tp2cpp/internal/parser"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Pascal source file and display its declaration structure",
	Long: `Parse a Pascal source file and display the shape of its AST.

Reads from stdin if no file is given. Use --dump-ast for a fuller
structural dump of declarations and statements.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the declaration/statement structure")
}

func runParse(_ *cobra.Command, args []string) error {
	filename := "<stdin>"
	if len(args) > 0 {
		filename = args[0]
	}
	input, err := readSource(args)
	if err != nil {
		return err
	}

	p := parser.New(input, filename)
	program := p.ParseProgram()
	if diags := p.Diagnostics(); len(diags) > 0 {
		fmt.Fprintln(os.Stderr, errors.FormatAll(diags, wantColor()))
		return fmt.Errorf("parsing failed with %d error(s)", len(diags))
	}

	if parseDumpAST {
		dumpProgram(program)
	} else {
		fmt.Printf("program %s (%d declarations, %d statements)\n",
			program.Name, len(program.Declarations), len(program.Body.Statements))
	}
	return nil
}

func dumpProgram(p *ast.Program) {
	fmt.Printf("Program %s\n", p.Name)
	if p.Uses != nil {
		fmt.Printf("  uses %v\n", p.Uses.Names)
	}
	for _, d := range p.Declarations {
		dumpDeclaration(d, 1)
	}
	fmt.Printf("  begin .. end (%d statements)\n", len(p.Body.Statements))
}

func dumpDeclaration(d ast.Declaration, indent int) {
	pad := indentStr(indent)
	switch n := d.(type) {
	case *ast.ConstantDeclaration:
		fmt.Printf("%sconst %s\n", pad, n.Name)
	case *ast.VariableDeclaration:
		fmt.Printf("%svar %v: %s\n", pad, n.Names, n.TypeText)
	case *ast.TypeDeclaration:
		fmt.Printf("%stype %s\n", pad, n.Name)
	case *ast.ProcedureDeclaration:
		fmt.Printf("%sprocedure %s (%d params)\n", pad, n.Name, len(n.Parameters))
	case *ast.FunctionDeclaration:
		fmt.Printf("%sfunction %s: %s (%d params)\n", pad, n.Name, n.ReturnType, len(n.Parameters))
	case *ast.LabelDeclaration:
		fmt.Printf("%slabel %v\n", pad, n.Labels)
	default:
		fmt.Printf("%s%T\n", pad, d)
	}
}

func indentStr(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += "  "
	}
	return s
}
