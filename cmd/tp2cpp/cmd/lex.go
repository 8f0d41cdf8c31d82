package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/daver64/tp2cpp/internal/lexer"
	"github.com/daver64/tp2cpp/internal/token"
)

var (
	lexShowPos  bool
	lexOnlyErrs bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Pascal source file and print the resulting tokens",
	Long: `Tokenize (lex) a Pascal source file and print the resulting tokens.

Useful for debugging the lexer. Reads from stdin if no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexOnlyErrs, "only-errors", false, "show only illegal tokens")
}

func runLex(_ *cobra.Command, args []string) error {
	input, err := readSource(args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	errorCount := 0
	for {
		tok := l.Next()
		if !lexOnlyErrs {
			printToken(tok, lexShowPos)
		}
		if tok.Type == token.ILLEGAL {
			errorCount++
			if lexOnlyErrs {
				printToken(tok, lexShowPos)
			}
		}
		if tok.Type == token.EOF {
			break
		}
	}

	for _, e := range l.Errors() {
		fmt.Fprintf(os.Stderr, "lex error at %s: %s\n", e.Pos, e.Message)
	}

	if errorCount > 0 || len(l.Errors()) > 0 {
		return fmt.Errorf("found %d lexical error(s)", len(l.Errors()))
	}
	return nil
}

func printToken(tok token.Token, showPos bool) {
	out := fmt.Sprintf("[%-12s]", tok.Type)
	if tok.Literal == "" {
		out += fmt.Sprintf(" %s", tok.Type)
	} else {
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if showPos {
		out += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(out)
}

func readSource(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("error reading file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	return string(data), nil
}
