// Package errors formats compiler diagnostics with source context,
// line/column information, and a caret pointing at the offending column.
package errors

import (
	"fmt"
	"strings"

	"github.com/daver64/tp2cpp/internal/token"
)

// Category distinguishes which pipeline stage raised a Diagnostic. The
// pipeline refuses to hand target text to the caller once any diagnostic
// list is non-empty, regardless of category.
type Category int

const (
	Lex Category = iota
	Parse
	Semantic
	Codegen
)

func (c Category) String() string {
	switch c {
	case Lex:
		return "lex"
	case Parse:
		return "parse"
	case Semantic:
		return "semantic"
	case Codegen:
		return "codegen"
	default:
		return "error"
	}
}

// Diagnostic is a single compilation error with position and source
// context, tagged with the stage that raised it.
type Diagnostic struct {
	Category Category
	Message  string
	Source   string
	File     string
	Pos      token.Position
}

// New creates a Diagnostic.
func New(category Category, pos token.Position, message, source, file string) *Diagnostic {
	return &Diagnostic{
		Category: category,
		Pos:      pos,
		Message:  message,
		Source:   source,
		File:     file,
	}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic with a source-line excerpt and a caret
// under the offending column. If color is true, ANSI escapes highlight
// the caret and message.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		sb.WriteString(fmt.Sprintf("%s error in %s:%d:%d\n", d.Category, d.File, d.Pos.Line, d.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s error at line %d:%d\n", d.Category, d.Pos.Line, d.Pos.Column))
	}

	if line := d.sourceLine(d.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+d.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (d *Diagnostic) sourceLine(lineNum int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of diagnostics, numbering them when there is
// more than one.
func FormatAll(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("compilation failed with %d error(s):\n\n", len(diags)))
	for i, d := range diags {
		sb.WriteString(fmt.Sprintf("[%d of %d]\n", i+1, len(diags)))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// List accumulates diagnostics for a single pipeline stage. The zero
// value is ready to use.
type List struct {
	items []*Diagnostic
}

func (l *List) Add(category Category, pos token.Position, message, source, file string) {
	l.items = append(l.items, New(category, pos, message, source, file))
}

func (l *List) Append(d *Diagnostic) {
	l.items = append(l.items, d)
}

func (l *List) Extend(other []*Diagnostic) {
	l.items = append(l.items, other...)
}

func (l *List) HasErrors() bool { return len(l.items) > 0 }

func (l *List) Items() []*Diagnostic { return l.items }

func (l *List) Format(color bool) string { return FormatAll(l.items, color) }
