// Package compiler wires the lexer, parser, semantic analyser, unit
// loader, and code generator into the single public entry point the
// CLI drives: Compile. Grounded on the teacher's
// cmd/dwscript/cmd/compile.go RunE pattern (read file, lex, parse,
// check errors, analyse, emit), adapted to this engine's stages and
// its stricter invariant.
package compiler

import (
	log "github.com/sirupsen/logrus"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/codegen"
	"github.com/daver64/tp2cpp/internal/errors"
	"github.com/daver64/tp2cpp/internal/parser"
	"github.com/daver64/tp2cpp/internal/semantic"
	"github.com/daver64/tp2cpp/internal/units"
)

// Result is the outcome of one Compile call. Output is only ever
// populated when every diagnostic list is empty — per spec.md §7, "on
// failure the engine does not emit target text".
type Result struct {
	Output      string
	LexErrors   []*errors.Diagnostic
	ParseErrors []*errors.Diagnostic
	SemaErrors  []*errors.Diagnostic
}

// Success reports whether every diagnostic list is empty, the sole
// condition spec.md §7 names for a successful compilation.
func (r *Result) Success() bool {
	return len(r.LexErrors) == 0 && len(r.ParseErrors) == 0 && len(r.SemaErrors) == 0
}

// Diagnostics returns every diagnostic across all three stages, lex
// first, then parse, then semantic, for uniform reporting.
func (r *Result) Diagnostics() []*errors.Diagnostic {
	all := make([]*errors.Diagnostic, 0, len(r.LexErrors)+len(r.ParseErrors)+len(r.SemaErrors))
	all = append(all, r.LexErrors...)
	all = append(all, r.ParseErrors...)
	all = append(all, r.SemaErrors...)
	return all
}

// Pipeline runs the full lex -> parse -> resolve-uses -> analyse ->
// generate sequence over one source file. It holds no state between
// Compile calls beyond the unit loader's parse-once cache, matching
// spec.md §5's single-threaded, one-invocation-at-a-time concurrency
// model.
type Pipeline struct {
	Loader *units.Loader
}

// New creates a Pipeline with a fresh unit loader seeded with the
// default search paths.
func New() *Pipeline {
	return &Pipeline{Loader: units.New()}
}

// Compile runs source (from file, used only for diagnostics and unit
// search-path hints) through every pipeline stage and returns a
// Result. The parser and lexer diagnostics are read off the same
// Parser per internal/parser's merged Diagnostics() contract; the
// semantic pass only runs once parsing produced zero diagnostics,
// since a malformed AST is not a safe input to type-check.
func (p *Pipeline) Compile(source, file string) *Result {
	log.Debugf("stage=lex file=%s", file)
	pr := parser.New(source, file)
	program := pr.ParseProgram()
	parseDiags := pr.Diagnostics()

	result := &Result{}
	for _, d := range parseDiags {
		if d.Category == errors.Lex {
			result.LexErrors = append(result.LexErrors, d)
		} else {
			result.ParseErrors = append(result.ParseErrors, d)
		}
	}

	if len(result.LexErrors) > 0 || len(result.ParseErrors) > 0 {
		log.Debugf("stage=parse file=%s lex_errors=%d parse_errors=%d", file, len(result.LexErrors), len(result.ParseErrors))
		return result
	}

	analyzer := semantic.NewAnalyzer(source, file)

	log.Debugf("stage=uses file=%s", file)
	if program.Uses != nil {
		result.SemaErrors = append(result.SemaErrors, p.resolveUses(program.Uses, analyzer, source, file)...)
	}

	log.Debugf("stage=sema file=%s", file)
	result.SemaErrors = append(result.SemaErrors, analyzer.Analyze(program)...)

	if !result.Success() {
		log.Debugf("stage=sema file=%s sema_errors=%d", file, len(result.SemaErrors))
		return result
	}

	log.Debugf("stage=codegen file=%s", file)
	gen := codegen.New(analyzer.Symbols, source, file)
	result.Output = gen.GenerateProgram(program)
	result.SemaErrors = append(result.SemaErrors, gen.Diagnostics()...)
	if !result.Success() {
		result.Output = ""
	}
	return result
}

// resolveUses loads every unit named in uses, folds each unit's own
// lex/parse diagnostics into the caller's diagnostic list so an error
// inside a used unit surfaces at the point of the program that used
// it, and registers each successfully parsed unit's declarations into
// analyzer's shared symbol table via AnalyzeUnit so the program body
// can call into it.
func (p *Pipeline) resolveUses(uses *ast.UsesClause, analyzer *semantic.Analyzer, source, file string) []*errors.Diagnostic {
	var diags []*errors.Diagnostic
	for _, name := range uses.Names {
		unit, unitDiags, err := p.Loader.Load(name)
		if err != nil {
			diags = append(diags, errors.New(errors.Semantic, uses.Token.Pos, err.Error(), source, file))
			continue
		}
		if len(unitDiags) > 0 {
			diags = append(diags, unitDiags...)
			continue
		}
		diags = append(diags, analyzer.AnalyzeUnit(unit)...)
	}
	return diags
}
