// Package codegen translates a type-checked AST into C++17 source text
// against the frozen pascal_* runtime contract (see prelude.go). It never
// fails on an unrecognised construct: unsupported shapes are emitted as
// a greppable `/* UNKNOWN_OP */` or `/* TODO: implement proper type */`
// placeholder so the rest of the translation keeps going (spec.md §4.5
// "failure semantics").
//
// Grounded on _examples/original_source/src/codegen/cpp_generator.cpp,
// whose emission shapes (IIFE lambdas for `in`/set algebra, the
// __with_N / stamped-identifier with-resolution choice, the flattened
// multi-dimensional index formula, the name-mangling table) this
// package follows, adapted into Go's type-switch-over-ast.Expression
// style instead of a virtual accept/visit pair.
package codegen

import (
	"fmt"
	"strings"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/errors"
	"github.com/daver64/tp2cpp/internal/semantic"
	"github.com/daver64/tp2cpp/internal/token"
	"github.com/daver64/tp2cpp/internal/types"
)

// Generator emits C++17 text for one compilation unit (program or unit).
// It shares the SymbolTable the semantic analyser already populated;
// per spec.md §5 it may EnterScope/ExitScope to replicate the
// analyser's visibility when resolving overloads and with-fields, but
// it never redefines a symbol's identity, only re-registers the same
// shapes the analyser would have in a fresh child scope.
type Generator struct {
	Symbols *semantic.SymbolTable

	buf    strings.Builder
	indent int

	source string
	file   string
	diags  errors.List

	// currentFunction is the name of the function whose body is being
	// emitted, so a bare assignment to that name can be rewritten to
	// `<name>_result = value` (spec.md §4.5 "Statement emission rules").
	currentFunction string

	withCounter int
}

// New creates a Generator over an already-populated symbol table.
func New(symbols *semantic.SymbolTable, source, file string) *Generator {
	return &Generator{Symbols: symbols, source: source, file: file}
}

// Diagnostics returns every codegen-stage diagnostic raised while
// emitting. Per spec.md §4.5, codegen placeholders themselves are never
// diagnostics; no emission path currently raises one, so the list is
// empty after a generation pass.
func (g *Generator) Diagnostics() []*errors.Diagnostic { return g.diags.Items() }

func (g *Generator) errorf(pos token.Position, format string, args ...interface{}) {
	g.diags.Add(errors.Codegen, pos, fmt.Sprintf(format, args...), g.source, g.file)
}

// --- output buffer helpers (spec.md §4.5 "output buffer") ---

const indentUnit = "    "

func (g *Generator) emit(s string) { g.buf.WriteString(s) }

func (g *Generator) emitLine(s string) {
	g.emitIndent()
	g.buf.WriteString(s)
	g.buf.WriteByte('\n')
}

func (g *Generator) emitIndent() {
	for i := 0; i < g.indent; i++ {
		g.buf.WriteString(indentUnit)
	}
}

func (g *Generator) increaseIndent() { g.indent++ }

func (g *Generator) decreaseIndent() {
	if g.indent > 0 {
		g.indent--
	}
}

func (g *Generator) blank() { g.buf.WriteByte('\n') }

// GenerateProgram assembles the complete translation unit for a
// `program ... .` compilation: prelude, forward prototypes,
// declarations, routine bodies, and a main() entry, in the six-step
// order spec.md §4.5 mandates.
func (g *Generator) GenerateProgram(program *ast.Program) string {
	g.emitHeaders()
	g.emitUsesIncludes(program.Uses)
	g.emitForwardPrototypes(program.Declarations)
	g.emitNonRoutineDeclarations(program.Declarations)
	g.emitRoutineBodies(program.Declarations)
	g.emitMain(program.Body)
	return g.buf.String()
}

// GenerateUnit emits a unit's interface and implementation sections as
// plain declarations (tp2cpp never emits a separate header/source pair
// per unit; internal/units resolves a unit's interface declarations
// into the importing analysis pass, and codegen only ever runs over
// the final program once semantic analysis has merged everything it
// needs from used units).
func (g *Generator) GenerateUnit(unit *ast.Unit) string {
	g.emitHeaders()
	g.emitUsesIncludes(unit.InterfaceUses)
	g.emitUsesIncludes(unit.ImplementationUses)
	all := append(append([]ast.Declaration{}, unit.InterfaceDecls...), unit.ImplementationDecls...)
	g.emitForwardPrototypes(all)
	g.emitNonRoutineDeclarations(all)
	g.emitRoutineBodies(all)
	if unit.InitBody != nil {
		g.emitLine("int main(int argc, char* argv[]) {")
		g.increaseIndent()
		g.emitLine("pascal_argc = argc;")
		g.emitLine("pascal_argv = argv;")
		g.emitCompoundInline(unit.InitBody)
		g.emitLine("return 0;")
		g.decreaseIndent()
		g.emitLine("}")
	}
	return g.buf.String()
}

func (g *Generator) emitUsesIncludes(uses *ast.UsesClause) {
	if uses == nil {
		return
	}
	for _, name := range uses.Names {
		g.emitLine("#include \"" + strings.ToLower(name) + ".hpp\" // uses " + name)
	}
}

func (g *Generator) emitMain(body *ast.CompoundStatement) {
	g.blank()
	g.emitLine("// Global variables for Pascal system functions")
	g.emitLine("static int pascal_argc = 0;")
	g.emitLine("static char** pascal_argv = nullptr;")
	g.blank()
	g.emitLine("int main(int argc, char* argv[]) {")
	g.increaseIndent()
	g.emitLine("pascal_argc = argc;")
	g.emitLine("pascal_argv = argv;")
	g.blank()
	if body != nil {
		g.emitCompoundInline(body)
	}
	g.emitLine("return 0;")
	g.decreaseIndent()
	g.emitLine("}")
}

// typeNameOf returns the data type and type name the semantic pass
// stamped on an expression's TypeInfo, or Unknown and "" for a node
// that carries none.
func typeNameOf(e ast.Expression) (types.DataType, string) {
	if t, ok := e.(ast.Typed); ok {
		return t.GetType(), t.GetTypeName()
	}
	return types.Unknown, ""
}

// arrayDescriptorFor resolves e's array shape by following its stamped
// type name back to the symbol table's stored definition text, falling
// back to treating the type name itself as inline array text when it
// isn't a registered name (spec.md §4.5 "bound-parsing fallback").
func (g *Generator) arrayDescriptorFor(e ast.Expression) (types.ArrayDescriptor, bool) {
	_, typeName := typeNameOf(e)
	if typeName == "" {
		return types.ArrayDescriptor{}, false
	}
	text := g.resolveTypeText(typeName)
	return types.ParseArrayType(text)
}

// resolveTypeText follows a type name to its stored definition, or
// returns the name itself when it isn't registered (it may already be
// inline type text for an anonymous var declaration).
func (g *Generator) resolveTypeText(name string) string {
	if sym, ok := g.Symbols.Lookup(name); ok && sym.Kind == semantic.SymTypeDef {
		return sym.TypeDefinition
	}
	return name
}

func (g *Generator) recordDescriptorFor(typeName string) (types.RecordDescriptor, bool) {
	text := g.resolveTypeText(typeName)
	return types.ParseRecordType(text)
}

func (g *Generator) enumDescriptorFor(typeName string) (types.EnumDescriptor, bool) {
	text := g.resolveTypeText(typeName)
	return types.ParseEnumType(text)
}
