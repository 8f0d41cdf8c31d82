package semantic

import (
	"fmt"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/errors"
	"github.com/daver64/tp2cpp/internal/token"
	"github.com/daver64/tp2cpp/internal/types"
)

// Analyzer walks a parsed program, resolving names against a
// SymbolTable, inferring and stamping an expression type onto every
// node, and tracking with-statement scopes. It never mutates the AST's
// shape, only the TypeInfo embedded on expression nodes.
type Analyzer struct {
	Symbols *SymbolTable
	diags   errors.List
	source  string
	file    string
	with    withStack

	typeTexts map[string]string // lowercase type name -> verbatim definition text, for field/record lookups
}

// NewAnalyzer creates an Analyzer over source/file, used only to give
// diagnostics a source excerpt and a file name.
func NewAnalyzer(source, file string) *Analyzer {
	return &Analyzer{
		Symbols:   NewSymbolTable(),
		source:    source,
		file:      file,
		typeTexts: make(map[string]string),
	}
}

// Diagnostics returns every diagnostic raised during Analyze.
func (a *Analyzer) Diagnostics() []*errors.Diagnostic { return a.diags.Items() }

func (a *Analyzer) errorf(pos token.Position, format string, args ...interface{}) {
	a.diags.Add(errors.Semantic, pos, fmt.Sprintf(format, args...), a.source, a.file)
}

// Analyze runs name resolution and type checking over program, in
// declaration order: all top-level declarations are registered before
// any procedure/function body is walked, so mutual forward references
// between routines at the same scope resolve regardless of textual
// order (matching how a forward declaration would).
func (a *Analyzer) Analyze(program *ast.Program) []*errors.Diagnostic {
	for _, decl := range program.Declarations {
		a.declareTop(decl)
	}
	for _, decl := range program.Declarations {
		a.analyzeBody(decl)
	}
	if program.Body != nil {
		a.analyzeStatement(program.Body)
	}
	return a.diags.Items()
}

// AnalyzeUnit runs the same two passes over a unit's interface and
// implementation declaration lists in turn, then its initialization
// body.
func (a *Analyzer) AnalyzeUnit(unit *ast.Unit) []*errors.Diagnostic {
	for _, decl := range unit.InterfaceDecls {
		a.declareTop(decl)
	}
	for _, decl := range unit.ImplementationDecls {
		a.declareTop(decl)
	}
	for _, decl := range unit.InterfaceDecls {
		a.analyzeBody(decl)
	}
	for _, decl := range unit.ImplementationDecls {
		a.analyzeBody(decl)
	}
	if unit.InitBody != nil {
		a.analyzeStatement(unit.InitBody)
	}
	return a.diags.Items()
}

// declareTop registers a declaration's symbol without yet walking a
// procedure/function body, so sibling routines can call each other
// regardless of source order.
func (a *Analyzer) declareTop(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.ConstantDeclaration:
		a.analyzeExpr(d.Value)
		a.Symbols.Define(&Symbol{Name: d.Name, Kind: SymConstant, DataType: exprType(d.Value)})

	case *ast.TypeDeclaration:
		a.typeTexts[lower(d.Name)] = d.TypeText
		a.Symbols.Define(&Symbol{
			Name:           d.Name,
			Kind:           SymTypeDef,
			DataType:       types.ResolveDataType(d.TypeText),
			TypeDefinition: d.TypeText,
		})
		if enum, ok := types.ParseEnumType(d.TypeText); ok {
			for _, member := range enum.Members {
				a.Symbols.Define(&Symbol{Name: member, Kind: SymConstant, DataType: types.Custom, TypeName: d.Name})
			}
		}

	case *ast.VariableDeclaration:
		dt := types.ResolveDataType(d.TypeText)
		for _, name := range d.Names {
			a.Symbols.Define(&Symbol{
				Name:     name,
				Kind:     SymVariable,
				DataType: dt,
				TypeName: d.TypeText,
			})
		}

	case *ast.ProcedureDeclaration:
		if a.Symbols.CurrentScopeLevel() > 0 {
			a.errorf(d.Token.Pos, "nested procedure '%s' is not supported", d.Name)
		}
		sig := a.buildSignature(d.Name, d.Parameters, types.Void)
		a.registerRoutine(d.Name, sig, d.IsForward, d.IsOverload, d.Token.Pos)

	case *ast.FunctionDeclaration:
		if a.Symbols.CurrentScopeLevel() > 0 {
			a.errorf(d.Token.Pos, "nested function '%s' is not supported", d.Name)
		}
		rt := types.ResolveDataType(d.ReturnType)
		sig := a.buildSignature(d.Name, d.Parameters, rt)
		a.registerRoutine(d.Name, sig, d.IsForward, d.IsOverload, d.Token.Pos)
	}
}

func (a *Analyzer) buildSignature(name string, params []*ast.VariableDeclaration, returnType types.DataType) *Symbol {
	sym := &Symbol{Name: name, Kind: SymProcedure, ReturnType: returnType}
	if returnType != types.Void {
		sym.Kind = SymFunction
	}
	for _, p := range params {
		dt := types.ResolveDataType(p.TypeText)
		for _, n := range p.Names {
			sym.Parameters = append(sym.Parameters, Parameter{
				Name: n, DataType: dt, TypeName: p.TypeText, Mode: p.Mode,
			})
		}
	}
	return sym
}

func (a *Analyzer) registerRoutine(name string, sig *Symbol, isForward, isOverload bool, pos token.Position) {
	if fwd, ok := a.Symbols.MatchForward(name, sig); ok && !isForward {
		fwd.IsForward = false
		return
	}
	if isForward {
		a.Symbols.DefineForward(sig)
		return
	}
	if isOverload {
		a.Symbols.DefineOverloaded(sig)
		return
	}
	if _, exists := a.Symbols.LookupLocal(name); exists {
		a.errorf(pos, "'%s' is already declared in this scope", name)
		return
	}
	a.Symbols.Define(sig)
}

// analyzeBody walks a procedure/function's parameter list, locals, and
// body in their own nested scope; it is a no-op for non-routine
// declarations (already fully handled by declareTop).
func (a *Analyzer) analyzeBody(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.ProcedureDeclaration:
		if d.IsForward || d.Body == nil {
			return
		}
		a.Symbols.EnterScope()
		a.bindParameters(d.Parameters)
		for _, local := range d.Locals {
			a.declareTop(local)
		}
		a.analyzeStatement(d.Body)
		a.Symbols.ExitScope()

	case *ast.FunctionDeclaration:
		if d.IsForward || d.Body == nil {
			return
		}
		a.Symbols.EnterScope()
		a.bindParameters(d.Parameters)
		a.Symbols.Define(&Symbol{Name: d.Name, Kind: SymVariable, DataType: types.ResolveDataType(d.ReturnType), TypeName: d.ReturnType})
		for _, local := range d.Locals {
			a.declareTop(local)
		}
		a.analyzeStatement(d.Body)
		a.Symbols.ExitScope()
	}
}

func (a *Analyzer) bindParameters(params []*ast.VariableDeclaration) {
	for _, p := range params {
		dt := types.ResolveDataType(p.TypeText)
		for _, n := range p.Names {
			a.Symbols.Define(&Symbol{Name: n, Kind: SymParameter, DataType: dt, TypeName: p.TypeText})
		}
	}
}

// lookupTypeText returns the verbatim definition text a type name
// stands for, consulting the symbol table so types declared in an
// enclosing unit's interface section are visible too. A name that
// isn't registered anywhere is assumed to already BE inline type text
// (an anonymous record/array declared directly on a var, with no
// separate type name) and is returned as-is; the shape parser it's
// handed to next simply reports no match if that assumption is wrong.
func (a *Analyzer) lookupTypeText(name string) (string, bool) {
	if text, ok := a.typeTexts[lower(name)]; ok {
		return text, true
	}
	if sym, ok := a.Symbols.Lookup(name); ok && sym.Kind == SymTypeDef {
		return sym.TypeDefinition, true
	}
	return name, true
}

func exprType(e ast.Expression) types.DataType {
	if t, ok := e.(ast.Typed); ok {
		return t.GetType()
	}
	return types.Unknown
}

