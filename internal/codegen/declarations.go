package codegen

import (
	"strings"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/types"
)

// emitForwardPrototypes emits one C++ prototype per `forward`-declared
// routine, so later declaration order in the Pascal source (bodies
// defined after first use, per a forward header) still compiles as
// straight-line C++ (spec.md §6 "forward prototypes for forward
// routines").
func (g *Generator) emitForwardPrototypes(decls []ast.Declaration) {
	any := false
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.ProcedureDeclaration:
			if n.IsForward {
				g.emitLine(g.routineHeader(n.Name, "void", n.Parameters) + ";")
				any = true
			}
		case *ast.FunctionDeclaration:
			if n.IsForward {
				g.emitLine(g.routineHeader(n.Name, g.mapType(n.ReturnType), n.Parameters) + ";")
				any = true
			}
		}
	}
	if any {
		g.blank()
	}
}

// emitNonRoutineDeclarations emits const/type/var declarations in
// source order, the declaration-order slots of spec.md §4.5's six-step
// emission, ahead of any routine body.
func (g *Generator) emitNonRoutineDeclarations(decls []ast.Declaration) {
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.ConstantDeclaration:
			g.emitConstant(n)
		case *ast.TypeDeclaration:
			g.emitTypeDeclaration(n)
		case *ast.VariableDeclaration:
			g.emitGlobalVariable(n)
		case *ast.LabelDeclaration:
			// Pascal labels need no forward declaration in C++; the goto
			// target itself is emitted inline by emitLabel.
		}
	}
	g.blank()
}

func (g *Generator) emitConstant(c *ast.ConstantDeclaration) {
	g.emitLine("const auto " + sanitizeIdent(c.Name) + " = " + g.emitExpr(c.Value) + ";")
}

func (g *Generator) emitGlobalVariable(v *ast.VariableDeclaration) {
	cppType := g.mapType(v.TypeText)
	for _, name := range v.Names {
		decl := cppType + " " + sanitizeIdent(name)
		if v.Init != nil {
			decl += " = " + g.emitExpr(v.Init)
		}
		g.emitLine(decl + ";")
	}
}

func (g *Generator) emitTypeDeclaration(t *ast.TypeDeclaration) {
	name := sanitizeIdent(t.Name)
	if t.RecordDef != nil {
		g.emitRecordStruct(name, t.RecordDef)
		return
	}
	text := strings.TrimSpace(t.TypeText)
	if enum, ok := types.ParseEnumType(text); ok {
		g.emitLine("enum " + name + " { " + strings.Join(sanitizeIdents(enum.Members), ", ") + " };")
		return
	}
	g.emitLine("using " + name + " = " + g.mapTypeText(t.Name, text) + ";")
}

func sanitizeIdents(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = sanitizeIdent(n)
	}
	return out
}

// emitRecordStruct emits a record's fixed fields as plain struct
// members. Per ast.VariantCase's own doc comment, a variant part's
// fields are flattened into ordinary struct members too rather than a
// union: this engine relies on programmer discipline to only read the
// field matching the live selector value, the same trust model the
// Pascal source itself already depends on. A field name reused across
// more than one variant case (or shared with a fixed field) is only
// ever declared once.
func (g *Generator) emitRecordStruct(name string, def *ast.RecordTypeDefinition) {
	g.emitLine("struct " + name + " {")
	g.increaseIndent()
	declared := make(map[string]bool)
	for _, f := range def.Fields {
		g.emitLine(g.mapType(f.Type) + " " + sanitizeIdent(f.Name) + ";")
		declared[strings.ToLower(f.Name)] = true
	}
	if def.Variant != nil {
		if def.Variant.SelectorName != "" && !declared[strings.ToLower(def.Variant.SelectorName)] {
			g.emitLine(g.mapType(def.Variant.SelectorType) + " " + sanitizeIdent(def.Variant.SelectorName) + ";")
			declared[strings.ToLower(def.Variant.SelectorName)] = true
		}
		for _, c := range def.Variant.Cases {
			for _, f := range c.Fields {
				if declared[strings.ToLower(f.Name)] {
					continue
				}
				g.emitLine(g.mapType(f.Type) + " " + sanitizeIdent(f.Name) + ";")
				declared[strings.ToLower(f.Name)] = true
			}
		}
	}
	g.decreaseIndent()
	g.emitLine("};")
}

// routineHeader renders a C++ function header (no trailing `;` or
// body) for a routine with the given name, return type spelling, and
// Pascal parameter list, mangling the name when more than one overload
// of it is visible in scope.
func (g *Generator) routineHeader(name, cppReturnType string, params []*ast.VariableDeclaration) string {
	return cppReturnType + " " + g.mangledRoutineName(name, params) + "(" + g.emitParamList(params) + ")"
}

func (g *Generator) mangledRoutineName(name string, params []*ast.VariableDeclaration) string {
	candidates := g.Symbols.LookupFunction(name)
	if !needsMangling(candidates) {
		return sanitizeIdent(name)
	}
	var paramTypeNames []string
	for _, p := range params {
		for range p.Names {
			paramTypeNames = append(paramTypeNames, p.TypeText)
		}
	}
	return MangleFunctionName(name, paramTypeNames)
}

// emitParamList flattens each VariableDeclaration's comma-joined Names
// into individual C++ parameters, emitting `var`/`const` parameters by
// reference since Pascal's by-reference and by-const-reference passing
// modes have no by-value C++ equivalent.
func (g *Generator) emitParamList(params []*ast.VariableDeclaration) string {
	var parts []string
	for _, p := range params {
		cppType := g.mapType(p.TypeText)
		switch p.Mode {
		case ast.ModeVar:
			cppType += "&"
		case ast.ModeConst:
			cppType = "const " + cppType + "&"
		}
		for _, name := range p.Names {
			parts = append(parts, cppType+" "+sanitizeIdent(name))
		}
	}
	return strings.Join(parts, ", ")
}

// emitRoutineBodies emits every procedure/function with a body (i.e.
// not a bare `forward` header) in source order. Nested procedures are
// rejected during semantic analysis per spec.md Non-goals, so Locals
// here only ever contains const/type/var/label declarations, never a
// nested ProcedureDeclaration/FunctionDeclaration.
func (g *Generator) emitRoutineBodies(decls []ast.Declaration) {
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.ProcedureDeclaration:
			if n.Body != nil {
				g.emitProcedureBody(n)
			}
		case *ast.FunctionDeclaration:
			if n.Body != nil {
				g.emitFunctionBody(n)
			}
		}
	}
}

func (g *Generator) emitProcedureBody(n *ast.ProcedureDeclaration) {
	prevFn := g.currentFunction
	g.currentFunction = ""
	g.Symbols.EnterScope()

	g.emitLine(g.routineHeader(n.Name, "void", n.Parameters) + " {")
	g.increaseIndent()
	g.emitLocals(n.Locals)
	g.emitCompoundInline(n.Body)
	g.decreaseIndent()
	g.emitLine("}")
	g.blank()

	g.Symbols.ExitScope()
	g.currentFunction = prevFn
}

// emitFunctionBody wraps the body in a named result local
// (`<name>_result`), since Pascal's implicit-return-by-assigning-the-
// function-name has no direct C++ counterpart; every bare assignment
// to the function's own name inside Body is rewritten by emitIdentifier
// to target this local, and a final `return` sends it back.
func (g *Generator) emitFunctionBody(n *ast.FunctionDeclaration) {
	prevFn := g.currentFunction
	g.currentFunction = n.Name
	g.Symbols.EnterScope()

	cppReturn := g.mapType(n.ReturnType)
	g.emitLine(g.routineHeader(n.Name, cppReturn, n.Parameters) + " {")
	g.increaseIndent()
	g.emitLine(cppReturn + " " + n.Name + "_result{};")
	g.emitLocals(n.Locals)
	g.emitCompoundInline(n.Body)
	g.emitLine("return " + n.Name + "_result;")
	g.decreaseIndent()
	g.emitLine("}")
	g.blank()

	g.Symbols.ExitScope()
	g.currentFunction = prevFn
}

// emitLocals emits a routine's local const/type/var declarations
// ahead of its body statements. Local type declarations (records,
// enums) are rare but legal, so the same dispatch as
// emitNonRoutineDeclarations' type case applies here too.
func (g *Generator) emitLocals(locals []ast.Declaration) {
	for _, d := range locals {
		switch n := d.(type) {
		case *ast.ConstantDeclaration:
			g.emitConstant(n)
		case *ast.TypeDeclaration:
			g.emitTypeDeclaration(n)
		case *ast.VariableDeclaration:
			g.emitGlobalVariable(n)
		case *ast.LabelDeclaration:
			// no-op, see emitNonRoutineDeclarations
		}
	}
}
