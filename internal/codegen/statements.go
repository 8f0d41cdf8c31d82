package codegen

import (
	"strconv"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/types"
)

// emitCompoundInline emits stmt's statements directly into the
// enclosing block, without an extra pair of braces — used for program
// and unit bodies, where `begin ... end` already maps onto main()'s
// own braces.
func (g *Generator) emitCompoundInline(stmt *ast.CompoundStatement) {
	if stmt == nil {
		return
	}
	for _, s := range stmt.Statements {
		g.emitStatement(s)
	}
}

// emitBlock emits stmt as a brace-delimited block regardless of its
// concrete kind, so `if`/`while`/`for` bodies are always safe to nest
// even when the Pascal source used a single non-compound statement.
func (g *Generator) emitBlock(stmt ast.Statement) {
	g.emitLine("{")
	g.increaseIndent()
	if compound, ok := stmt.(*ast.CompoundStatement); ok {
		g.emitCompoundInline(compound)
	} else if stmt != nil {
		g.emitStatement(stmt)
	}
	g.decreaseIndent()
	g.emitLine("}")
}

func (g *Generator) emitStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.ExpressionStatement:
		g.emitLine(g.emitExpr(n.Expression) + ";")
	case *ast.CompoundStatement:
		g.emitBlock(n)
	case *ast.AssignmentStatement:
		g.emitAssignment(n)
	case *ast.IfStatement:
		g.emitIf(n)
	case *ast.WhileStatement:
		g.emitWhile(n)
	case *ast.ForStatement:
		g.emitFor(n)
	case *ast.RepeatStatement:
		g.emitRepeat(n)
	case *ast.CaseStatement:
		g.emitCase(n)
	case *ast.WithStatement:
		g.emitWith(n)
	case *ast.LabelStatement:
		g.emitLabel(n)
	case *ast.GotoStatement:
		g.emitLine("goto label_" + sanitizeIdent(n.Label) + ";")
	case *ast.BreakStatement:
		g.emitLine("break;")
	case *ast.ContinueStatement:
		g.emitLine("continue;")
	default:
		g.emitLine("/* UNKNOWN_OP */")
	}
}

// emitAssignment renders `target := value`. A char value assigned into
// a string-typed target is promoted through std::string, mirroring
// wrapStringConcat's reasoning; an assignment whose target is the
// enclosing function's own name is rewritten to the function's result
// slot.
func (g *Generator) emitAssignment(a *ast.AssignmentStatement) {
	target := g.emitExpr(a.Target)
	value := g.emitExpr(a.Value)
	targetDT, _ := typeNameOf(a.Target)
	valueDT, _ := typeNameOf(a.Value)
	if targetDT == types.String && valueDT == types.Char {
		value = "std::string(1, " + value + ")"
	}
	g.emitLine(target + " = " + value + ";")
}

func (g *Generator) emitIf(s *ast.IfStatement) {
	g.emitLine("if (" + g.emitExpr(s.Condition) + ") {")
	g.increaseIndent()
	if compound, ok := s.ThenBranch.(*ast.CompoundStatement); ok {
		g.emitCompoundInline(compound)
	} else if s.ThenBranch != nil {
		g.emitStatement(s.ThenBranch)
	}
	g.decreaseIndent()
	if s.ElseBranch != nil {
		g.emitLine("} else {")
		g.increaseIndent()
		if compound, ok := s.ElseBranch.(*ast.CompoundStatement); ok {
			g.emitCompoundInline(compound)
		} else {
			g.emitStatement(s.ElseBranch)
		}
		g.decreaseIndent()
		g.emitLine("}")
	} else {
		g.emitLine("}")
	}
}

func (g *Generator) emitWhile(s *ast.WhileStatement) {
	g.emitLine("while (" + g.emitExpr(s.Condition) + ") {")
	g.increaseIndent()
	if compound, ok := s.Body.(*ast.CompoundStatement); ok {
		g.emitCompoundInline(compound)
	} else if s.Body != nil {
		g.emitStatement(s.Body)
	}
	g.decreaseIndent()
	g.emitLine("}")
}

// emitFor renders `for v := start to end do body` as an ascending
// `<=`/`++` C++ for-loop, and `for v := start downto end do body` as a
// descending `>=`/`--` loop — the direction is read directly off
// IsDownto, never inferred from the bound values (spec.md §8 testable
// property 5, "for-loop direction").
func (g *Generator) emitFor(s *ast.ForStatement) {
	v := sanitizeIdent(s.Variable)
	start := g.emitExpr(s.Start)
	end := g.emitExpr(s.End)
	cmp, step := "<=", v+"++"
	if s.IsDownto {
		cmp, step = ">=", v+"--"
	}
	g.emitLine("for (" + v + " = " + start + "; " + v + " " + cmp + " " + end + "; " + step + ") {")
	g.increaseIndent()
	if compound, ok := s.Body.(*ast.CompoundStatement); ok {
		g.emitCompoundInline(compound)
	} else if s.Body != nil {
		g.emitStatement(s.Body)
	}
	g.decreaseIndent()
	g.emitLine("}")
}

// emitRepeat renders `repeat stmts until cond` as a C++ do/while loop
// with the condition negated, since `until` terminates on true where
// `while` continues on true.
func (g *Generator) emitRepeat(s *ast.RepeatStatement) {
	g.emitLine("do {")
	g.increaseIndent()
	for _, stmt := range s.Statements {
		g.emitStatement(stmt)
	}
	g.decreaseIndent()
	g.emitLine("} while (!(" + g.emitExpr(s.Condition) + "));")
}

// emitCase renders a Pascal case statement as a C++ switch, expanding
// any RangeExpression branch value into one `case` label per integer
// in the range (spec.md §4.5 "case label expansion"), with a trailing
// `break;` per branch and the else branch (if any) as `default:`.
func (g *Generator) emitCase(s *ast.CaseStatement) {
	selector := g.emitExpr(s.Selector)
	g.emitLine("switch (" + selector + ") {")
	g.increaseIndent()
	for _, branch := range s.Branches {
		for _, v := range branch.Values {
			for _, label := range caseLabels(v) {
				g.emitLine("case " + label + ":")
			}
		}
		g.increaseIndent()
		if compound, ok := branch.Statement.(*ast.CompoundStatement); ok {
			g.emitCompoundInline(compound)
		} else if branch.Statement != nil {
			g.emitStatement(branch.Statement)
		}
		g.emitLine("break;")
		g.decreaseIndent()
	}
	if s.ElseBranch != nil {
		g.emitLine("default:")
		g.increaseIndent()
		if compound, ok := s.ElseBranch.(*ast.CompoundStatement); ok {
			g.emitCompoundInline(compound)
		} else {
			g.emitStatement(s.ElseBranch)
		}
		g.emitLine("break;")
		g.decreaseIndent()
	}
	g.decreaseIndent()
	g.emitLine("}")
}

// caseLabels expands one case-branch value into its literal C++ case
// labels: a plain value is a single label, a RangeExpression of
// integer literals expands to one label per integer. A range whose
// bounds aren't literal integers falls back to its low bound alone,
// since C++ `case` labels must be compile-time constants and codegen
// cannot evaluate an arbitrary expression at emission time.
func caseLabels(v ast.Expression) []string {
	rng, ok := v.(*ast.RangeExpression)
	if !ok {
		return []string{labelText(v)}
	}
	lowLit, lok := rng.Low.(*ast.Literal)
	highLit, hok := rng.High.(*ast.Literal)
	if lok && hok && lowLit.Kind == ast.LiteralInt && highLit.Kind == ast.LiteralInt {
		lo, errLo := strconv.Atoi(lowLit.Text)
		hi, errHi := strconv.Atoi(highLit.Text)
		if errLo == nil && errHi == nil {
			var labels []string
			for i := lo; i <= hi; i++ {
				labels = append(labels, strconv.Itoa(i))
			}
			return labels
		}
	}
	return []string{labelText(rng.Low)}
}

func labelText(v ast.Expression) string {
	switch n := v.(type) {
	case *ast.Literal:
		switch n.Kind {
		case ast.LiteralChar:
			return emitCharLiteral(n.Text)
		default:
			return n.Text
		}
	case *ast.Identifier:
		return sanitizeIdent(n.Value)
	default:
		return "/* UNKNOWN_OP */"
	}
}

// emitWith emits only Body: the semantic analyser already resolves
// every field access inside a with-block by stamping the enclosing
// with-variable directly onto each Identifier (ast.Identifier.WithVariable,
// see internal/semantic/expressions.go's resolveIdentifier), so codegen
// never needs the original generator's `auto& __with_N = expr;`
// reference-binding block — every name inside Body already carries
// enough information to render as `withVariable.field` on its own.
func (g *Generator) emitWith(s *ast.WithStatement) {
	if compound, ok := s.Body.(*ast.CompoundStatement); ok {
		g.emitCompoundInline(compound)
		return
	}
	g.emitStatement(s.Body)
}

func (g *Generator) emitLabel(s *ast.LabelStatement) {
	g.decreaseIndent()
	g.emitLine("label_" + sanitizeIdent(s.Label) + ":")
	g.increaseIndent()
	if s.Statement != nil {
		g.emitStatement(s.Statement)
	}
}
