package semantic

import (
	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/types"
)

func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		a.analyzeExpr(s.Expression)

	case *ast.CompoundStatement:
		for _, inner := range s.Statements {
			a.analyzeStatement(inner)
		}

	case *ast.AssignmentStatement:
		targetType := a.analyzeExpr(s.Target)
		valueType := a.analyzeExpr(s.Value)
		if targetType != types.Unknown && valueType != types.Unknown &&
			!assignable(targetType, valueType) {
			a.errorf(s.Pos(), "cannot assign %s to %s", valueType, targetType)
		}

	case *ast.IfStatement:
		a.analyzeExpr(s.Condition)
		a.analyzeStatement(s.ThenBranch)
		if s.ElseBranch != nil {
			a.analyzeStatement(s.ElseBranch)
		}

	case *ast.WhileStatement:
		a.analyzeExpr(s.Condition)
		a.analyzeStatement(s.Body)

	case *ast.ForStatement:
		if _, ok := a.Symbols.Lookup(s.Variable); !ok {
			a.errorf(s.Pos(), "undefined loop variable '%s'", s.Variable)
		}
		a.analyzeExpr(s.Start)
		a.analyzeExpr(s.End)
		a.analyzeStatement(s.Body)

	case *ast.RepeatStatement:
		for _, inner := range s.Statements {
			a.analyzeStatement(inner)
		}
		a.analyzeExpr(s.Condition)

	case *ast.CaseStatement:
		a.analyzeExpr(s.Selector)
		for _, branch := range s.Branches {
			for _, v := range branch.Values {
				a.analyzeExpr(v)
			}
			a.analyzeStatement(branch.Statement)
		}
		if s.ElseBranch != nil {
			a.analyzeStatement(s.ElseBranch)
		}

	case *ast.WithStatement:
		a.analyzeWith(s)

	case *ast.LabelStatement:
		a.analyzeStatement(s.Statement)

	case *ast.GotoStatement, *ast.BreakStatement, *ast.ContinueStatement:
		// no expressions to resolve

	default:
	}
}

func (a *Analyzer) analyzeWith(s *ast.WithStatement) {
	pushed := 0
	for _, expr := range s.Expressions {
		dt := a.analyzeExpr(expr)
		typeName := ""
		if t, ok := expr.(ast.Typed); ok {
			typeName = t.GetTypeName()
		}

		variable, ok := withVariableName(expr)
		if !ok {
			a.errorf(expr.Pos(), "with-expression must be a variable or field reference")
			continue
		}
		if dt != types.Custom {
			a.errorf(expr.Pos(), "with-expression must refer to a record")
			continue
		}
		a.with.push(withFrame{VariableName: variable, DataType: dt, TypeName: typeName})
		pushed++
	}

	a.analyzeStatement(s.Body)

	for i := 0; i < pushed; i++ {
		a.with.pop()
	}
}

// withVariableName renders a with-expression as the text the generator
// will use as its reference-binding source: a bare identifier, or a
// dotted field chain.
func withVariableName(expr ast.Expression) (string, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Value, true
	case *ast.FieldAccessExpression:
		base, ok := withVariableName(e.Object)
		if !ok {
			return "", false
		}
		return base + "." + e.FieldName, true
	default:
		return "", false
	}
}

func assignable(target, value types.DataType) bool {
	if target == value {
		return true
	}
	if target == types.Real && value == types.Integer {
		return true
	}
	if target == types.String && value == types.Char {
		return true
	}
	return false
}
