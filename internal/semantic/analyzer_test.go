package semantic

import (
	"testing"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/token"
	"github.com/daver64/tp2cpp/internal/types"
	"github.com/stretchr/testify/require"
)

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Token: token.New(token.IDENT, name, token.Position{Line: 1, Column: 1}), Value: name}
}

func TestAnalyzeUndefinedIdentifierReportsDiagnostic(t *testing.T) {
	a := NewAnalyzer("x := y;", "t.pas")
	program := &ast.Program{
		Body: &ast.CompoundStatement{Statements: []ast.Statement{
			&ast.AssignmentStatement{Target: ident("x"), Value: ident("y")},
		}},
	}
	a.Symbols.Define(&Symbol{Name: "x", Kind: SymVariable, DataType: types.Integer})

	diags := a.Analyze(program)
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, "undefined identifier")
}

func TestAnalyzeRecordFieldAccessResolvesType(t *testing.T) {
	a := NewAnalyzer("", "t.pas")
	typeDecl := &ast.TypeDeclaration{Name: "TPoint", TypeText: "record x: integer; y: integer; end"}
	varDecl := &ast.VariableDeclaration{Names: []string{"p"}, TypeText: "TPoint"}

	fieldAccess := &ast.FieldAccessExpression{Object: ident("p"), FieldName: "x"}

	program := &ast.Program{
		Declarations: []ast.Declaration{typeDecl, varDecl},
		Body: &ast.CompoundStatement{Statements: []ast.Statement{
			&ast.ExpressionStatement{Expression: fieldAccess},
		}},
	}

	diags := a.Analyze(program)
	require.Empty(t, diags)
	require.Equal(t, types.Integer, fieldAccess.GetType())
}

func TestAnalyzeWithStatementStampsWithVariable(t *testing.T) {
	a := NewAnalyzer("", "t.pas")
	typeDecl := &ast.TypeDeclaration{Name: "TPoint", TypeText: "record x: integer; y: integer; end"}
	varDecl := &ast.VariableDeclaration{Names: []string{"p"}, TypeText: "TPoint"}

	fieldRef := ident("x")

	withStmt := &ast.WithStatement{
		Expressions: []ast.Expression{ident("p")},
		Body: &ast.CompoundStatement{Statements: []ast.Statement{
			&ast.ExpressionStatement{Expression: fieldRef},
		}},
	}

	program := &ast.Program{
		Declarations: []ast.Declaration{typeDecl, varDecl},
		Body:         &ast.CompoundStatement{Statements: []ast.Statement{withStmt}},
	}

	diags := a.Analyze(program)
	require.Empty(t, diags)
	require.Equal(t, "p", fieldRef.WithVariable)
	require.True(t, fieldRef.IsWithFieldAccess())
	require.Equal(t, types.Integer, fieldRef.GetType())
}

func TestAnalyzeOverloadedFunctionCallPicksMatchingArity(t *testing.T) {
	a := NewAnalyzer("", "t.pas")
	fn1 := &ast.FunctionDeclaration{
		Name:       "Combine",
		ReturnType: "integer",
		Parameters: []*ast.VariableDeclaration{{Names: []string{"a"}, TypeText: "integer"}},
		IsOverload: true,
		Body:       &ast.CompoundStatement{},
	}
	fn2 := &ast.FunctionDeclaration{
		Name:       "Combine",
		ReturnType: "string",
		Parameters: []*ast.VariableDeclaration{
			{Names: []string{"a"}, TypeText: "string"},
			{Names: []string{"b"}, TypeText: "string"},
		},
		IsOverload: true,
		Body:       &ast.CompoundStatement{},
	}

	call := &ast.CallExpression{
		Callee:    ident("Combine"),
		Arguments: []ast.Expression{&ast.Literal{Kind: ast.LiteralInt, Text: "1"}},
	}

	program := &ast.Program{
		Declarations: []ast.Declaration{fn1, fn2},
		Body: &ast.CompoundStatement{Statements: []ast.Statement{
			&ast.ExpressionStatement{Expression: call},
		}},
	}

	diags := a.Analyze(program)
	require.Empty(t, diags)
	require.Equal(t, types.Integer, call.GetType())
}

func TestAnalyzeForwardProcedureMatchesImplementation(t *testing.T) {
	a := NewAnalyzer("", "t.pas")
	fwd := &ast.ProcedureDeclaration{
		Name:       "Greet",
		Parameters: []*ast.VariableDeclaration{{Names: []string{"n"}, TypeText: "string"}},
		IsForward:  true,
	}
	impl := &ast.ProcedureDeclaration{
		Name:       "Greet",
		Parameters: []*ast.VariableDeclaration{{Names: []string{"n"}, TypeText: "string"}},
		Body:       &ast.CompoundStatement{},
	}

	program := &ast.Program{
		Declarations: []ast.Declaration{fwd, impl},
		Body:         &ast.CompoundStatement{},
	}

	diags := a.Analyze(program)
	require.Empty(t, diags)
}
