package parser

import (
	"testing"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/token"
	"github.com/stretchr/testify/require"
)

func TestParseHelloWorldProgram(t *testing.T) {
	src := `program Hello;
begin
  writeln('hello, world');
end.`
	p := New(src, "hello.pas")
	prog := p.ParseProgram()
	require.Empty(t, p.Diagnostics())
	require.Equal(t, "Hello", prog.Name)
	require.Len(t, prog.Body.Statements, 1)

	exprStmt, ok := prog.Body.Statements[0].(*ast.ExpressionStatement)
	require.True(t, ok)
	call, ok := exprStmt.Expression.(*ast.CallExpression)
	require.True(t, ok)
	callee, ok := call.Callee.(*ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "writeln", callee.Value)
	require.Len(t, call.Arguments, 1)
}

func TestParseRecordWithVariantPart(t *testing.T) {
	src := `program Shapes;
type
  TShapeKind = (skCircle, skSquare);
  TShape = record
    name: string;
    case kind: TShapeKind of
      skCircle: (radius: real);
      skSquare: (side: real);
  end;
begin
end.`
	p := New(src, "shapes.pas")
	prog := p.ParseProgram()
	require.Empty(t, p.Diagnostics())
	require.Len(t, prog.Declarations, 2)

	shapeDecl, ok := prog.Declarations[1].(*ast.TypeDeclaration)
	require.True(t, ok)
	require.Equal(t, "TShape", shapeDecl.Name)
	require.NotNil(t, shapeDecl.RecordDef)
	require.Len(t, shapeDecl.RecordDef.Fields, 1)
	require.Equal(t, "name", shapeDecl.RecordDef.Fields[0].Name)

	variant := shapeDecl.RecordDef.Variant
	require.NotNil(t, variant)
	require.Equal(t, "kind", variant.SelectorName)
	require.Equal(t, "TShapeKind", variant.SelectorType)
	require.Len(t, variant.Cases, 2)
	require.Equal(t, []string{"skCircle"}, variant.Cases[0].Values)
	require.Equal(t, "radius", variant.Cases[0].Fields[0].Name)
	require.Equal(t, []string{"skSquare"}, variant.Cases[1].Values)
}

func TestParseOverloadedAndForwardProcedureHeaders(t *testing.T) {
	src := `program P;
procedure Greet(n: string); forward;

function Combine(a: integer): integer; overload;
begin
  Combine := a;
end;

function Combine(a, b: integer): integer; overload;
begin
  Combine := a + b;
end;

procedure Greet(n: string);
begin
end;

begin
end.`
	p := New(src, "p.pas")
	prog := p.ParseProgram()
	require.Empty(t, p.Diagnostics())
	require.Len(t, prog.Declarations, 4)

	fwd, ok := prog.Declarations[0].(*ast.ProcedureDeclaration)
	require.True(t, ok)
	require.True(t, fwd.IsForward)
	require.Nil(t, fwd.Body)

	fn1, ok := prog.Declarations[1].(*ast.FunctionDeclaration)
	require.True(t, ok)
	require.True(t, fn1.IsOverload)
	require.Len(t, fn1.Parameters, 1)

	fn2, ok := prog.Declarations[2].(*ast.FunctionDeclaration)
	require.True(t, ok)
	require.True(t, fn2.IsOverload)
	require.Len(t, fn2.Parameters[0].Names, 2)

	impl, ok := prog.Declarations[3].(*ast.ProcedureDeclaration)
	require.True(t, ok)
	require.False(t, impl.IsForward)
	require.NotNil(t, impl.Body)
}

func TestParseForCaseWithGotoStatements(t *testing.T) {
	src := `program Control;
var
  i: integer;
  p: TPoint;
label
  1;
begin
  for i := 1 to 10 do
    writeln(i);
  for i := 10 downto 1 do
    writeln(i);
  case i of
    1, 2: writeln('low');
    3..5: writeln('mid');
  else
    writeln('other');
  end;
  with p do
    x := 1;
  goto 1;
  1: writeln('done');
end.`
	p := New(src, "control.pas")
	prog := p.ParseProgram()
	require.Empty(t, p.Diagnostics())

	stmts := prog.Body.Statements
	require.GreaterOrEqual(t, len(stmts), 6)

	forStmt, ok := stmts[0].(*ast.ForStatement)
	require.True(t, ok)
	require.False(t, forStmt.IsDownto)

	forDown, ok := stmts[1].(*ast.ForStatement)
	require.True(t, ok)
	require.True(t, forDown.IsDownto)

	caseStmt, ok := stmts[2].(*ast.CaseStatement)
	require.True(t, ok)
	require.Len(t, caseStmt.Branches, 2)
	require.Len(t, caseStmt.Branches[0].Values, 2)
	require.NotNil(t, caseStmt.ElseBranch)

	rangeVal, ok := caseStmt.Branches[1].Values[0].(*ast.RangeExpression)
	require.True(t, ok)
	_ = rangeVal

	withStmt, ok := stmts[3].(*ast.WithStatement)
	require.True(t, ok)
	require.Len(t, withStmt.Expressions, 1)

	gotoStmt, ok := stmts[4].(*ast.GotoStatement)
	require.True(t, ok)
	require.Equal(t, "1", gotoStmt.Label)

	labelStmt, ok := stmts[5].(*ast.LabelStatement)
	require.True(t, ok)
	require.Equal(t, "1", labelStmt.Label)
}

func TestParseExpressionOperatorPrecedence(t *testing.T) {
	src := `program E;
var
  r: boolean;
begin
  r := 1 + 2 * 3 = 7 and not false;
end.`
	p := New(src, "e.pas")
	prog := p.ParseProgram()
	require.Empty(t, p.Diagnostics())

	assign, ok := prog.Body.Statements[0].(*ast.AssignmentStatement)
	require.True(t, ok)

	// Top level is the `and`.
	andExpr, ok := assign.Value.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, token.AND, andExpr.Operator)

	// Left of `and` is the equality comparison.
	eq, ok := andExpr.Left.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, token.EQUAL, eq.Operator)

	// Left of `=` is `1 + 2 * 3`, so the top arithmetic op must be `+`.
	add, ok := eq.Left.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, token.PLUS, add.Operator)

	// Its right side is `2 * 3`, confirming `*` binds tighter than `+`.
	mul, ok := add.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	require.Equal(t, token.MULTIPLY, mul.Operator)

	// Right of `and` is `not false`.
	notExpr, ok := andExpr.Right.(*ast.UnaryExpression)
	require.True(t, ok)
	require.Equal(t, token.NOT, notExpr.Operator)
}

func TestParseErrorRecoverySynchronizesOnMalformedStatement(t *testing.T) {
	src := `program Bad;
begin
  x := ;
  writeln('still parsed');
end.`
	p := New(src, "bad.pas")
	prog := p.ParseProgram()

	require.NotEmpty(t, p.Diagnostics())
	require.Len(t, prog.Body.Statements, 2)

	exprStmt, ok := prog.Body.Statements[1].(*ast.ExpressionStatement)
	require.True(t, ok)
	call, ok := exprStmt.Expression.(*ast.CallExpression)
	require.True(t, ok)
	callee, ok := call.Callee.(*ast.Identifier)
	require.True(t, ok)
	require.Equal(t, "writeln", callee.Value)
}

func TestParseUnitInterfaceAndImplementation(t *testing.T) {
	src := `unit Geometry;

interface

function Square(x: integer): integer;

implementation

function Square(x: integer): integer;
begin
  Square := x * x;
end;

end.`
	p := New(src, "geometry.pas")
	unit := p.ParseUnit()
	require.Empty(t, p.Diagnostics())
	require.Equal(t, "Geometry", unit.Name)
	require.Len(t, unit.InterfaceDecls, 1)
	require.Len(t, unit.ImplementationDecls, 1)

	header, ok := unit.InterfaceDecls[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	require.True(t, header.IsForward)
	require.Nil(t, header.Body)

	impl, ok := unit.ImplementationDecls[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	require.NotNil(t, impl.Body)
}
