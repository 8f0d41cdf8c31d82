package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daver64/tp2cpp/internal/compiler"
)

// compileOK runs source through the full pipeline and fails the test
// with every diagnostic if compilation does not succeed, since a failed
// compilation here means the test fixture itself is wrong, not the
// behavior under test.
func compileOK(t *testing.T, source string) string {
	t.Helper()
	result := compiler.New().Compile(source, "scenario.pas")
	if !result.Success() {
		var msgs []string
		for _, d := range result.Diagnostics() {
			msgs = append(msgs, d.Message)
		}
		t.Fatalf("expected successful compilation, got diagnostics: %s", strings.Join(msgs, "; "))
	}
	return result.Output
}

func TestScenarioHelloWorld(t *testing.T) {
	out := compileOK(t, `program Hello;
begin
  writeln('Hello, world!');
end.`)
	require.Contains(t, out, "Hello, world!")
	require.Contains(t, out, "int main(int argc, char* argv[])")
}

func TestScenarioSummation(t *testing.T) {
	out := compileOK(t, `program Summation;
var
  i, total: integer;
begin
  total := 0;
  for i := 1 to 10 do
    total := total + i;
  writeln(total);
end.`)
	require.Contains(t, out, "for (")
	require.Contains(t, out, "i <= 10")
	require.Contains(t, out, "total = (total + i);")
}

func TestScenarioStringConcat(t *testing.T) {
	out := compileOK(t, `program Concat;
var
  first, last, full: string;
begin
  first := 'Ada';
  last := 'Lovelace';
  full := first + ' ' + last;
  writeln(full);
end.`)
	require.Contains(t, out, "std::string(1, ' ')")
	require.Contains(t, out, "+ last)")
}

func TestScenarioRecordWith(t *testing.T) {
	out := compileOK(t, `program RecordWithDemo;
type
  TPoint = record
    x: integer;
    y: integer;
  end;
var
  p: TPoint;
begin
  with p do
  begin
    x := 1;
    y := 2;
  end;
  writeln(p.x);
end.`)
	require.Contains(t, out, "struct TPoint {")
	require.Contains(t, out, "p.x = 1")
	require.Contains(t, out, "p.y = 2")
}

func TestScenarioOverload(t *testing.T) {
	out := compileOK(t, `program OverloadDemo;
function Combine(a: integer): integer; overload;
begin
  Combine := a;
end;

function Combine(a, b: integer): integer; overload;
begin
  Combine := a + b;
end;

begin
  writeln(Combine(1));
  writeln(Combine(1, 2));
end.`)
	require.Contains(t, out, "Combine_int(")
	require.Contains(t, out, "Combine_int_int(")
}

func TestScenarioEnumSet(t *testing.T) {
	out := compileOK(t, `program EnumSetDemo;
type
  TColor = (Red, Green, Blue);
var
  c: TColor;
  allowed: set of TColor;
begin
  c := Green;
  allowed := [Red, Blue];
  if c in allowed then
    writeln('allowed')
  else
    writeln('blocked');
end.`)
	require.Contains(t, out, "enum TColor { Red, Green, Blue };")
	require.Contains(t, out, ".count(")
}

func TestScenarioArrayIndexMapping(t *testing.T) {
	out := compileOK(t, `program ArrayIndex;
var
  grid: array[0..2,0..2] of integer;
begin
  grid[1,1] := 5;
  writeln(grid[1,1]);
end.`)
	require.Contains(t, out, "grid[")
	require.Contains(t, out, "* 3")
}
