package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileHelloWorldProducesMainEntry(t *testing.T) {
	source := `program Hello;
begin
  writeln('Hello, world!');
end.`

	result := New().Compile(source, "hello.pas")
	require.True(t, result.Success())
	require.Empty(t, result.Diagnostics())
	require.Contains(t, result.Output, "int main(int argc, char* argv[])")
	require.Contains(t, result.Output, "Hello, world!")
}

func TestCompileDoesNotEmitOutputOnParseError(t *testing.T) {
	source := `program Broken;
begin
  writeln(
end.`

	result := New().Compile(source, "broken.pas")
	require.False(t, result.Success())
	require.Empty(t, result.Output)
	require.NotEmpty(t, result.Diagnostics())
}

func TestCompileDoesNotEmitOutputOnSemanticError(t *testing.T) {
	source := `program Broken;
begin
  x := y;
end.`

	result := New().Compile(source, "broken.pas")
	require.False(t, result.Success())
	require.Empty(t, result.Output)
	require.NotEmpty(t, result.SemaErrors)
}

func TestCompileForLoopDirectionMatchesSourceKeyword(t *testing.T) {
	source := `program Loops;
var
  i: integer;
begin
  for i := 1 to 10 do
    writeln(i);
  for i := 10 downto 1 do
    writeln(i);
end.`

	result := New().Compile(source, "loops.pas")
	require.True(t, result.Success())
	require.True(t, strings.Contains(result.Output, "i <= 10"))
	require.True(t, strings.Contains(result.Output, "i >= 1"))
}
