package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCompileWritesCppFileNextToSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "hello.pas")
	require.NoError(t, os.WriteFile(src, []byte(`program Hello;
begin
  writeln('Hello, world!');
end.`), 0o644))

	outputFile = ""
	defer func() { outputFile = "" }()

	require.NoError(t, runCompile(nil, []string{src}))

	out, err := os.ReadFile(filepath.Join(dir, "hello.cpp"))
	require.NoError(t, err)
	require.Contains(t, string(out), "int main(int argc, char* argv[])")
}

func TestRunCompileFailsOnSemanticError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.pas")
	require.NoError(t, os.WriteFile(src, []byte(`program Broken;
begin
  x := y;
end.`), 0o644))

	outputFile = ""
	defer func() { outputFile = "" }()

	err := runCompile(nil, []string{src})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "broken.cpp"))
	require.True(t, os.IsNotExist(statErr))
}
