package units

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoaderFindsUnitInUnitsSubdirectory(t *testing.T) {
	dir := t.TempDir()
	unitsDir := filepath.Join(dir, "units")
	require.NoError(t, os.Mkdir(unitsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(unitsDir, "mathutils.pas"),
		[]byte("unit MathUtils; interface function Square(x: integer): integer; implementation function Square(x: integer): integer; begin end; end."),
		0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	l := New()
	unit, diags, err := l.Load("MathUtils")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.NotNil(t, unit)
	require.Equal(t, "MathUtils", unit.Name)
}

func TestLoaderCachesAfterFirstLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greet.pas"),
		[]byte("unit Greet; interface implementation end."), 0o644))

	l := New()
	l.AddSearchPath(dir)

	require.False(t, l.IsLoaded("Greet"))
	first, _, err := l.Load("Greet")
	require.NoError(t, err)
	require.True(t, l.IsLoaded("Greet"))

	second, _, err := l.Load("Greet")
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestLoaderTriesLowercasedUnitName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "strutils.pas"),
		[]byte("unit StrUtils; interface implementation end."), 0o644))

	l := New()
	l.AddSearchPath(dir)

	unit, _, err := l.Load("StrUtils")
	require.NoError(t, err)
	require.NotNil(t, unit)
}

func TestLoaderReturnsNotFoundErrorWhenNoPathMatches(t *testing.T) {
	l := New()
	l.AddSearchPath(t.TempDir())

	_, _, err := l.Load("DoesNotExist")
	require.Error(t, err)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestLoaderClearDropsCache(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greet.pas"),
		[]byte("unit Greet; interface implementation end."), 0o644))

	l := New()
	l.AddSearchPath(dir)
	_, _, err := l.Load("Greet")
	require.NoError(t, err)
	require.True(t, l.IsLoaded("Greet"))

	l.Clear()
	require.False(t, l.IsLoaded("Greet"))
}
