// Package units resolves a Pascal `uses` clause name to a parsed Unit,
// searching a fixed set of candidate directories and extensions and
// caching each unit by name so a program that uses the same unit
// through two different paths only parses it once.
//
// Grounded on _examples/original_source/include/unit_loader.h and
// src/unit_loader.cpp's UnitLoader class: the same default search
// paths, the same `.pas`/`.pp`/`.p` extension list, and the same
// original-then-lowercased name probing order.
package units

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/errors"
	"github.com/daver64/tp2cpp/internal/parser"
)

// extensions is the fixed probe order for a unit source file.
var extensions = []string{".pas", ".pp", ".p"}

// Loader resolves and parses units, caching each by name for the
// lifetime of one compiler invocation.
type Loader struct {
	searchPaths []string
	loaded      map[string]*ast.Unit
}

// New creates a Loader seeded with the default search paths: the
// current directory, `./units`, the parent directory, and
// `../units` — in that order, matching UnitLoader's constructor.
func New() *Loader {
	l := &Loader{loaded: make(map[string]*ast.Unit)}
	l.AddSearchPath(".")
	l.AddSearchPath("./units")
	l.AddSearchPath("..")
	l.AddSearchPath("../units")
	return l
}

// AddSearchPath appends an additional directory to probe, e.g. from a
// `--unit-path` CLI flag.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// IsLoaded reports whether unitName has already been parsed and cached.
func (l *Loader) IsLoaded(unitName string) bool {
	_, ok := l.loaded[key(unitName)]
	return ok
}

// Get returns a previously loaded unit, or nil if it hasn't been
// loaded yet.
func (l *Loader) Get(unitName string) *ast.Unit {
	return l.loaded[key(unitName)]
}

// Clear discards every cached unit.
func (l *Loader) Clear() {
	l.loaded = make(map[string]*ast.Unit)
}

// Load resolves unitName to a source file via the search path,
// parses it, and caches the result. A second Load of the same name
// returns the cached unit without touching the filesystem or the
// parser again. It returns the accumulated lex/parse diagnostics (if
// any) alongside the unit so the caller can fold them into the
// compilation's own diagnostic lists per spec.md §7.
func (l *Loader) Load(unitName string) (*ast.Unit, []*errors.Diagnostic, error) {
	if cached := l.Get(unitName); cached != nil {
		log.Debugf("unit=%s cached=true", unitName)
		return cached, nil, nil
	}
	log.Debugf("unit=%s cached=false", unitName)

	path, err := l.findUnitFile(unitName)
	if err != nil {
		return nil, nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	p := parser.New(string(content), path)
	unit := p.ParseUnit()
	diags := p.Diagnostics()

	l.loaded[key(unitName)] = unit
	return unit, diags, nil
}

// findUnitFile tries each search path, in order, against every
// extension, first with unitName verbatim and then lowercased,
// matching findUnitFile's exact probing order in the original.
func (l *Loader) findUnitFile(unitName string) (string, error) {
	lowerName := strings.ToLower(unitName)
	for _, dir := range l.searchPaths {
		for _, ext := range extensions {
			candidate := filepath.Join(dir, unitName+ext)
			if fileExists(candidate) {
				return candidate, nil
			}
			lowerCandidate := filepath.Join(dir, lowerName+ext)
			if fileExists(lowerCandidate) {
				return lowerCandidate, nil
			}
		}
	}
	return "", &NotFoundError{UnitName: unitName}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func key(unitName string) string { return strings.ToLower(unitName) }

// NotFoundError reports that no search path/extension combination
// produced an existing file for the requested unit name.
type NotFoundError struct {
	UnitName string
}

func (e *NotFoundError) Error() string {
	return "unit not found: " + e.UnitName
}
