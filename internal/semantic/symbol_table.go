// Package semantic resolves names, checks types, and tracks with-scopes
// over a parsed program.
package semantic

import (
	"strings"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/types"
)

// SymbolKind distinguishes what a Symbol denotes.
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymProcedure
	SymFunction
	SymParameter
	SymConstant
	SymTypeDef
)

func (k SymbolKind) String() string {
	switch k {
	case SymVariable:
		return "variable"
	case SymProcedure:
		return "procedure"
	case SymFunction:
		return "function"
	case SymParameter:
		return "parameter"
	case SymConstant:
		return "constant"
	case SymTypeDef:
		return "type"
	default:
		return "symbol"
	}
}

// Parameter is one entry of a routine's signature, used for overload
// matching.
type Parameter struct {
	Name     string
	DataType types.DataType
	TypeName string // verbatim name for Custom-typed parameters
	Mode     ast.ParameterMode
}

// Symbol is one name bound in a scope: a variable, routine, constant, or
// type definition.
//
// TypeDefinition carries the verbatim Pascal type text for TypeDef
// symbols; Variable and Parameter symbols carry their declared type
// text in TypeName instead. That stored text is the cross-phase carrier the
// semantic analyser stamps on declaration and the generator re-parses
// on demand via internal/types's per-shape helpers, rather than
// duplicating shape parsing in two places.
type Symbol struct {
	Name           string
	Kind           SymbolKind
	DataType       types.DataType
	TypeDefinition string
	TypeName       string
	ScopeLevel     int

	Parameters []Parameter
	ReturnType types.DataType
	IsForward  bool

	PointeeType     types.DataType
	PointeeTypeName string
}

// Signature renders a routine symbol's parameter list for overload
// comparison and diagnostics, e.g. "(integer, var string)".
func (s *Symbol) Signature() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range s.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		switch p.Mode {
		case ast.ModeVar:
			sb.WriteString("var ")
		case ast.ModeConst:
			sb.WriteString("const ")
		}
		sb.WriteString(p.DataType.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// MatchesSignature reports whether two routine symbols have identical
// parameter modes and types, ignoring names and return type.
func (s *Symbol) MatchesSignature(other *Symbol) bool {
	if len(s.Parameters) != len(other.Parameters) {
		return false
	}
	for i := range s.Parameters {
		a, b := s.Parameters[i], other.Parameters[i]
		if a.Mode != b.Mode || a.DataType != b.DataType {
			return false
		}
		if a.DataType == types.Custom && a.TypeName != b.TypeName {
			return false
		}
	}
	return true
}

// Scope is one level of lexical nesting: the program/unit body, or one
// procedure/function body. Overloaded routines are kept in a bucket
// separate from the plain symbol map so a lookup can distinguish
// "no such name" from "name exists, pick an overload".
type Scope struct {
	level     int
	parent    *Scope
	symbols   map[string]*Symbol
	overloads map[string][]*Symbol
}

func newScope(level int, parent *Scope) *Scope {
	return &Scope{
		level:     level,
		parent:    parent,
		symbols:   make(map[string]*Symbol),
		overloads: make(map[string][]*Symbol),
	}
}

func key(name string) string { return strings.ToLower(name) }

// Define binds name in this scope, shadowing any same-named symbol in
// an outer scope.
func (s *Scope) Define(sym *Symbol) {
	sym.ScopeLevel = s.level
	s.symbols[key(sym.Name)] = sym
}

// LookupLocal looks up name in this scope only, without consulting the
// parent chain.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.symbols[key(name)]
	return sym, ok
}

// Lookup looks up name in this scope, then each enclosing scope in
// turn, returning the innermost match.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	if sym, ok := s.symbols[key(name)]; ok {
		return sym, true
	}
	if s.parent != nil {
		return s.parent.Lookup(name)
	}
	return nil, false
}

// DefineOverloaded adds sym to name's overload bucket in this scope. A
// scope may mix a single plain symbol and an overload bucket for
// different names, but not for the same name.
func (s *Scope) DefineOverloaded(sym *Symbol) {
	sym.ScopeLevel = s.level
	k := key(sym.Name)
	s.overloads[k] = append(s.overloads[k], sym)
	// Keep the first-declared overload visible through the plain map too,
	// so a non-overload-aware lookup (e.g. "is this name taken at all")
	// still finds something.
	if _, exists := s.symbols[k]; !exists {
		s.symbols[k] = sym
	}
}

// LookupAllOverloads returns every overload of name declared directly
// in this scope.
func (s *Scope) LookupAllOverloads(name string) []*Symbol {
	return s.overloads[key(name)]
}

// SymbolTable is a stack of nested Scopes, entered and exited in
// lock-step with the AST's block structure.
type SymbolTable struct {
	scopes  []*Scope
	current *Scope
}

// NewSymbolTable creates a table with one global scope already entered.
func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{}
	global := newScope(0, nil)
	t.scopes = append(t.scopes, global)
	t.current = global
	t.initializeBuiltinSymbols()
	return t
}

// EnterScope pushes a new child scope.
func (t *SymbolTable) EnterScope() {
	s := newScope(t.current.level+1, t.current)
	t.scopes = append(t.scopes, s)
	t.current = s
}

// ExitScope pops back to the parent of the current scope. Calling
// ExitScope on the global scope is a programming error in the caller.
func (t *SymbolTable) ExitScope() {
	if t.current.parent == nil {
		return
	}
	t.current = t.current.parent
}

// CurrentScopeLevel returns the nesting depth of the active scope (0 =
// global).
func (t *SymbolTable) CurrentScopeLevel() int { return t.current.level }

// Define binds sym in the active scope.
func (t *SymbolTable) Define(sym *Symbol) { t.current.Define(sym) }

// DefineOverloaded adds sym to the active scope's overload bucket for
// its name.
func (t *SymbolTable) DefineOverloaded(sym *Symbol) { t.current.DefineOverloaded(sym) }

// Lookup resolves name starting at the active scope and walking outward.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) { return t.current.Lookup(name) }

// LookupLocal resolves name in the active scope only.
func (t *SymbolTable) LookupLocal(name string) (*Symbol, bool) { return t.current.LookupLocal(name) }

// LookupFunction returns the overload set for name visible from the
// active scope, searching outward until a scope defines any overload
// of it.
func (t *SymbolTable) LookupFunction(name string) []*Symbol {
	for s := t.current; s != nil; s = s.parent {
		if overloads := s.LookupAllOverloads(name); len(overloads) > 0 {
			return overloads
		}
		if sym, ok := s.LookupLocal(name); ok && (sym.Kind == SymProcedure || sym.Kind == SymFunction) {
			return []*Symbol{sym}
		}
	}
	return nil
}

// LookupAllOverloads returns every overload of name declared directly
// in the active scope (no outward search).
func (t *SymbolTable) LookupAllOverloads(name string) []*Symbol {
	return t.current.LookupAllOverloads(name)
}

// ResolveOverload finds the overload in candidates whose parameter
// count and, where both sides are typed, argument types best match
// argTypes. Returns nil if no candidate has the right arity.
func ResolveOverload(candidates []*Symbol, argTypes []types.DataType) *Symbol {
	var arityMatch *Symbol
	for _, c := range candidates {
		if len(c.Parameters) != len(argTypes) {
			continue
		}
		if arityMatch == nil {
			arityMatch = c
		}
		exact := true
		for i, p := range c.Parameters {
			if p.DataType != types.Unknown && argTypes[i] != types.Unknown && p.DataType != argTypes[i] {
				exact = false
				break
			}
		}
		if exact {
			return c
		}
	}
	return arityMatch
}

// DefineForward registers a forward-declared routine. A later
// implementation with the same name is matched against it by
// MatchForward rather than being treated as a redeclaration.
func (t *SymbolTable) DefineForward(sym *Symbol) {
	sym.IsForward = true
	t.Define(sym)
}

// MatchForward looks for a forward declaration of name in the active
// scope matching sig's parameter list, returning it so the caller can
// validate the implementation and clear IsForward.
func (t *SymbolTable) MatchForward(name string, sig *Symbol) (*Symbol, bool) {
	if sym, ok := t.current.LookupLocal(name); ok && sym.IsForward && sym.MatchesSignature(sig) {
		return sym, true
	}
	for _, fwd := range t.current.LookupAllOverloads(name) {
		if fwd.IsForward && fwd.MatchesSignature(sig) {
			return fwd, true
		}
	}
	return nil, false
}

// builtinNames is every routine name the code generator dispatches
// specially rather than emitting as a user-defined call; semantic
// analysis treats a call to one of these as always resolved, without
// requiring a declaration.
var builtinNames = map[string]bool{
	"abs": true, "arctan": true, "cos": true, "exp": true, "ln": true,
	"random": true, "randomize": true, "round": true, "sin": true,
	"sqr": true, "sqrt": true, "tan": true, "trunc": true,

	"append": true, "assign": true, "blockread": true, "blockwrite": true,
	"close": true, "eof": true, "filepos": true, "filesize": true,
	"findfirst": true, "findnext": true, "findclose": true, "mkdir": true,
	"reset": true, "rewrite": true, "rmdir": true, "seek": true,

	"chr": true, "ord": true, "upcase": true,

	"concat": true, "copy": true, "delete": true, "insert": true,
	"leftstr": true, "rightstr": true, "length": true, "lowercase": true,
	"uppercase": true, "padleft": true, "padright": true, "pos": true,
	"stringofchar": true, "str": true, "trim": true, "trimleft": true,
	"trimright": true, "val": true,

	"inttostr": true, "strtoint": true, "floattostr": true, "strtofloat": true,
	"datetostr": true, "timetostr": true,

	"dec": true, "inc": true, "dispose": true, "new": true,
	"getmem": true, "freemem": true, "mark": true, "release": true,

	"clreol": true, "clrscr": true, "cursoroff": true, "cursoron": true,
	"gotoxy": true, "highvideo": true, "lowvideo": true, "normvideo": true,
	"textbackground": true, "textcolor": true, "window": true,
	"wherex": true, "wherey": true,

	"dayofweek": true, "getdate": true, "getdatetime": true, "gettime": true,

	"delay": true, "exec": true, "getenv": true, "getcurrentdir": true,
	"setcurrentdir": true, "directoryexists": true, "fileexists": true,
	"halt": true, "keypressed": true, "nosound": true, "sound": true,
	"paramcount": true, "paramstr": true, "readkey": true,

	"read": true, "readln": true, "write": true, "writeln": true,
	"ioresult": true,
}

// IsBuiltin reports whether name is a recognised builtin routine.
func IsBuiltin(name string) bool { return builtinNames[key(name)] }

// CrtColorConstants are the integer constants the CRT unit exposes. The
// code generator consults this table directly when it needs the
// numeric value (e.g. folding `textcolor(lightblue)`); the symbol table
// only needs to know these names are bound so they resolve as
// identifiers in ordinary expressions.
var CrtColorConstants = map[string]int{
	"black": 0, "blue": 1, "green": 2, "cyan": 3, "red": 4, "magenta": 5,
	"brown": 6, "lightgray": 7, "darkgray": 8, "lightblue": 9,
	"lightgreen": 10, "lightcyan": 11, "lightred": 12, "lightmagenta": 13,
	"yellow": 14, "white": 15, "blink": 128,
}

func (t *SymbolTable) initializeBuiltinSymbols() {
	for name := range CrtColorConstants {
		t.Define(&Symbol{
			Name:     name,
			Kind:     SymConstant,
			DataType: types.Integer,
		})
	}
}
