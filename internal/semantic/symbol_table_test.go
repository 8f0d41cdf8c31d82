package semantic

import (
	"testing"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/types"
	"github.com/stretchr/testify/require"
)

func TestDefineAndLookupAcrossScopes(t *testing.T) {
	st := NewSymbolTable()
	st.Define(&Symbol{Name: "Total", Kind: SymVariable, DataType: types.Integer})

	st.EnterScope()
	defer st.ExitScope()

	sym, ok := st.Lookup("total")
	require.True(t, ok)
	require.Equal(t, types.Integer, sym.DataType)

	_, ok = st.LookupLocal("total")
	require.False(t, ok, "inherited symbol must not appear as a local of the inner scope")
}

func TestScopeShadowing(t *testing.T) {
	st := NewSymbolTable()
	st.Define(&Symbol{Name: "x", Kind: SymVariable, DataType: types.Integer})

	st.EnterScope()
	st.Define(&Symbol{Name: "x", Kind: SymVariable, DataType: types.String})

	sym, _ := st.Lookup("x")
	require.Equal(t, types.String, sym.DataType)

	st.ExitScope()
	sym, _ = st.Lookup("x")
	require.Equal(t, types.Integer, sym.DataType)
}

func TestOverloadResolutionByArity(t *testing.T) {
	st := NewSymbolTable()
	st.DefineOverloaded(&Symbol{
		Name: "combine", Kind: SymFunction, ReturnType: types.Integer,
		Parameters: []Parameter{{Name: "a", DataType: types.Integer}},
	})
	st.DefineOverloaded(&Symbol{
		Name: "combine", Kind: SymFunction, ReturnType: types.String,
		Parameters: []Parameter{
			{Name: "a", DataType: types.String},
			{Name: "b", DataType: types.String},
		},
	})

	candidates := st.LookupFunction("Combine")
	require.Len(t, candidates, 2)

	match := ResolveOverload(candidates, []types.DataType{types.Integer})
	require.NotNil(t, match)
	require.Equal(t, types.Integer, match.ReturnType)

	match = ResolveOverload(candidates, []types.DataType{types.String, types.String})
	require.NotNil(t, match)
	require.Equal(t, types.String, match.ReturnType)
}

func TestForwardDeclarationMatchesImplementation(t *testing.T) {
	st := NewSymbolTable()
	fwd := &Symbol{
		Name: "DoWork", Kind: SymProcedure, ReturnType: types.Void,
		Parameters: []Parameter{{Name: "n", DataType: types.Integer, Mode: ast.ModeValue}},
	}
	st.DefineForward(fwd)

	impl := &Symbol{
		Name: "DoWork", Kind: SymProcedure, ReturnType: types.Void,
		Parameters: []Parameter{{Name: "n", DataType: types.Integer, Mode: ast.ModeValue}},
	}
	matched, ok := st.MatchForward("DoWork", impl)
	require.True(t, ok)
	require.True(t, matched.IsForward)
}

func TestIsBuiltinRecognisesCoreNames(t *testing.T) {
	require.True(t, IsBuiltin("WriteLn"))
	require.True(t, IsBuiltin("length"))
	require.False(t, IsBuiltin("MyCustomProc"))
}
