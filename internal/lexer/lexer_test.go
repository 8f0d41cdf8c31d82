package lexer

import (
	"testing"

	"github.com/daver64/tp2cpp/internal/token"
	"github.com/stretchr/testify/require"
)

func TestNextTokenBasicProgram(t *testing.T) {
	input := `program Hi; begin writeln('Hello, World!') end.`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.PROGRAM, "program"},
		{token.IDENT, "Hi"},
		{token.SEMICOLON, ";"},
		{token.BEGIN, "begin"},
		{token.IDENT, "writeln"},
		{token.LEFT_PAREN, "("},
		{token.STRING, "Hello, World!"},
		{token.RIGHT_PAREN, ")"},
		{token.END, "end"},
		{token.PERIOD, "."},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.Next()
		require.Equalf(t, tt.expectedType, tok.Type, "token %d", i)
		require.Equalf(t, tt.expectedLiteral, tok.Literal, "token %d", i)
	}
}

func TestKeywordCaseInsensitivity(t *testing.T) {
	for word, want := range map[string]token.Type{
		"BEGIN": token.BEGIN, "begin": token.BEGIN, "Begin": token.BEGIN,
		"DIV": token.DIV, "Div": token.DIV,
	} {
		l := New(word)
		tok := l.Next()
		require.Equal(t, want, tok.Type, word)
	}
}

func TestArrayBoundsRangeNotConsumedAsReal(t *testing.T) {
	l := New("array[0..9] of integer")
	kinds := []token.Type{token.ARRAY, token.LEFT_BRACKET, token.INT, token.RANGE, token.INT, token.RIGHT_BRACKET, token.OF, token.INTEGER, token.EOF}
	for i, want := range kinds {
		tok := l.Next()
		require.Equalf(t, want, tok.Type, "token %d (%q)", i, tok.Literal)
	}
}

func TestRealLiteral(t *testing.T) {
	l := New("3.14 2.5e10 1.5E-3")
	for _, want := range []string{"3.14", "2.5e10", "1.5E-3"} {
		tok := l.Next()
		require.Equal(t, token.REAL, tok.Type)
		require.Equal(t, want, tok.Literal)
	}
}

func TestCharVsStringLiteral(t *testing.T) {
	l := New("'x' 'hello' ''")
	tok := l.Next()
	require.Equal(t, token.CHAR, tok.Type)
	require.Equal(t, "x", tok.Literal)

	tok = l.Next()
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, "hello", tok.Literal)

	tok = l.Next()
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, "", tok.Literal)
}

func TestDoubledQuoteEscapesLiteralQuote(t *testing.T) {
	l := New("'it''s'")
	tok := l.Next()
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, "it's", tok.Literal)
}

func TestCharCodeLiteral(t *testing.T) {
	l := New("#65")
	tok := l.Next()
	require.Equal(t, token.CHAR, tok.Type)
	require.Equal(t, "#65", tok.Literal)
}

func TestNestedBraceComment(t *testing.T) {
	l := New("{ (* } *) begin")
	tok := l.Next()
	require.Equal(t, token.BEGIN, tok.Type)
	require.Empty(t, l.Errors())
}

func TestUnbalancedBraceCommentIsError(t *testing.T) {
	l := New("{ } } begin")
	// The first "{ }" closes; the second "}" has no opener and becomes ILLEGAL.
	tok := l.Next()
	require.Equal(t, token.ILLEGAL, tok.Type)
	tok = l.Next()
	require.Equal(t, token.BEGIN, tok.Type)
}

func TestLineComment(t *testing.T) {
	l := New("// a comment\nbegin")
	tok := l.Next()
	require.Equal(t, token.BEGIN, tok.Type)
}

func TestParenStarCommentNests(t *testing.T) {
	l := New("(* outer (* inner *) still outer *) begin")
	tok := l.Next()
	require.Equal(t, token.BEGIN, tok.Type)
	require.Empty(t, l.Errors())
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("var x")
	peeked := l.Peek()
	require.Equal(t, token.VAR, peeked.Type)
	next := l.Next()
	require.Equal(t, token.VAR, next.Type)
	next = l.Next()
	require.Equal(t, token.IDENT, next.Type)
}

func TestTwoCharOperatorsPrecedeSingleChar(t *testing.T) {
	l := New(":= <= >= <> ..")
	kinds := []token.Type{token.ASSIGN, token.LESS_EQUAL, token.GREATER_EQUAL, token.NOT_EQUAL, token.RANGE}
	for _, want := range kinds {
		tok := l.Next()
		require.Equal(t, want, tok.Type)
	}
}

func TestUnterminatedComment(t *testing.T) {
	l := New("{ never closes")
	l.Next()
	require.NotEmpty(t, l.Errors())
}

func TestEOFIsIdempotent(t *testing.T) {
	l := New("")
	first := l.Next()
	second := l.Next()
	require.Equal(t, token.EOF, first.Type)
	require.Equal(t, token.EOF, second.Type)
}
