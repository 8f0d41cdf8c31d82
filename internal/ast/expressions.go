package ast

import "github.com/daver64/tp2cpp/internal/token"

// Identifier is a bare name reference: a variable, constant, or routine.
//
// WithVariable is stamped by the semantic analyser when this identifier is
// resolved as a field access through an enclosing `with` statement; it is
// the only information the code generator needs to turn the bare name
// into `withVariable.field` (spec.md data-model invariant).
type Identifier struct {
	TypeInfo
	Token        token.Token
	Value        string
	WithVariable string
}

func (i *Identifier) expressionNode()         {}
func (i *Identifier) TokenLiteral() string    { return i.Token.Literal }
func (i *Identifier) Pos() token.Position     { return i.Token.Pos }
func (i *Identifier) IsWithFieldAccess() bool { return i.WithVariable != "" }

// LiteralKind distinguishes the raw-text literal forms the lexer can hand
// the parser; numeric conversion stays deferred to codegen.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralReal
	LiteralString
	LiteralChar
	LiteralBool
	LiteralNil
)

// Literal carries a literal token verbatim; conversion to a numeric value
// is deferred until code generation.
type Literal struct {
	TypeInfo
	Token token.Token
	Kind  LiteralKind
	Text  string // raw literal text, e.g. "123", "3.14", "Hello", "#65"
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) Pos() token.Position  { return l.Token.Pos }

// BinaryExpression is `left OP right`.
type BinaryExpression struct {
	TypeInfo
	Token    token.Token // the operator token
	Left     Expression
	Operator token.Type
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() token.Position  { return b.Left.Pos() }

// UnaryExpression is a prefix operator: not, unary +/-.
type UnaryExpression struct {
	TypeInfo
	Token    token.Token
	Operator token.Type
	Operand  Expression
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) Pos() token.Position  { return u.Token.Pos }

// AddressOfExpression is `@e`.
type AddressOfExpression struct {
	TypeInfo
	Token   token.Token // the '@' token
	Operand Expression
}

func (a *AddressOfExpression) expressionNode()      {}
func (a *AddressOfExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AddressOfExpression) Pos() token.Position  { return a.Token.Pos }

// DereferenceExpression is `e^`.
type DereferenceExpression struct {
	TypeInfo
	Token   token.Token // the '^' token
	Operand Expression
}

func (d *DereferenceExpression) expressionNode()      {}
func (d *DereferenceExpression) TokenLiteral() string { return d.Token.Literal }
func (d *DereferenceExpression) Pos() token.Position  { return d.Operand.Pos() }

// CallExpression is `callee(args...)`.
type CallExpression struct {
	TypeInfo
	Token     token.Token // the '(' token
	Callee    Expression
	Arguments []Expression
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() token.Position  { return c.Callee.Pos() }

// FieldAccessExpression is `object.field`. Object is itself an
// Expression, so nested access (a.b.c.d) is a left-leaning tree.
type FieldAccessExpression struct {
	TypeInfo
	Token     token.Token // the '.' token
	Object    Expression
	FieldName string
}

func (f *FieldAccessExpression) expressionNode()      {}
func (f *FieldAccessExpression) TokenLiteral() string { return f.Token.Literal }
func (f *FieldAccessExpression) Pos() token.Position  { return f.Object.Pos() }

// ArrayIndexExpression is `array[i, j, ...]`; Indices always has length
// >= 1 and one multi-index access is a single node, not nested accesses.
type ArrayIndexExpression struct {
	TypeInfo
	Token   token.Token // the '[' token
	Array   Expression
	Indices []Expression
}

func (a *ArrayIndexExpression) expressionNode()      {}
func (a *ArrayIndexExpression) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayIndexExpression) Pos() token.Position  { return a.Array.Pos() }

// RangeExpression is `lo..hi`, used inside set literals, array bounds, and
// case-branch value lists. Outside those contexts it is a structural
// placeholder with no standalone value (spec.md §4.5).
type RangeExpression struct {
	TypeInfo
	Token token.Token // the '..' token
	Low   Expression
	High  Expression
}

func (r *RangeExpression) expressionNode()      {}
func (r *RangeExpression) TokenLiteral() string { return r.Token.Literal }
func (r *RangeExpression) Pos() token.Position  { return r.Low.Pos() }

// SetLiteralExpression is `[a, b..c, ...]`.
type SetLiteralExpression struct {
	TypeInfo
	Token    token.Token // the '[' token
	Elements []Expression
}

func (s *SetLiteralExpression) expressionNode()      {}
func (s *SetLiteralExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SetLiteralExpression) Pos() token.Position  { return s.Token.Pos }

// FormattedExpression is `expr:width:precision`, the write/writeln format
// specifier syntax. Width and/or Precision may be nil.
type FormattedExpression struct {
	TypeInfo
	Token     token.Token // the ':' token
	Value     Expression
	Width     Expression
	Precision Expression
}

func (f *FormattedExpression) expressionNode()      {}
func (f *FormattedExpression) TokenLiteral() string { return f.Token.Literal }
func (f *FormattedExpression) Pos() token.Position  { return f.Value.Pos() }
