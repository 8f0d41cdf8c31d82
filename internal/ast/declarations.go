package ast

import "github.com/daver64/tp2cpp/internal/token"

// ConstantDeclaration is `name = value;` inside a `const` run.
type ConstantDeclaration struct {
	Token token.Token // the name token
	Name  string
	Value Expression
}

func (c *ConstantDeclaration) declarationNode()  {}
func (c *ConstantDeclaration) TokenLiteral() string { return c.Token.Literal }
func (c *ConstantDeclaration) Pos() token.Position  { return c.Token.Pos }

// TypeDeclaration is `name = typeDefinitionText;` inside a `type` run.
// TypeText is the verbatim Pascal definition as parsed (the cross-phase
// carrier spec.md §3/§9 describes); RecordDef is populated in addition
// when TypeText denotes a record, so the parser doesn't need to be
// re-invoked later just to recover field names.
type TypeDeclaration struct {
	Token     token.Token // the name token
	Name      string
	TypeText  string
	RecordDef *RecordTypeDefinition // non-nil when this is a record type
}

func (t *TypeDeclaration) declarationNode()  {}
func (t *TypeDeclaration) TokenLiteral() string { return t.Token.Literal }
func (t *TypeDeclaration) Pos() token.Position  { return t.Token.Pos }

// VariableDeclaration is one `name1, name2: Type [= init];` entry inside a
// `var` run, or one parameter of a procedure/function header. Mode is
// immutable once parsed: var/const parameters must be emitted
// by-reference in C++.
type VariableDeclaration struct {
	Token    token.Token // the name token
	Names    []string
	TypeText string
	Mode     ParameterMode
	Init     Expression // non-nil only for a var declaration's initializer
}

func (v *VariableDeclaration) declarationNode()  {}
func (v *VariableDeclaration) TokenLiteral() string { return v.Token.Literal }
func (v *VariableDeclaration) Pos() token.Position  { return v.Token.Pos }

// LabelDeclaration is `label 1, 2, 99;`.
type LabelDeclaration struct {
	Token  token.Token // the LABEL token
	Labels []string
}

func (l *LabelDeclaration) declarationNode()  {}
func (l *LabelDeclaration) TokenLiteral() string { return l.Token.Literal }
func (l *LabelDeclaration) Pos() token.Position  { return l.Token.Pos }

// ProcedureDeclaration is a `procedure name(params); [forward|body]`.
// IsForward is true for a `forward;` header with no body yet; Body is nil
// in that case. Nested declarations inside Body's enclosing scope that
// are themselves procedures are rejected by the semantic analyser
// (spec.md §1 Non-goals: nested procedures are detected, not supported).
type ProcedureDeclaration struct {
	Token      token.Token // the PROCEDURE token
	Name       string
	Parameters []*VariableDeclaration
	Locals     []Declaration
	Body       *CompoundStatement
	IsForward  bool
	IsOverload bool
}

func (p *ProcedureDeclaration) declarationNode()  {}
func (p *ProcedureDeclaration) TokenLiteral() string { return p.Token.Literal }
func (p *ProcedureDeclaration) Pos() token.Position  { return p.Token.Pos }

// FunctionDeclaration mirrors ProcedureDeclaration but carries a return
// type name.
type FunctionDeclaration struct {
	Token      token.Token // the FUNCTION token
	Name       string
	Parameters []*VariableDeclaration
	ReturnType string
	Locals     []Declaration
	Body       *CompoundStatement
	IsForward  bool
	IsOverload bool
}

func (f *FunctionDeclaration) declarationNode()  {}
func (f *FunctionDeclaration) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDeclaration) Pos() token.Position  { return f.Token.Pos }
