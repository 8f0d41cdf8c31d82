// Package ast defines the typed abstract syntax tree the parser produces
// and every later stage (symbol table, semantic analyser, code generator)
// walks. Node families are plain Go interfaces with a closed set of
// implementations; callers (the semantic analyser and the code
// generator) dispatch on concrete type with a type switch. The Visitor
// interface in visitor.go is not used by either stage.
package ast

import "github.com/daver64/tp2cpp/internal/token"

// Node is the interface every AST node satisfies.
type Node interface {
	// TokenLiteral returns the literal text of the token the node was
	// first built from, mainly useful in error messages and tests.
	TokenLiteral() string
	// Pos returns the node's source location, stamped at its first token.
	Pos() token.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without producing a value.
type Statement interface {
	Node
	statementNode()
}

// Declaration introduces a name (or a uses-clause) into scope.
type Declaration interface {
	Node
	declarationNode()
}

// ParameterMode is a parameter's passing convention. It is fixed once
// parsed: var and const parameters must be emitted by-reference in C++.
type ParameterMode int

const (
	ModeValue ParameterMode = iota
	ModeVar
	ModeConst
)

func (m ParameterMode) String() string {
	switch m {
	case ModeVar:
		return "var"
	case ModeConst:
		return "const"
	default:
		return "value"
	}
}

// Program is the root node of a `program ... .` compilation unit.
type Program struct {
	Token        token.Token // the PROGRAM token
	Name         string
	Uses         *UsesClause // nil if no uses-clause
	Declarations []Declaration
	Body         *CompoundStatement
}

func (p *Program) TokenLiteral() string  { return p.Token.Literal }
func (p *Program) Pos() token.Position   { return p.Token.Pos }

// Unit is the root node of a `unit ... .` compilation unit, with separate
// interface and implementation declaration lists.
type Unit struct {
	Token                token.Token // the UNIT token
	Name                 string
	InterfaceUses        *UsesClause
	InterfaceDecls       []Declaration
	ImplementationUses   *UsesClause
	ImplementationDecls  []Declaration
	InitBody             *CompoundStatement // optional begin..end before final end.
}

func (u *Unit) TokenLiteral() string { return u.Token.Literal }
func (u *Unit) Pos() token.Position  { return u.Token.Pos }

// UsesClause names the units a program or unit section imports.
type UsesClause struct {
	Token token.Token // the USES token
	Names []string
}

func (u *UsesClause) TokenLiteral() string { return u.Token.Literal }
func (u *UsesClause) Pos() token.Position  { return u.Token.Pos }
func (u *UsesClause) declarationNode()     {}
