package ast

import "github.com/daver64/tp2cpp/internal/token"

// ExpressionStatement wraps a bare expression used as a statement, e.g. a
// procedure call with no assignment.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()     {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() token.Position  { return e.Token.Pos }

// CompoundStatement is `begin ... end`.
type CompoundStatement struct {
	Token      token.Token // the BEGIN token
	Statements []Statement
}

func (c *CompoundStatement) statementNode()     {}
func (c *CompoundStatement) TokenLiteral() string { return c.Token.Literal }
func (c *CompoundStatement) Pos() token.Position  { return c.Token.Pos }

// AssignmentStatement is `target := value`. Target may be a postfix chain
// (a.b[i].c := v), in which case the whole chain is the assignment target.
type AssignmentStatement struct {
	Token  token.Token // the ':=' token
	Target Expression
	Value  Expression
}

func (a *AssignmentStatement) statementNode()     {}
func (a *AssignmentStatement) TokenLiteral() string { return a.Token.Literal }
func (a *AssignmentStatement) Pos() token.Position  { return a.Target.Pos() }

// IfStatement is `if cond then thenBranch [else elseBranch]`.
type IfStatement struct {
	Token       token.Token // the IF token
	Condition   Expression
	ThenBranch  Statement
	ElseBranch  Statement // nil if no else
}

func (i *IfStatement) statementNode()     {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() token.Position  { return i.Token.Pos }

// WhileStatement is `while cond do body`.
type WhileStatement struct {
	Token     token.Token // the WHILE token
	Condition Expression
	Body      Statement
}

func (w *WhileStatement) statementNode()     {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() token.Position  { return w.Token.Pos }

// ForStatement is `for var := start (to|downto) end do body`.
type ForStatement struct {
	Token     token.Token // the FOR token
	Variable  string
	Start     Expression
	End       Expression
	IsDownto  bool
	Body      Statement
}

func (f *ForStatement) statementNode()     {}
func (f *ForStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForStatement) Pos() token.Position  { return f.Token.Pos }

// RepeatStatement is `repeat stmts until cond`, which executes the body
// at least once (Pascal's do-while-with-inverted-condition semantics).
type RepeatStatement struct {
	Token      token.Token // the REPEAT token
	Statements []Statement
	Condition  Expression
}

func (r *RepeatStatement) statementNode()     {}
func (r *RepeatStatement) TokenLiteral() string { return r.Token.Literal }
func (r *RepeatStatement) Pos() token.Position  { return r.Token.Pos }

// CaseBranch is one `values: statement` arm of a case statement. Values
// may include RangeExpression nodes (a..b), which expand to one label per
// integer in the generator.
type CaseBranch struct {
	Values    []Expression
	Statement Statement
}

// CaseStatement is `case selector of branches... [else elseBranch] end`.
type CaseStatement struct {
	Token      token.Token // the CASE token
	Selector   Expression
	Branches   []CaseBranch
	ElseBranch Statement // nil if no else
}

func (c *CaseStatement) statementNode()     {}
func (c *CaseStatement) TokenLiteral() string { return c.Token.Literal }
func (c *CaseStatement) Pos() token.Position  { return c.Token.Pos }

// WithStatement is `with e1, e2, ... do body`. Expressions holds the list
// of with-targets in source order; the semantic analyser pushes one
// with-stack frame per expression on entry and pops them in reverse on
// exit, so nested with composes.
type WithStatement struct {
	Token       token.Token // the WITH token
	Expressions []Expression
	Body        Statement
}

func (w *WithStatement) statementNode()     {}
func (w *WithStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WithStatement) Pos() token.Position  { return w.Token.Pos }

// LabelStatement attaches an integer label to the following statement: a
// bare integer literal followed by ':' in statement position.
type LabelStatement struct {
	Token     token.Token // the label's integer token
	Label     string
	Statement Statement
}

func (l *LabelStatement) statementNode()     {}
func (l *LabelStatement) TokenLiteral() string { return l.Token.Literal }
func (l *LabelStatement) Pos() token.Position  { return l.Token.Pos }

// GotoStatement is `goto N`.
type GotoStatement struct {
	Token token.Token // the GOTO token
	Label string
}

func (g *GotoStatement) statementNode()     {}
func (g *GotoStatement) TokenLiteral() string { return g.Token.Literal }
func (g *GotoStatement) Pos() token.Position  { return g.Token.Pos }

// BreakStatement is `break`.
type BreakStatement struct {
	Token token.Token
}

func (b *BreakStatement) statementNode()     {}
func (b *BreakStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStatement) Pos() token.Position  { return b.Token.Pos }

// ContinueStatement is `continue`.
type ContinueStatement struct {
	Token token.Token
}

func (c *ContinueStatement) statementNode()     {}
func (c *ContinueStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStatement) Pos() token.Position  { return c.Token.Pos }
