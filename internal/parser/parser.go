// Package parser implements a recursive-descent parser over the
// internal/lexer token stream, producing an internal/ast tree.
//
// Expression parsing is layered by precedence (or/and lowest, then
// equality, relational, additive, multiplicative, unary, postfix,
// primary highest) rather than a Pratt table, mirroring Pascal's fixed
// operator-precedence grammar. Parse errors are collected rather than
// thrown: on a malformed expression the parser reports a diagnostic and
// leaves any statement separator or closing delimiter in place (see
// isExpressionBoundary), so the enclosing statement list can go on to
// the next statement and further errors are found in the same pass. A
// statement list that finds no ';' after a statement stops there and
// expects its closing keyword; it does not skip ahead to resynchronize.
package parser

import (
	"fmt"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/errors"
	"github.com/daver64/tp2cpp/internal/lexer"
	"github.com/daver64/tp2cpp/internal/token"
)

// Parser turns one lexer's token stream into an AST.
type Parser struct {
	lex    *lexer.Lexer
	cur    token.Token
	peek   token.Token
	diags  errors.List
	source string
	file   string
}

// New creates a Parser over src, primed with the first two tokens.
func New(src, file string) *Parser {
	l := lexer.New(src)
	p := &Parser{lex: l, source: src, file: file}
	p.cur = l.Next()
	p.peek = l.Next()
	return p
}

// Diagnostics returns every diagnostic raised while parsing, combined
// with any lexical errors the underlying lexer accumulated.
func (p *Parser) Diagnostics() []*errors.Diagnostic {
	for _, lexErr := range p.lex.Errors() {
		p.diags.Add(errors.Lex, lexErr.Pos, lexErr.Message, p.source, p.file)
	}
	return p.diags.Items()
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) {
	p.diags.Add(errors.Parse, pos, fmt.Sprintf(format, args...), p.source, p.file)
}

// expect consumes the current token if it has type t, else reports a
// diagnostic and leaves the cursor in place so the caller's caller can
// attempt to resynchronize.
func (p *Parser) expect(t token.Type) token.Token {
	tok := p.cur
	if p.cur.Type != t {
		p.errorf(p.cur.Pos, "expected %s, found %s %q", t, p.cur.Type, p.cur.Literal)
		return tok
	}
	p.advance()
	return tok
}

func (p *Parser) accept(t token.Type) bool {
	if p.cur.Type == t {
		p.advance()
		return true
	}
	return false
}

// synchronize skips tokens until a statement boundary so parsing can
// resume after an error instead of cascading into unrelated ones.
func (p *Parser) synchronize() {
	for !p.curIs(token.EOF) {
		if p.curIs(token.SEMICOLON) {
			p.advance()
			return
		}
		switch p.cur.Type {
		case token.END, token.UNTIL, token.ELSE, token.BEGIN,
			token.PROCEDURE, token.FUNCTION, token.VAR, token.CONST, token.TYPE:
			return
		}
		p.advance()
	}
}

// ParseProgram parses a full `program ... begin ... end.` unit.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	if p.curIs(token.PROGRAM) {
		prog.Token = p.cur
		p.advance()
		prog.Name = p.expect(token.IDENT).Literal
		if p.curIs(token.LEFT_PAREN) {
			p.advance()
			for !p.curIs(token.RIGHT_PAREN) && !p.curIs(token.EOF) {
				p.advance()
			}
			p.accept(token.RIGHT_PAREN)
		}
		p.expect(token.SEMICOLON)
	}

	if p.curIs(token.USES) {
		prog.Uses = p.parseUsesClause()
	}

	prog.Declarations = p.parseDeclarations()
	prog.Body = p.parseCompoundStatement()
	p.expect(token.PERIOD)
	return prog
}

// ParseUnit parses a `unit ... interface ... implementation ... end.`.
func (p *Parser) ParseUnit() *ast.Unit {
	u := &ast.Unit{Token: p.cur}
	p.expect(token.UNIT)
	u.Name = p.expect(token.IDENT).Literal
	p.expect(token.SEMICOLON)

	p.expect(token.INTERFACE)
	if p.curIs(token.USES) {
		u.InterfaceUses = p.parseUsesClause()
	}
	u.InterfaceDecls = p.parseInterfaceDeclarations()

	p.expect(token.IMPLEMENTATION)
	if p.curIs(token.USES) {
		u.ImplementationUses = p.parseUsesClause()
	}
	u.ImplementationDecls = p.parseDeclarations()

	if p.curIs(token.BEGIN) {
		u.InitBody = p.parseCompoundStatement()
	} else {
		p.expect(token.END)
	}
	p.expect(token.PERIOD)
	return u
}

func (p *Parser) parseUsesClause() *ast.UsesClause {
	uc := &ast.UsesClause{Token: p.cur}
	p.expect(token.USES)
	uc.Names = append(uc.Names, p.expect(token.IDENT).Literal)
	for p.accept(token.COMMA) {
		uc.Names = append(uc.Names, p.expect(token.IDENT).Literal)
	}
	p.expect(token.SEMICOLON)
	return uc
}

// parseDeclarations parses the const/type/var/label/procedure/function
// run that precedes a `begin` block, in any order and any repetition,
// matching Pascal's grammar where each declaration kind may recur.
func (p *Parser) parseDeclarations() []ast.Declaration {
	var decls []ast.Declaration
	for {
		switch p.cur.Type {
		case token.CONST:
			decls = append(decls, p.parseConstantRun()...)
		case token.TYPE:
			decls = append(decls, p.parseTypeRun()...)
		case token.VAR:
			decls = append(decls, p.parseVariableRun()...)
		case token.LABEL:
			decls = append(decls, p.parseLabelDeclaration())
		case token.PROCEDURE:
			decls = append(decls, p.parseProcedureDeclaration())
		case token.FUNCTION:
			decls = append(decls, p.parseFunctionDeclaration())
		default:
			return decls
		}
	}
}

// parseInterfaceDeclarations is like parseDeclarations but procedure and
// function headers never carry a body (a unit interface only declares
// signatures; the implementation section supplies bodies).
func (p *Parser) parseInterfaceDeclarations() []ast.Declaration {
	var decls []ast.Declaration
	for {
		switch p.cur.Type {
		case token.CONST:
			decls = append(decls, p.parseConstantRun()...)
		case token.TYPE:
			decls = append(decls, p.parseTypeRun()...)
		case token.VAR:
			decls = append(decls, p.parseVariableRun()...)
		case token.PROCEDURE:
			decls = append(decls, p.parseInterfaceRoutineHeader(false))
		case token.FUNCTION:
			decls = append(decls, p.parseInterfaceRoutineHeader(true))
		default:
			return decls
		}
	}
}

func (p *Parser) parseInterfaceRoutineHeader(isFunction bool) ast.Declaration {
	if isFunction {
		tok := p.cur
		p.advance()
		name := p.expect(token.IDENT).Literal
		params := p.parseParameterList()
		p.expect(token.COLON)
		retType := p.parseTypeName()
		p.expect(token.SEMICOLON)
		return &ast.FunctionDeclaration{Token: tok, Name: name, Parameters: params, ReturnType: retType, IsForward: true}
	}
	tok := p.cur
	p.advance()
	name := p.expect(token.IDENT).Literal
	params := p.parseParameterList()
	p.expect(token.SEMICOLON)
	return &ast.ProcedureDeclaration{Token: tok, Name: name, Parameters: params, IsForward: true}
}
