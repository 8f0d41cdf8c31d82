package parser

import (
	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/token"
)

func (p *Parser) parseCompoundStatement() *ast.CompoundStatement {
	tok := p.expect(token.BEGIN)
	comp := &ast.CompoundStatement{Token: tok}
	for !p.curIs(token.END) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			comp.Statements = append(comp.Statements, stmt)
		}
		if !p.accept(token.SEMICOLON) {
			break
		}
	}
	p.expect(token.END)
	return comp
}

// parseStatement parses one statement. A bare `;` or a statement
// immediately followed by `end`/`until`/`else` yields no node (empty
// statement), matching Pascal's grammar where statement separators may
// trail the last statement in a list.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.BEGIN:
		return p.parseCompoundStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.REPEAT:
		return p.parseRepeatStatement()
	case token.CASE:
		return p.parseCaseStatement()
	case token.WITH:
		return p.parseWithStatement()
	case token.GOTO:
		return p.parseGotoStatement()
	case token.BREAK:
		tok := p.cur
		p.advance()
		return &ast.BreakStatement{Token: tok}
	case token.CONTINUE:
		tok := p.cur
		p.advance()
		return &ast.ContinueStatement{Token: tok}
	case token.INT:
		if p.peekIs(token.COLON) {
			return p.parseLabelStatement()
		}
		return p.parseSimpleStatement()
	case token.END, token.UNTIL, token.ELSE, token.SEMICOLON:
		return nil
	default:
		return p.parseSimpleStatement()
	}
}

// parseSimpleStatement parses an assignment or a bare call used as a
// statement; both start with an expression, so the two are
// disambiguated only after seeing (or not seeing) `:=`.
func (p *Parser) parseSimpleStatement() ast.Statement {
	startTok := p.cur
	expr := p.parseExpression()
	if expr == nil {
		p.synchronize()
		return nil
	}
	if p.curIs(token.ASSIGN) {
		assignTok := p.cur
		p.advance()
		value := p.parseExpression()
		return &ast.AssignmentStatement{Token: assignTok, Target: expr, Value: value}
	}
	return &ast.ExpressionStatement{Token: startTok, Expression: expr}
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	tok := p.cur
	p.expect(token.IF)
	cond := p.parseExpression()
	p.expect(token.THEN)
	thenBranch := p.parseStatement()
	stmt := &ast.IfStatement{Token: tok, Condition: cond, ThenBranch: thenBranch}
	if p.accept(token.ELSE) {
		stmt.ElseBranch = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	tok := p.cur
	p.expect(token.WHILE)
	cond := p.parseExpression()
	p.expect(token.DO)
	body := p.parseStatement()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseForStatement() *ast.ForStatement {
	tok := p.cur
	p.expect(token.FOR)
	variable := p.expect(token.IDENT).Literal
	p.expect(token.ASSIGN)
	start := p.parseExpression()

	stmt := &ast.ForStatement{Token: tok, Variable: variable, Start: start}
	switch p.cur.Type {
	case token.TO:
		p.advance()
	case token.DOWNTO:
		stmt.IsDownto = true
		p.advance()
	default:
		p.errorf(p.cur.Pos, "expected 'to' or 'downto', found %s", p.cur.Type)
	}
	stmt.End = p.parseExpression()
	p.expect(token.DO)
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseRepeatStatement() *ast.RepeatStatement {
	tok := p.cur
	p.expect(token.REPEAT)
	stmt := &ast.RepeatStatement{Token: tok}
	for !p.curIs(token.UNTIL) && !p.curIs(token.EOF) {
		s := p.parseStatement()
		if s != nil {
			stmt.Statements = append(stmt.Statements, s)
		}
		if !p.accept(token.SEMICOLON) {
			break
		}
	}
	p.expect(token.UNTIL)
	stmt.Condition = p.parseExpression()
	return stmt
}

func (p *Parser) parseCaseStatement() *ast.CaseStatement {
	tok := p.cur
	p.expect(token.CASE)
	selector := p.parseExpression()
	p.expect(token.OF)

	stmt := &ast.CaseStatement{Token: tok, Selector: selector}
	for !p.curIs(token.END) && !p.curIs(token.ELSE) && !p.curIs(token.EOF) {
		branch := ast.CaseBranch{}
		branch.Values = append(branch.Values, p.parseCaseValue())
		for p.accept(token.COMMA) {
			branch.Values = append(branch.Values, p.parseCaseValue())
		}
		p.expect(token.COLON)
		branch.Statement = p.parseStatement()
		stmt.Branches = append(stmt.Branches, branch)
		if !p.accept(token.SEMICOLON) {
			break
		}
	}
	if p.accept(token.ELSE) {
		stmt.ElseBranch = p.parseStatement()
		p.accept(token.SEMICOLON)
	}
	p.expect(token.END)
	return stmt
}

// parseCaseValue parses one case-branch label, which may be a plain
// expression or a `lo..hi` range.
func (p *Parser) parseCaseValue() ast.Expression {
	low := p.parseAdditiveExpression()
	if p.curIs(token.RANGE) {
		tok := p.cur
		p.advance()
		high := p.parseAdditiveExpression()
		return &ast.RangeExpression{Token: tok, Low: low, High: high}
	}
	return low
}

func (p *Parser) parseWithStatement() *ast.WithStatement {
	tok := p.cur
	p.expect(token.WITH)
	stmt := &ast.WithStatement{Token: tok}
	stmt.Expressions = append(stmt.Expressions, p.parsePostfixExpression())
	for p.accept(token.COMMA) {
		stmt.Expressions = append(stmt.Expressions, p.parsePostfixExpression())
	}
	p.expect(token.DO)
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseGotoStatement() *ast.GotoStatement {
	tok := p.cur
	p.expect(token.GOTO)
	label := p.expect(token.INT).Literal
	return &ast.GotoStatement{Token: tok, Label: label}
}

func (p *Parser) parseLabelStatement() *ast.LabelStatement {
	tok := p.cur
	label := p.cur.Literal
	p.advance()
	p.expect(token.COLON)
	return &ast.LabelStatement{Token: tok, Label: label, Statement: p.parseStatement()}
}
