package parser

import (
	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/token"
)

// parseExpression is the entry point; Pascal's fixed precedence chain
// bottoms out here rather than at a general Pratt loop, since the
// operator set and its precedence are both closed and small.
func (p *Parser) parseExpression() ast.Expression {
	return p.parseOrExpression()
}

func (p *Parser) parseOrExpression() ast.Expression {
	left := p.parseAndExpression()
	for p.curIs(token.OR) || p.curIs(token.XOR) {
		tok := p.cur
		op := p.cur.Type
		p.advance()
		right := p.parseAndExpression()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseAndExpression() ast.Expression {
	left := p.parseEqualityExpression()
	for p.curIs(token.AND) {
		tok := p.cur
		p.advance()
		right := p.parseEqualityExpression()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: token.AND, Right: right}
	}
	return left
}

func (p *Parser) parseEqualityExpression() ast.Expression {
	left := p.parseRelationalExpression()
	for p.curIs(token.EQUAL) || p.curIs(token.NOT_EQUAL) || p.curIs(token.IN) {
		tok := p.cur
		op := p.cur.Type
		p.advance()
		right := p.parseRelationalExpression()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseRelationalExpression() ast.Expression {
	left := p.parseAdditiveExpression()
	for p.curIs(token.LESS_THAN) || p.curIs(token.LESS_EQUAL) ||
		p.curIs(token.GREATER_THAN) || p.curIs(token.GREATER_EQUAL) {
		tok := p.cur
		op := p.cur.Type
		p.advance()
		right := p.parseAdditiveExpression()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseAdditiveExpression() ast.Expression {
	left := p.parseMultiplicativeExpression()
	for p.curIs(token.PLUS) || p.curIs(token.MINUS) {
		tok := p.cur
		op := p.cur.Type
		p.advance()
		right := p.parseMultiplicativeExpression()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicativeExpression() ast.Expression {
	left := p.parseUnaryExpression()
	for isMultiplicativeOp(p.cur.Type) {
		tok := p.cur
		op := p.cur.Type
		p.advance()
		right := p.parseUnaryExpression()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right}
	}
	return left
}

func isMultiplicativeOp(t token.Type) bool {
	switch t {
	case token.MULTIPLY, token.DIVIDE, token.DIV, token.MOD, token.SHL, token.SHR:
		return true
	default:
		return false
	}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	switch p.cur.Type {
	case token.NOT:
		tok := p.cur
		p.advance()
		return &ast.UnaryExpression{Token: tok, Operator: token.NOT, Operand: p.parseUnaryExpression()}
	case token.MINUS, token.PLUS:
		tok := p.cur
		op := p.cur.Type
		p.advance()
		return &ast.UnaryExpression{Token: tok, Operator: op, Operand: p.parseUnaryExpression()}
	case token.AT:
		tok := p.cur
		p.advance()
		return &ast.AddressOfExpression{Token: tok, Operand: p.parseUnaryExpression()}
	default:
		return p.parsePostfixExpression()
	}
}

// parsePostfixExpression parses a primary expression followed by any
// chain of call/index/field/dereference suffixes, e.g. `a.b[i]^.c(x)`.
func (p *Parser) parsePostfixExpression() ast.Expression {
	expr := p.parsePrimaryExpression()
	for {
		switch p.cur.Type {
		case token.LEFT_PAREN:
			expr = p.parseCallSuffix(expr)
		case token.LEFT_BRACKET:
			expr = p.parseIndexSuffix(expr)
		case token.PERIOD:
			expr = p.parseFieldSuffix(expr)
		case token.CARET:
			tok := p.cur
			p.advance()
			expr = &ast.DereferenceExpression{Token: tok, Operand: expr}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallSuffix(callee ast.Expression) ast.Expression {
	tok := p.cur
	p.expect(token.LEFT_PAREN)
	call := &ast.CallExpression{Token: tok, Callee: callee}
	for !p.curIs(token.RIGHT_PAREN) && !p.curIs(token.EOF) {
		arg := p.parseExpression()
		if p.curIs(token.COLON) {
			arg = p.tryParseFormatSuffix(arg)
		}
		call.Arguments = append(call.Arguments, arg)
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RIGHT_PAREN)
	return call
}

func (p *Parser) parseIndexSuffix(array ast.Expression) ast.Expression {
	tok := p.cur
	p.expect(token.LEFT_BRACKET)
	idx := &ast.ArrayIndexExpression{Token: tok, Array: array}
	idx.Indices = append(idx.Indices, p.parseExpression())
	for p.accept(token.COMMA) {
		idx.Indices = append(idx.Indices, p.parseExpression())
	}
	p.expect(token.RIGHT_BRACKET)
	return idx
}

func (p *Parser) parseFieldSuffix(object ast.Expression) ast.Expression {
	tok := p.cur
	p.expect(token.PERIOD)
	field := p.expect(token.IDENT).Literal
	return &ast.FieldAccessExpression{Token: tok, Object: object, FieldName: field}
}

// tryParseFormatSuffix only applies inside a write/writeln argument
// list, where `expr:width` and `expr:width:precision` are format
// specifiers rather than a statement label colon; parseCallSuffix is
// its only caller, on a ':' seen directly after an argument expression,
// so a ':' anywhere else (a case label, a statement label) is never
// taken as a format specifier.
func (p *Parser) tryParseFormatSuffix(value ast.Expression) ast.Expression {
	tok := p.cur
	p.advance()
	width := p.parseAdditiveExpression()
	fe := &ast.FormattedExpression{Token: tok, Value: value, Width: width}
	if p.accept(token.COLON) {
		fe.Precision = p.parseAdditiveExpression()
	}
	return fe
}

func (p *Parser) parsePrimaryExpression() ast.Expression {
	tok := p.cur
	switch tok.Type {
	case token.INT:
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralInt, Text: tok.Literal}
	case token.REAL:
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralReal, Text: tok.Literal}
	case token.STRING:
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralString, Text: tok.Literal}
	case token.CHAR:
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralChar, Text: tok.Literal}
	case token.TRUE, token.FALSE:
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralBool, Text: tok.Literal}
	case token.NIL:
		p.advance()
		return &ast.Literal{Token: tok, Kind: ast.LiteralNil, Text: tok.Literal}
	case token.IDENT:
		p.advance()
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	case token.LEFT_PAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RIGHT_PAREN)
		return expr
	case token.LEFT_BRACKET:
		return p.parseSetLiteral()
	default:
		p.errorf(tok.Pos, "unexpected token %s %q in expression", tok.Type, tok.Literal)
		if !isExpressionBoundary(tok.Type) {
			p.advance()
		}
		return &ast.Literal{Token: tok, Kind: ast.LiteralInt, Text: "0"}
	}
}

// isExpressionBoundary reports whether t is a token that can legitimately
// follow an expression. parsePrimaryExpression's error path leaves such a
// token in place rather than consuming it, so a malformed expression
// doesn't swallow the statement separator or closing delimiter a caller
// further up the chain needs to see.
func isExpressionBoundary(t token.Type) bool {
	switch t {
	case token.SEMICOLON, token.END, token.UNTIL, token.ELSE, token.EOF,
		token.RIGHT_PAREN, token.RIGHT_BRACKET, token.COMMA, token.COLON,
		token.DO, token.THEN, token.OF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseSetLiteral() ast.Expression {
	tok := p.cur
	p.expect(token.LEFT_BRACKET)
	lit := &ast.SetLiteralExpression{Token: tok}
	if !p.curIs(token.RIGHT_BRACKET) {
		lit.Elements = append(lit.Elements, p.parseSetElement())
		for p.accept(token.COMMA) {
			lit.Elements = append(lit.Elements, p.parseSetElement())
		}
	}
	p.expect(token.RIGHT_BRACKET)
	return lit
}

func (p *Parser) parseSetElement() ast.Expression {
	low := p.parseAdditiveExpression()
	if p.curIs(token.RANGE) {
		tok := p.cur
		p.advance()
		high := p.parseAdditiveExpression()
		return &ast.RangeExpression{Token: tok, Low: low, High: high}
	}
	return low
}
