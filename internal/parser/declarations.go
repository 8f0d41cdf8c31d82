package parser

import (
	"strings"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/token"
)

func (p *Parser) parseConstantRun() []ast.Declaration {
	p.expect(token.CONST)
	var decls []ast.Declaration
	for p.curIs(token.IDENT) {
		tok := p.cur
		name := p.cur.Literal
		p.advance()
		p.expect(token.EQUAL)
		value := p.parseExpression()
		p.expect(token.SEMICOLON)
		decls = append(decls, &ast.ConstantDeclaration{Token: tok, Name: name, Value: value})
	}
	return decls
}

func (p *Parser) parseTypeRun() []ast.Declaration {
	p.expect(token.TYPE)
	var decls []ast.Declaration
	for p.curIs(token.IDENT) {
		tok := p.cur
		name := p.cur.Literal
		p.advance()
		p.expect(token.EQUAL)
		p.accept(token.PACKED)
		typeText, recordDef := p.parseTypeDefinition()
		p.expect(token.SEMICOLON)
		decls = append(decls, &ast.TypeDeclaration{Token: tok, Name: name, TypeText: typeText, RecordDef: recordDef})
	}
	return decls
}

func (p *Parser) parseVariableRun() []ast.Declaration {
	p.expect(token.VAR)
	var decls []ast.Declaration
	for p.curIs(token.IDENT) {
		decls = append(decls, p.parseOneVariableDeclaration())
	}
	return decls
}

func (p *Parser) parseOneVariableDeclaration() *ast.VariableDeclaration {
	tok := p.cur
	names := []string{p.expect(token.IDENT).Literal}
	for p.accept(token.COMMA) {
		names = append(names, p.expect(token.IDENT).Literal)
	}
	p.expect(token.COLON)
	typeText, _ := p.parseTypeDefinition()

	decl := &ast.VariableDeclaration{Token: tok, Names: names, TypeText: typeText}
	if p.accept(token.EQUAL) {
		decl.Init = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	return decl
}

func (p *Parser) parseLabelDeclaration() *ast.LabelDeclaration {
	tok := p.cur
	p.expect(token.LABEL)
	decl := &ast.LabelDeclaration{Token: tok}
	decl.Labels = append(decl.Labels, p.expect(token.INT).Literal)
	for p.accept(token.COMMA) {
		decl.Labels = append(decl.Labels, p.expect(token.INT).Literal)
	}
	p.expect(token.SEMICOLON)
	return decl
}

// parseTypeName parses a bare type reference: a base keyword, a
// pointer, a bounded string, or a plain identifier alias. Shapes that
// need their own grammar (array/record/set/enum/subrange) are handled
// by parseTypeDefinition, which this delegates to for anything it
// doesn't recognise as a simple name.
func (p *Parser) parseTypeName() string {
	text, _ := p.parseTypeDefinition()
	return text
}

// parseTypeDefinition consumes one full Pascal type definition and
// returns its verbatim source text (the cross-phase carrier the
// symbol table stores), plus a structural ast.RecordTypeDefinition
// when the shape is a record — so the parser doesn't need to be
// re-invoked later just to recover field names from the text.
func (p *Parser) parseTypeDefinition() (string, *ast.RecordTypeDefinition) {
	switch p.cur.Type {
	case token.CARET:
		p.advance()
		pointee := p.parseTypeName()
		return "^" + pointee, nil

	case token.ARRAY:
		return p.parseArrayTypeText(), nil

	case token.SET:
		p.advance()
		p.expect(token.OF)
		elem := p.parseTypeName()
		return "set of " + elem, nil

	case token.FILE:
		p.advance()
		if p.accept(token.OF) {
			elem := p.parseTypeName()
			return "file of " + elem, nil
		}
		return "file", nil

	case token.RECORD:
		return p.parseRecordTypeText()

	case token.LEFT_PAREN:
		return p.parseEnumTypeText(), nil

	case token.STRING_KW:
		p.advance()
		if p.accept(token.LEFT_BRACKET) {
			n := p.expect(token.INT).Literal
			p.expect(token.RIGHT_BRACKET)
			return "string[" + n + "]", nil
		}
		return "string", nil

	default:
		return p.parseSimpleOrSubrangeType(), nil
	}
}

func (p *Parser) parseArrayTypeText() string {
	var sb strings.Builder
	sb.WriteString("array")
	p.expect(token.ARRAY)
	if p.accept(token.LEFT_BRACKET) {
		sb.WriteString("[")
		sb.WriteString(p.parseSubrangeText())
		for p.accept(token.COMMA) {
			sb.WriteString(",")
			sb.WriteString(p.parseSubrangeText())
		}
		p.expect(token.RIGHT_BRACKET)
		sb.WriteString("]")
	}
	p.expect(token.OF)
	sb.WriteString(" of ")
	sb.WriteString(p.parseTypeName())
	return sb.String()
}

// parseSubrangeText parses one array dimension bound pair ("lo..hi")
// as raw text, since bounds may be integer literals, char literals, or
// enum-member identifiers.
func (p *Parser) parseSubrangeText() string {
	low := p.parseBoundLiteral()
	p.expect(token.RANGE)
	high := p.parseBoundLiteral()
	return low + ".." + high
}

func (p *Parser) parseBoundLiteral() string {
	tok := p.cur
	switch tok.Type {
	case token.INT, token.CHAR, token.IDENT:
		p.advance()
		if tok.Type == token.CHAR {
			return "'" + tok.Literal + "'"
		}
		return tok.Literal
	case token.MINUS:
		p.advance()
		return "-" + p.parseBoundLiteral()
	default:
		p.errorf(tok.Pos, "expected an array bound, found %s", tok.Type)
		p.advance()
		return tok.Literal
	}
}

func (p *Parser) parseEnumTypeText() string {
	var sb strings.Builder
	sb.WriteString("(")
	p.expect(token.LEFT_PAREN)
	sb.WriteString(p.expect(token.IDENT).Literal)
	for p.accept(token.COMMA) {
		sb.WriteString(",")
		sb.WriteString(p.expect(token.IDENT).Literal)
	}
	p.expect(token.RIGHT_PAREN)
	sb.WriteString(")")
	return sb.String()
}

// parseSimpleOrSubrangeType handles a bare base-type keyword or
// identifier, an identifier with a `..` subrange tail (e.g.
// `1..100`, `'a'..'z'`), or a plain named-type alias.
func (p *Parser) parseSimpleOrSubrangeType() string {
	switch p.cur.Type {
	case token.INTEGER, token.REALTYPE, token.BOOLEAN, token.CHARTYPE, token.BYTE, token.TEXT:
		name := p.cur.Literal
		p.advance()
		return name
	}
	first := p.parseBoundLiteral()
	if p.curIs(token.RANGE) {
		p.advance()
		high := p.parseBoundLiteral()
		return first + ".." + high
	}
	return first
}

func (p *Parser) parseRecordTypeText() (string, *ast.RecordTypeDefinition) {
	p.expect(token.RECORD)
	def := &ast.RecordTypeDefinition{}
	var sb strings.Builder
	sb.WriteString("record ")

	first := true
	for !p.curIs(token.END) && !p.curIs(token.CASE) && !p.curIs(token.EOF) {
		if !first {
			sb.WriteString("; ")
		}
		first = false
		names := []string{p.expect(token.IDENT).Literal}
		for p.accept(token.COMMA) {
			names = append(names, p.expect(token.IDENT).Literal)
		}
		p.expect(token.COLON)
		fieldType := p.parseTypeName()
		sb.WriteString(strings.Join(names, ", "))
		sb.WriteString(": ")
		sb.WriteString(fieldType)
		for _, n := range names {
			def.Fields = append(def.Fields, ast.RecordField{Name: n, Type: fieldType})
		}
		p.accept(token.SEMICOLON)
	}

	if p.curIs(token.CASE) {
		variantText, variant := p.parseVariantPart()
		sb.WriteString("; case ")
		sb.WriteString(variantText)
		def.Variant = variant
	}

	p.expect(token.END)
	sb.WriteString(" end")
	return sb.String(), def
}

func (p *Parser) parseVariantPart() (string, *ast.VariantPart) {
	p.expect(token.CASE)
	vp := &ast.VariantPart{}
	var sb strings.Builder

	name := p.expect(token.IDENT).Literal
	if p.accept(token.COLON) {
		vp.SelectorName = name
		vp.SelectorType = p.parseTypeName()
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(vp.SelectorType)
	} else {
		vp.SelectorType = name
		sb.WriteString(name)
	}
	p.expect(token.OF)
	sb.WriteString(" of ")

	first := true
	for !p.curIs(token.END) && !p.curIs(token.EOF) {
		if !first {
			sb.WriteString("; ")
		}
		first = false

		var vc ast.VariantCase
		vc.Values = append(vc.Values, p.parseBoundLiteral())
		for p.accept(token.COMMA) {
			vc.Values = append(vc.Values, p.parseBoundLiteral())
		}
		p.expect(token.COLON)
		p.expect(token.LEFT_PAREN)
		sb.WriteString(strings.Join(vc.Values, ", "))
		sb.WriteString(": (")

		fFirst := true
		for !p.curIs(token.RIGHT_PAREN) && !p.curIs(token.EOF) {
			if !fFirst {
				sb.WriteString("; ")
			}
			fFirst = false
			names := []string{p.expect(token.IDENT).Literal}
			for p.accept(token.COMMA) {
				names = append(names, p.expect(token.IDENT).Literal)
			}
			p.expect(token.COLON)
			fieldType := p.parseTypeName()
			sb.WriteString(strings.Join(names, ", "))
			sb.WriteString(": ")
			sb.WriteString(fieldType)
			for _, n := range names {
				vc.Fields = append(vc.Fields, ast.RecordField{Name: n, Type: fieldType})
			}
			p.accept(token.SEMICOLON)
		}
		p.expect(token.RIGHT_PAREN)
		sb.WriteString(")")
		p.accept(token.SEMICOLON)

		vp.Cases = append(vp.Cases, vc)
	}
	return sb.String(), vp
}

// parseParameterList parses a procedure/function's `(...)` parameter
// section, grouping value/var/const parameters into one
// VariableDeclaration per group (matching Pascal's "a, b: integer"
// grouping rather than one node per name).
func (p *Parser) parseParameterList() []*ast.VariableDeclaration {
	var params []*ast.VariableDeclaration
	if !p.accept(token.LEFT_PAREN) {
		return params
	}
	for !p.curIs(token.RIGHT_PAREN) && !p.curIs(token.EOF) {
		mode := ast.ModeValue
		switch p.cur.Type {
		case token.VAR:
			mode = ast.ModeVar
			p.advance()
		case token.CONST:
			mode = ast.ModeConst
			p.advance()
		}
		tok := p.cur
		names := []string{p.expect(token.IDENT).Literal}
		for p.accept(token.COMMA) {
			names = append(names, p.expect(token.IDENT).Literal)
		}
		p.expect(token.COLON)
		typeText := p.parseTypeName()
		params = append(params, &ast.VariableDeclaration{Token: tok, Names: names, TypeText: typeText, Mode: mode})
		if !p.accept(token.SEMICOLON) {
			break
		}
	}
	p.expect(token.RIGHT_PAREN)
	return params
}

func (p *Parser) parseProcedureDeclaration() *ast.ProcedureDeclaration {
	tok := p.cur
	p.expect(token.PROCEDURE)
	name := p.expect(token.IDENT).Literal
	params := p.parseParameterList()
	p.expect(token.SEMICOLON)

	decl := &ast.ProcedureDeclaration{Token: tok, Name: name, Parameters: params}
	decl.IsForward, decl.IsOverload = p.parseRoutineDirectives()
	if decl.IsForward {
		return decl
	}

	decl.Locals = p.parseDeclarations()
	decl.Body = p.parseCompoundStatement()
	p.expect(token.SEMICOLON)
	return decl
}

func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	tok := p.cur
	p.expect(token.FUNCTION)
	name := p.expect(token.IDENT).Literal
	params := p.parseParameterList()
	p.expect(token.COLON)
	returnType := p.parseTypeName()
	p.expect(token.SEMICOLON)

	decl := &ast.FunctionDeclaration{Token: tok, Name: name, Parameters: params, ReturnType: returnType}
	decl.IsForward, decl.IsOverload = p.parseRoutineDirectives()
	if decl.IsForward {
		return decl
	}

	decl.Locals = p.parseDeclarations()
	decl.Body = p.parseCompoundStatement()
	p.expect(token.SEMICOLON)
	return decl
}

// parseRoutineDirectives consumes any `forward;` / `overload;` /
// `external;` trailer after a routine header, in the order Turbo
// Pascal accepts them (possibly more than one, each terminated by its
// own semicolon).
func (p *Parser) parseRoutineDirectives() (isForward, isOverload bool) {
	for {
		switch {
		case p.curIs(token.FORWARD):
			p.advance()
			p.expect(token.SEMICOLON)
			isForward = true
		case p.curIs(token.IDENT) && lowerEq(p.cur.Literal, "overload"):
			p.advance()
			p.expect(token.SEMICOLON)
			isOverload = true
		case p.curIs(token.EXTERNAL):
			p.advance()
			p.expect(token.SEMICOLON)
		default:
			return isForward, isOverload
		}
	}
}

func lowerEq(s, want string) bool {
	if len(s) != len(want) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != want[i] {
			return false
		}
	}
	return true
}
