package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/token"
	"github.com/daver64/tp2cpp/internal/types"
)

// operatorCpp maps a Pascal binary/unary operator token to its C++
// spelling, grounded verbatim on mapPascalOperatorToCpp's table in
// _examples/original_source/src/codegen/cpp_generator.cpp, ending in
// the same `/* UNKNOWN_OP */` fallback for anything outside the table.
func operatorCpp(op token.Type) string {
	switch op {
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.MULTIPLY:
		return "*"
	case token.DIVIDE:
		return "/"
	case token.DIV:
		return "/"
	case token.MOD:
		return "%"
	case token.EQUAL:
		return "=="
	case token.NOT_EQUAL:
		return "!="
	case token.LESS_THAN:
		return "<"
	case token.LESS_EQUAL:
		return "<="
	case token.GREATER_THAN:
		return ">"
	case token.GREATER_EQUAL:
		return ">="
	case token.AND:
		return "&&"
	case token.OR:
		return "||"
	case token.NOT:
		return "!"
	case token.XOR:
		return "^"
	case token.SHL:
		return "<<"
	case token.SHR:
		return ">>"
	default:
		return "/* UNKNOWN_OP */"
	}
}

// emitExpr is the central expression dispatch, a type-switch rather than
// the Visitor interface: the two places codegen genuinely needs to look
// at a concrete node regardless of static dispatch — string-vs-numeric
// `+`, and a dereference feeding a field access rewritten to `->` — are
// handled inline here.
func (g *Generator) emitExpr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Identifier:
		return g.emitIdentifier(n)
	case *ast.Literal:
		return g.emitLiteral(n)
	case *ast.BinaryExpression:
		return g.emitBinary(n)
	case *ast.UnaryExpression:
		return g.emitUnary(n)
	case *ast.AddressOfExpression:
		return "&(" + g.emitExpr(n.Operand) + ")"
	case *ast.DereferenceExpression:
		return "(*" + g.emitExpr(n.Operand) + ")"
	case *ast.CallExpression:
		return g.emitCall(n)
	case *ast.FieldAccessExpression:
		return g.emitFieldAccess(n)
	case *ast.ArrayIndexExpression:
		return g.emitArrayIndex(n)
	case *ast.RangeExpression:
		// Only meaningful inside a set literal or case-branch value list;
		// both callers destructure Low/High themselves rather than
		// calling emitExpr on a bare RangeExpression.
		return "/* UNKNOWN_OP */"
	case *ast.SetLiteralExpression:
		return g.emitSetLiteral(n)
	case *ast.FormattedExpression:
		return g.emitExpr(n.Value)
	default:
		return "/* UNKNOWN_OP */"
	}
}

func (g *Generator) emitIdentifier(id *ast.Identifier) string {
	if id.IsWithFieldAccess() {
		return strings.Join(sanitizeIdents(strings.Split(id.WithVariable, ".")), ".") + "." + id.Value
	}
	if id.Value == "" {
		return "/* UNKNOWN_OP */"
	}
	// CRT color constants (Red, Green, LightBlue, ...) are never real
	// declarations this engine can see — the Crt unit has no .pas source
	// for the unit loader to resolve — so they only fold to their
	// literal value when the identifier isn't otherwise a real symbol
	// (a program's own enum member or variable of the same spelling
	// always wins).
	if _, ok := g.Symbols.Lookup(id.Value); !ok {
		if v, ok := CrtColorConstantsValue(id.Value); ok {
			return strconv.Itoa(v)
		}
	}
	if strings.EqualFold(id.Value, g.currentFunction) {
		return g.currentFunction + "_result"
	}
	return sanitizeIdent(id.Value)
}

// CrtColorConstantsValue resolves a bare name to the CRT color-constant
// table's literal value so `textcolor(lightblue)` folds to the integer
// the runtime expects, mirroring the original generator's constant
// folding for these identifiers.
func CrtColorConstantsValue(name string) (int, bool) {
	v, ok := crtColorLookup[strings.ToLower(name)]
	return v, ok
}

var crtColorLookup = buildCrtColorLookup()

func buildCrtColorLookup() map[string]int {
	m := map[string]int{
		"black": 0, "blue": 1, "green": 2, "cyan": 3, "red": 4, "magenta": 5,
		"brown": 6, "lightgray": 7, "darkgray": 8, "lightblue": 9,
		"lightgreen": 10, "lightcyan": 11, "lightred": 12, "lightmagenta": 13,
		"yellow": 14, "white": 15, "blink": 128,
	}
	return m
}

func (g *Generator) emitLiteral(l *ast.Literal) string {
	switch l.Kind {
	case ast.LiteralInt:
		return l.Text
	case ast.LiteralReal:
		return l.Text
	case ast.LiteralBool:
		return strings.ToLower(l.Text)
	case ast.LiteralNil:
		return "nullptr"
	case ast.LiteralString:
		return "std::string(\"" + escapeCppString(l.Text) + "\")"
	case ast.LiteralChar:
		return emitCharLiteral(l.Text)
	default:
		return "/* UNKNOWN_OP */"
	}
}

// emitCharLiteral handles both the `'x'` and `#65` Pascal char-literal
// spellings, emitting a C++ char literal either way.
func emitCharLiteral(text string) string {
	if strings.HasPrefix(text, "#") {
		if n, err := strconv.Atoi(text[1:]); err == nil {
			return fmt.Sprintf("static_cast<char>(%d)", n)
		}
		return "/* UNKNOWN_OP */"
	}
	if text == "'" {
		return "'\\''"
	}
	inner := strings.Trim(text, "'")
	return "'" + inner + "'"
}

func escapeCppString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString("\\\"")
		case '\\':
			b.WriteString("\\\\")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isStringTyped reports whether e is known to produce a Pascal string
// or char value, the test the `+` operator needs to decide between
// numeric addition and string concatenation (spec.md §4.5 "string `+`
// wrapping").
func isStringTyped(e ast.Expression) bool {
	dt, _ := typeNameOf(e)
	return dt == types.String || dt == types.Char
}

func (g *Generator) emitBinary(b *ast.BinaryExpression) string {
	switch b.Operator {
	case token.IN:
		return g.emitInExpression(b)
	case token.PLUS:
		if isStringTyped(b.Left) || isStringTyped(b.Right) {
			return g.wrapStringConcat(b.Left, b.Right)
		}
	case token.EQUAL, token.NOT_EQUAL:
		if g.isSetTyped(b.Left) || g.isSetTyped(b.Right) {
			return g.emitSetComparison(b)
		}
	}
	if isSetAlgebraOperator(b.Operator) && (g.isSetTyped(b.Left) || g.isSetTyped(b.Right)) {
		return g.emitSetAlgebra(b)
	}
	left := g.emitExpr(b.Left)
	right := g.emitExpr(b.Right)
	return "(" + left + " " + operatorCpp(b.Operator) + " " + right + ")"
}

// wrapStringConcat ensures a char operand mixed with a string is
// promoted through std::string before `+`, since `char + char` in C++
// is integer promotion, not concatenation.
func (g *Generator) wrapStringConcat(left, right ast.Expression) string {
	l := g.emitExpr(left)
	r := g.emitExpr(right)
	dtL, _ := typeNameOf(left)
	dtR, _ := typeNameOf(right)
	if dtL == types.Char {
		l = "std::string(1, " + l + ")"
	}
	if dtR == types.Char {
		r = "std::string(1, " + r + ")"
	}
	return "(" + l + " + " + r + ")"
}

func (g *Generator) isSetTyped(e ast.Expression) bool {
	if _, ok := e.(*ast.SetLiteralExpression); ok {
		return true
	}
	_, typeName := typeNameOf(e)
	return types.LooksLikeSet(typeName)
}

func isSetAlgebraOperator(op token.Type) bool {
	switch op {
	case token.PLUS, token.MINUS, token.MULTIPLY:
		return true
	default:
		return false
	}
}

// emitSetAlgebra renders set union/intersection/difference as an
// immediately-invoked lambda building a fresh std::set via the
// matching std::set_* algorithm, matching cpp_generator.cpp's lambda
// wrapping shape rather than operator overloading.
func (g *Generator) emitSetAlgebra(b *ast.BinaryExpression) string {
	algo := map[token.Type]string{
		token.PLUS:     "std::set_union",
		token.MINUS:    "std::set_difference",
		token.MULTIPLY: "std::set_intersection",
	}[b.Operator]
	left := g.emitExpr(b.Left)
	right := g.emitExpr(b.Right)
	return "([&]() { auto __lhs = " + left + "; auto __rhs = " + right +
		"; std::decay_t<decltype(__lhs)> __result; " + algo +
		"(__lhs.begin(), __lhs.end(), __rhs.begin(), __rhs.end(), " +
		"std::inserter(__result, __result.begin())); return __result; })()"
}

func (g *Generator) emitSetComparison(b *ast.BinaryExpression) string {
	left := g.emitExpr(b.Left)
	right := g.emitExpr(b.Right)
	if b.Operator == token.NOT_EQUAL {
		return "(!(" + left + " == " + right + "))"
	}
	return "(" + left + " == " + right + ")"
}

// emitInExpression renders `x in s` as an immediately-invoked lambda
// calling std::set::count, matching cpp_generator.cpp's `in`-lambda
// shape.
func (g *Generator) emitInExpression(b *ast.BinaryExpression) string {
	value := g.emitExpr(b.Left)
	set := g.emitExpr(b.Right)
	return "([&]() { auto __set = " + set + "; return __set.count(" + value + ") > 0; })()"
}

func (g *Generator) emitUnary(u *ast.UnaryExpression) string {
	operand := g.emitExpr(u.Operand)
	switch u.Operator {
	case token.NOT:
		return "(!" + operand + ")"
	case token.MINUS:
		return "(-" + operand + ")"
	case token.PLUS:
		return "(+" + operand + ")"
	default:
		return "/* UNKNOWN_OP */"
	}
}

// emitFieldAccess rewrites `.` to `->` when Object is itself a
// dereference, the other concrete-type-dependent case named in
// emitExpr's comment: `p^.field` in Pascal reads
// naturally as `p->field` in C++ rather than `(*p).field`.
func (g *Generator) emitFieldAccess(f *ast.FieldAccessExpression) string {
	if deref, ok := f.Object.(*ast.DereferenceExpression); ok {
		return g.emitExpr(deref.Operand) + "->" + sanitizeIdent(f.FieldName)
	}
	return g.emitExpr(f.Object) + "." + sanitizeIdent(f.FieldName)
}

// emitArrayIndex renders a (possibly multi-dimensional) index
// expression. Pascal strings index from 1; every other array indexes
// from its declared lower bound, so each dimension subtracts its low
// bound before a flattened row-major index is built across the
// remaining dimensions (spec.md §4.5 "multi-dim array index formula").
func (g *Generator) emitArrayIndex(a *ast.ArrayIndexExpression) string {
	base := g.emitExpr(a.Array)
	dt, _ := typeNameOf(a.Array)
	if dt == types.String && len(a.Indices) == 1 {
		return base + "[" + g.emitExpr(a.Indices[0]) + " - 1]"
	}

	desc, ok := g.arrayDescriptorFor(a.Array)
	if !ok || len(desc.Dimensions) != len(a.Indices) {
		// Fall back to chained single-dim indexing; still valid C++ for
		// std::vector<std::vector<...>> shapes even without a descriptor.
		expr := base
		for _, idx := range a.Indices {
			expr += "[" + g.emitExpr(idx) + "]"
		}
		return expr
	}

	if len(desc.Dimensions) == 1 {
		offset := g.dimensionOffset(a.Indices[0], desc.Dimensions[0])
		return base + "[" + offset + "]"
	}

	// Row-major flattened index: idx0*len(dim1..n) + idx1*len(dim2..n) + ... + idxN
	var terms []string
	for i, dim := range desc.Dimensions {
		term := g.dimensionOffset(a.Indices[i], dim)
		for j := i + 1; j < len(desc.Dimensions); j++ {
			term = "(" + term + ") * " + strconv.Itoa(arrayDimensionLength(desc.Dimensions[j]))
		}
		terms = append(terms, term)
	}
	return base + "[" + strings.Join(terms, " + ") + "]"
}

func (g *Generator) dimensionOffset(idx ast.Expression, dim types.ArrayDimension) string {
	rendered := g.emitExpr(idx)
	if dim.IsCharDim {
		low := firstRune(dim.Low)
		return "(" + rendered + " - '" + string(low) + "')"
	}
	low, err := strconv.Atoi(strings.TrimSpace(dim.Low))
	if err != nil || low == 0 {
		return rendered
	}
	return "(" + rendered + " - " + strconv.Itoa(low) + ")"
}

// emitSetLiteral expands each element (plain value or a..b range) into
// an immediately-invoked lambda building a std::set, matching
// cpp_generator.cpp's set-literal lambda shape.
func (g *Generator) emitSetLiteral(s *ast.SetLiteralExpression) string {
	elemType := g.setLiteralElementType(s)
	var b strings.Builder
	b.WriteString("([&]() { std::set<" + elemType + "> __s; ")
	for _, elem := range s.Elements {
		if rng, ok := elem.(*ast.RangeExpression); ok {
			low := g.emitExpr(rng.Low)
			high := g.emitExpr(rng.High)
			b.WriteString("for (auto __v = " + low + "; __v <= " + high + "; ++__v) __s.insert(__v); ")
			continue
		}
		b.WriteString("__s.insert(" + g.emitExpr(elem) + "); ")
	}
	b.WriteString("return __s; })()")
	return b.String()
}

// setLiteralElementType guesses the C++ element type for an untyped
// set-literal by inspecting its first element, defaulting to int when
// the literal is empty. Pascal set literals carry no separate element
// type annotation, so this heuristic (first-element inspection) is the
// best information codegen has.
func (g *Generator) setLiteralElementType(s *ast.SetLiteralExpression) string {
	if len(s.Elements) == 0 {
		return "int"
	}
	first := s.Elements[0]
	if rng, ok := first.(*ast.RangeExpression); ok {
		first = rng.Low
	}
	dt, _ := typeNameOf(first)
	switch dt {
	case types.Char:
		return "char"
	case types.String:
		return "std::string"
	default:
		return "int"
	}
}
