package semantic

import (
	"github.com/daver64/tp2cpp/internal/ast"
	"github.com/daver64/tp2cpp/internal/token"
	"github.com/daver64/tp2cpp/internal/types"
)

// analyzeExpr infers expr's type, stamps it onto the node's embedded
// TypeInfo, and returns it so callers composing larger expressions
// don't need a second type assertion.
func (a *Analyzer) analyzeExpr(expr ast.Expression) types.DataType {
	if expr == nil {
		return types.Unknown
	}
	dt, typeName := a.inferExpr(expr)
	if t, ok := expr.(ast.Typed); ok {
		t.SetType(dt)
		if typeName != "" {
			t.SetTypeName(typeName)
		}
	}
	return dt
}

func (a *Analyzer) inferExpr(expr ast.Expression) (types.DataType, string) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalType(e), ""

	case *ast.Identifier:
		return a.resolveIdentifier(e)

	case *ast.BinaryExpression:
		return a.inferBinary(e)

	case *ast.UnaryExpression:
		operand := a.analyzeExpr(e.Operand)
		if e.Operator == token.NOT {
			return types.Boolean, ""
		}
		return operand, ""

	case *ast.AddressOfExpression:
		a.analyzeExpr(e.Operand)
		return types.Pointer, ""

	case *ast.DereferenceExpression:
		operandType := a.analyzeExpr(e.Operand)
		if operandType != types.Pointer {
			a.errorf(e.Pos(), "cannot dereference a non-pointer expression")
		}
		if id, ok := e.Operand.(*ast.Identifier); ok {
			if sym, ok := a.Symbols.Lookup(id.Value); ok {
				return sym.PointeeType, sym.PointeeTypeName
			}
		}
		return types.Unknown, ""

	case *ast.CallExpression:
		return a.inferCall(e)

	case *ast.FieldAccessExpression:
		return a.inferFieldAccess(e)

	case *ast.ArrayIndexExpression:
		return a.inferArrayIndex(e)

	case *ast.RangeExpression:
		a.analyzeExpr(e.Low)
		a.analyzeExpr(e.High)
		return types.Unknown, ""

	case *ast.SetLiteralExpression:
		for _, el := range e.Elements {
			a.analyzeExpr(el)
		}
		return types.Custom, "set"

	case *ast.FormattedExpression:
		dt, tn := a.inferExpr(e.Value)
		if e.Width != nil {
			a.analyzeExpr(e.Width)
		}
		if e.Precision != nil {
			a.analyzeExpr(e.Precision)
		}
		return dt, tn

	default:
		return types.Unknown, ""
	}
}

func literalType(lit *ast.Literal) types.DataType {
	switch lit.Kind {
	case ast.LiteralInt:
		return types.Integer
	case ast.LiteralReal:
		return types.Real
	case ast.LiteralString:
		return types.String
	case ast.LiteralChar:
		return types.Char
	case ast.LiteralBool:
		return types.Boolean
	case ast.LiteralNil:
		return types.Pointer
	default:
		return types.Unknown
	}
}

// resolveIdentifier looks the name up in the active scope chain, and
// failing that, against every with-frame innermost-first, stamping
// WithVariable on the node when a with-frame's record supplies the
// field. This stamp is the only information the generator needs to
// turn the bare name into a qualified field access.
func (a *Analyzer) resolveIdentifier(id *ast.Identifier) (types.DataType, string) {
	if sym, ok := a.Symbols.Lookup(id.Value); ok {
		if sym.Kind == SymFunction {
			return sym.ReturnType, ""
		}
		return sym.DataType, sym.TypeName
	}

	if variable, fieldType, ok := a.with.resolveField(id.Value, a.lookupTypeText); ok {
		id.WithVariable = variable
		return types.ResolveDataType(fieldType), fieldType
	}

	if IsBuiltin(id.Value) {
		return types.Unknown, ""
	}

	a.errorf(id.Pos(), "undefined identifier '%s'", id.Value)
	return types.Unknown, ""
}

func (a *Analyzer) inferBinary(e *ast.BinaryExpression) (types.DataType, string) {
	left := a.analyzeExpr(e.Left)
	right := a.analyzeExpr(e.Right)

	switch e.Operator {
	case token.EQUAL, token.NOT_EQUAL, token.LESS_THAN, token.LESS_EQUAL,
		token.GREATER_THAN, token.GREATER_EQUAL, token.AND, token.OR:
		return types.Boolean, ""
	case token.PLUS:
		if left == types.String || right == types.String {
			return types.String, ""
		}
		return resultNumericType(left, right), ""
	case token.DIVIDE:
		return types.Real, ""
	default:
		return resultNumericType(left, right), ""
	}
}

func resultNumericType(a, b types.DataType) types.DataType {
	if a == types.Real || b == types.Real {
		return types.Real
	}
	if a == types.Unknown {
		return b
	}
	return a
}

func (a *Analyzer) inferCall(e *ast.CallExpression) (types.DataType, string) {
	for _, arg := range e.Arguments {
		a.analyzeExpr(arg)
	}

	id, isIdent := e.Callee.(*ast.Identifier)
	if !isIdent {
		a.analyzeExpr(e.Callee)
		return types.Unknown, ""
	}

	if IsBuiltin(id.Value) {
		return builtinReturnType(lower(id.Value)), ""
	}

	candidates := a.Symbols.LookupFunction(id.Value)
	if len(candidates) == 0 {
		a.errorf(id.Pos(), "call to undeclared routine '%s'", id.Value)
		return types.Unknown, ""
	}

	argTypes := make([]types.DataType, len(e.Arguments))
	for i, arg := range e.Arguments {
		argTypes[i] = exprType(arg)
	}
	match := ResolveOverload(candidates, argTypes)
	if match == nil {
		a.errorf(id.Pos(), "no overload of '%s' accepts %d argument(s)", id.Value, len(e.Arguments))
		return types.Unknown, ""
	}
	return match.ReturnType, ""
}

// builtinReturnType covers the subset of builtins whose result type
// matters for further type inference (e.g. nesting `length(s) + 1`);
// builtins used only in statement position (writeln, inc) are never
// queried for a return type.
func builtinReturnType(name string) types.DataType {
	switch name {
	case "length", "pos", "ord", "round", "trunc", "filesize", "filepos",
		"paramcount", "random", "strtoint", "wherex", "wherey", "dayofweek":
		return types.Integer
	case "chr", "upcase":
		return types.Char
	case "copy", "concat", "trim", "trimleft", "trimright", "lowercase",
		"uppercase", "inttostr", "floattostr", "leftstr", "rightstr",
		"padleft", "padright", "stringofchar", "datetostr", "timetostr",
		"paramstr", "getenv", "getcurrentdir":
		return types.String
	case "abs", "sqr", "sqrt", "sin", "cos", "tan", "arctan", "exp", "ln",
		"strtofloat":
		return types.Real
	case "eof", "keypressed", "fileexists", "directoryexists":
		return types.Boolean
	default:
		return types.Unknown
	}
}

func (a *Analyzer) inferFieldAccess(e *ast.FieldAccessExpression) (types.DataType, string) {
	objType, objTypeName := a.inferObjectType(e.Object)
	if objType != types.Custom || objTypeName == "" {
		a.errorf(e.Pos(), "field access on a non-record expression")
		return types.Unknown, ""
	}

	recordText, ok := a.lookupTypeText(objTypeName)
	if !ok {
		a.errorf(e.Pos(), "unknown record type '%s'", objTypeName)
		return types.Unknown, ""
	}
	desc, isRecord := types.ParseRecordType(recordText)
	if !isRecord {
		a.errorf(e.Pos(), "'%s' is not a record type", objTypeName)
		return types.Unknown, ""
	}
	for _, f := range desc.Fields {
		if lower(f.Name) == lower(e.FieldName) {
			return types.ResolveDataType(f.Type), f.Type
		}
	}
	if desc.Variant != nil {
		for _, vc := range desc.Variant.Cases {
			for _, f := range vc.Fields {
				if lower(f.Name) == lower(e.FieldName) {
					return types.ResolveDataType(f.Type), f.Type
				}
			}
		}
		if lower(desc.Variant.SelectorName) == lower(e.FieldName) {
			return types.ResolveDataType(desc.Variant.SelectorType), desc.Variant.SelectorType
		}
	}
	a.errorf(e.Pos(), "record type '%s' has no field '%s'", objTypeName, e.FieldName)
	return types.Unknown, ""
}

// inferObjectType resolves the type of a field-access receiver without
// re-deriving its result through analyzeExpr a second time, so a chain
// like c.center.x only infers each sub-expression once.
func (a *Analyzer) inferObjectType(expr ast.Expression) (types.DataType, string) {
	dt := a.analyzeExpr(expr)
	if t, ok := expr.(ast.Typed); ok {
		return dt, t.GetTypeName()
	}
	return dt, ""
}

func (a *Analyzer) inferArrayIndex(e *ast.ArrayIndexExpression) (types.DataType, string) {
	arrayType, arrayTypeName := a.inferObjectType(e.Array)
	for _, idx := range e.Indices {
		idxType := a.analyzeExpr(idx)
		if !idxType.IsOrdinal() && idxType != types.Unknown {
			a.errorf(idx.Pos(), "array index must be an ordinal type")
		}
	}

	if arrayTypeName == "" {
		return types.Unknown, ""
	}
	text, ok := a.lookupTypeText(arrayTypeName)
	if !ok {
		text = arrayTypeName
	}
	if desc, isArray := types.ParseArrayType(text); isArray {
		return types.ResolveDataType(desc.ElementType), desc.ElementType
	}
	_ = arrayType
	return types.Unknown, ""
}
