package codegen

import (
	"strings"

	"github.com/daver64/tp2cpp/internal/types"
)

// basicTypeShortNames gives every primitive Pascal type a short,
// fixed mangled fragment, matching the table
// _examples/original_source/src/codegen/cpp_generator.cpp uses when
// building overload-disambiguating suffixes.
var basicTypeShortNames = map[string]string{
	"integer": "int",
	"real":    "real",
	"boolean": "bool",
	"char":    "char",
	"string":  "str",
	"byte":    "byte",
}

// MangleFunctionName builds the overload-disambiguating C++ identifier
// for a Pascal routine: `name` when paramTypeNames is empty (a
// parameterless routine is never ambiguous), else
// `name_T1_T2_..._Tn` with each Ti produced by mangleTypeName.
func MangleFunctionName(name string, paramTypeNames []string) string {
	if len(paramTypeNames) == 0 {
		return sanitizeIdent(name)
	}
	parts := make([]string, 0, len(paramTypeNames)+1)
	parts = append(parts, sanitizeIdent(name))
	for _, t := range paramTypeNames {
		parts = append(parts, mangleTypeName(t))
	}
	return strings.Join(parts, "_")
}

// mangleTypeName reduces a Pascal type name (or inline type text) to a
// mangle-safe fragment: basic types get their fixed short name, `array
// of X` recurses into `arrayofX`, everything else is sanitized to
// alphanumerics and underscores.
func mangleTypeName(typeName string) string {
	lower := strings.ToLower(strings.TrimSpace(typeName))
	if short, ok := basicTypeShortNames[lower]; ok {
		return short
	}
	if desc, ok := types.ParseArrayType(typeName); ok {
		return "arrayof" + mangleTypeName(desc.ElementType)
	}
	if strings.HasPrefix(lower, "array") && strings.Contains(lower, "of") {
		idx := strings.LastIndex(lower, "of")
		elem := strings.TrimSpace(typeName[idx+2:])
		return "arrayof" + mangleTypeName(elem)
	}
	return sanitizeIdent(typeName)
}

// sanitizeIdent replaces every character that isn't a letter, digit, or
// underscore with an underscore, so an arbitrary Pascal identifier or type spelling is
// always safe to splice into a generated C++ identifier.
func sanitizeIdent(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
