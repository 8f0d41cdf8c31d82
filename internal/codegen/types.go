package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daver64/tp2cpp/internal/types"
)

// basicCppTypeNames mirrors mapPascalTypeToCpp's base-type branch in
// _examples/original_source/src/codegen/cpp_generator.cpp.
var basicCppTypeNames = map[string]string{
	"integer": "int",
	"real":    "double",
	"boolean": "bool",
	"char":    "char",
	"byte":    "uint8_t",
	"string":  "std::string",
}

// mapType renders a Pascal type name (which may be a base-type keyword
// or a name registered in the symbol table) to its C++ spelling. It
// never fails: an unresolvable shape is emitted with a
// `/* TODO: implement proper type */` tag, after the sanitized type name
// when no definition text was found for it and after `auto` otherwise,
// per spec.md §4.5 failure semantics.
func (g *Generator) mapType(typeName string) string {
	return g.mapTypeText(typeName, g.resolveTypeText(typeName))
}

// mapTypeText maps typeName using text as its already-resolved
// definition (the caller may already hold the definition text, e.g.
// while walking a TypeDeclaration, without another symbol lookup).
func (g *Generator) mapTypeText(typeName, text string) string {
	lower := strings.ToLower(strings.TrimSpace(typeName))
	if cpp, ok := basicCppTypeNames[lower]; ok {
		return cpp
	}

	trimmed := strings.TrimSpace(text)
	lowerText := strings.ToLower(trimmed)
	if cpp, ok := basicCppTypeNames[lowerText]; ok {
		return cpp
	}

	switch {
	case strings.HasPrefix(trimmed, "^"):
		pointee := strings.TrimSpace(trimmed[1:])
		return g.mapType(pointee) + "*"

	case strings.HasPrefix(lowerText, "array"):
		if desc, ok := types.ParseArrayType(trimmed); ok {
			elemCpp := g.mapType(desc.ElementType)
			if desc.IsOpen || len(desc.Dimensions) == 0 {
				return "std::vector<" + elemCpp + ">"
			}
			n := 1
			for _, dim := range desc.Dimensions {
				n *= arrayDimensionLength(dim)
			}
			return fmt.Sprintf("std::array<%s, %d>", elemCpp, n)
		}

	case strings.HasPrefix(lowerText, "set"):
		if desc, ok := types.ParseSetType(trimmed); ok {
			return "std::set<" + g.mapType(desc.ElementType) + ">"
		}

	case strings.HasPrefix(lowerText, "file"):
		if desc, ok := types.ParseFileOfType(trimmed); ok && desc.ElementType != "" {
			return "PascalTypedFile<" + g.mapType(desc.ElementType) + ">"
		}
		return "PascalFile"

	case strings.HasPrefix(lowerText, "record"):
		// Record layouts are emitted as their own C++ struct named after
		// the Pascal type; see declarations.go's emitRecordStruct.
		return sanitizeIdent(typeName)

	case strings.HasPrefix(lowerText, "("):
		// Enum literal lists: emitted as a C++ enum named after the type.
		return sanitizeIdent(typeName)
	}

	if _, ok := types.ParseSubrangeType(trimmed); ok {
		return "int"
	}
	if bs, ok := types.ParseBoundedStringType(trimmed); ok && bs.MaxLength > 0 {
		return "std::string"
	}

	if lowerText == "" || lowerText == lower {
		// No separate definition text was found: this is either an
		// already-mapped alias or a genuinely unresolved name.
		if typeName != "" {
			return sanitizeIdent(typeName) + " /* TODO: implement proper type */"
		}
	}
	return "auto /* TODO: implement proper type */"
}

// arrayDimensionLength computes a fixed dimension's element count from
// its stored low/high bound text. Non-numeric bounds (enum or char
// dimensions) fall back to ordinal distance via the dimension's own
// descriptor fields, defaulting to 1 when the bound can't be read at
// all, which keeps emission moving rather than aborting.
func arrayDimensionLength(dim types.ArrayDimension) int {
	if dim.IsCharDim {
		lowR := firstRune(dim.Low)
		highR := firstRune(dim.High)
		if highR >= lowR {
			return int(highR-lowR) + 1
		}
		return 1
	}
	low, errLow := strconv.Atoi(strings.TrimSpace(dim.Low))
	high, errHigh := strconv.Atoi(strings.TrimSpace(dim.High))
	if errLow == nil && errHigh == nil && high >= low {
		return high - low + 1
	}
	return 1
}

func firstRune(s string) rune {
	s = strings.Trim(s, "'")
	for _, r := range s {
		return r
	}
	return 0
}
