// Package types defines the closed set of Pascal data types the symbol
// table, semantic analyser, and code generator share, plus small parsers
// that turn a symbol's stored type-definition text back into a structured
// descriptor (array bounds, enum members, record fields, ...).
//
// Per spec.md §9 "Stored type text as semantic record", the symbol table
// keeps the verbatim Pascal type text as the cross-phase carrier and each
// shape gets exactly one reusable parser here, rather than re-deriving
// parsing logic in both the analyser and the generator.
package types

import "strings"

// DataType is the closed set a symbol's run-time category is drawn from.
type DataType int

const (
	Unknown DataType = iota
	Integer
	Real
	Boolean
	Char
	Byte
	String
	Void
	Custom
	Pointer
	FileType
)

var dataTypeNames = map[DataType]string{
	Unknown:  "unknown",
	Integer:  "integer",
	Real:     "real",
	Boolean:  "boolean",
	Char:     "char",
	Byte:     "byte",
	String:   "string",
	Void:     "void",
	Custom:   "custom",
	Pointer:  "pointer",
	FileType: "file",
}

func (d DataType) String() string {
	if s, ok := dataTypeNames[d]; ok {
		return s
	}
	return "unknown"
}

// IsNumeric reports whether d participates in arithmetic widening.
func (d DataType) IsNumeric() bool { return d == Integer || d == Real }

// IsOrdinal reports whether d is admissible as a for-loop variable or case
// selector on its own (custom ordinal-ness, i.e. enum/subrange, is
// resolved by the caller via the stored type-definition text).
func (d DataType) IsOrdinal() bool {
	return d == Integer || d == Char || d == Boolean
}

// FromTypeName resolves a base-type keyword spelling to a DataType. Names
// not in this closed set (array-of-X, record, enum, named aliases, ...)
// return Custom; the caller is expected to consult the stored type text
// for those.
func FromTypeName(name string) DataType {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "integer":
		return Integer
	case "real", "double", "single":
		return Real
	case "boolean":
		return Boolean
	case "char":
		return Char
	case "byte":
		return Byte
	case "string":
		return String
	case "void", "":
		return Void
	default:
		return Custom
	}
}

// ResolveDataType classifies a full Pascal type-definition text: base
// types first, then array/pointer/file-of shapes, defaulting to Custom
// for everything else (records, enums, named aliases, subranges, sets,
// bounded strings).
func ResolveDataType(text string) DataType {
	t := strings.TrimSpace(text)
	lower := strings.ToLower(t)
	if base := FromTypeName(t); base != Custom {
		return base
	}
	switch {
	case strings.HasPrefix(t, "^"):
		return Pointer
	case strings.HasPrefix(lower, "file"):
		return FileType
	default:
		return Custom
	}
}
