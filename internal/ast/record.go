package ast

// RecordField is one named field of a record type, e.g. `x: integer`.
type RecordField struct {
	Name string
	Type string
}

// VariantCase is one `VALUES: (FIELDS);` branch of a record's variant
// part; variant fields are emitted as ordinary fields (spec.md GLOSSARY
// "Variant part" — this engine relies on programmer discipline rather
// than emitting a union).
type VariantCase struct {
	Values []string
	Fields []RecordField
}

// VariantPart is a record's tail `case SELECTOR: TYPE of ...` section. If
// SelectorName does not alias one of the record's fixed fields, the
// generator must emit the selector exactly once as its own field.
type VariantPart struct {
	SelectorName string
	SelectorType string
	Cases        []VariantCase
}

// RecordTypeDefinition is the parsed shape of a record type declaration:
// an ordered list of named fields plus an optional variant part.
type RecordTypeDefinition struct {
	Fields  []RecordField
	Variant *VariantPart
}
