package ast

import "github.com/daver64/tp2cpp/internal/types"

// TypeInfo is embedded into every expression node. The semantic analyser
// stamps it while inferring types (spec.md's single-slot
// "current_expression_type" register, persisted per-node so the code
// generator can read it back out without re-inferring).
type TypeInfo struct {
	ResolvedType     types.DataType
	ResolvedTypeName string // original Pascal type name, for Custom types
}

func (t *TypeInfo) GetType() types.DataType  { return t.ResolvedType }
func (t *TypeInfo) SetType(d types.DataType) { t.ResolvedType = d }
func (t *TypeInfo) GetTypeName() string      { return t.ResolvedTypeName }
func (t *TypeInfo) SetTypeName(n string)     { t.ResolvedTypeName = n }

// Typed is implemented by every expression node; the analyser uses it
// polymorphically to stamp inferred types without a type switch.
type Typed interface {
	GetType() types.DataType
	SetType(types.DataType)
	GetTypeName() string
	SetTypeName(string)
}
