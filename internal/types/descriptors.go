package types

import "strings"

// ArrayDimension is one bound pair of a (possibly multi-dimensional)
// array type, plus enough metadata to tell an integer range from a
// char range from an enum range when emitting index arithmetic.
type ArrayDimension struct {
	Low, High  string // verbatim bound text, e.g. "1", "'a'", "Red"
	IsCharDim  bool
	IsEnumDim  bool
	EnumType   string
}

// ArrayDescriptor is the parsed shape of "array[lo..hi{,...}] of T".
type ArrayDescriptor struct {
	ElementType string
	Dimensions  []ArrayDimension
	IsOpen      bool // "array of T" open/dynamic array
}

// ParseArrayType parses a stored array type-definition string such as
// "array[1..10] of integer" or "array[0..9,0..9] of char". It returns ok
// = false when text does not look like an array definition at all.
func ParseArrayType(text string) (ArrayDescriptor, bool) {
	t := strings.TrimSpace(text)
	lower := strings.ToLower(t)
	if !strings.HasPrefix(lower, "array") {
		return ArrayDescriptor{}, false
	}
	rest := strings.TrimSpace(t[len("array"):])

	if !strings.HasPrefix(rest, "[") {
		// open array: "array of T"
		rest = strings.TrimSpace(rest)
		if strings.HasPrefix(strings.ToLower(rest), "of") {
			elem := strings.TrimSpace(rest[len("of"):])
			return ArrayDescriptor{ElementType: elem, IsOpen: true}, true
		}
		return ArrayDescriptor{}, false
	}

	close := strings.Index(rest, "]")
	if close < 0 {
		return ArrayDescriptor{}, false
	}
	boundsText := rest[1:close]
	after := strings.TrimSpace(rest[close+1:])
	elem := ""
	if strings.HasPrefix(strings.ToLower(after), "of") {
		elem = strings.TrimSpace(after[len("of"):])
	}

	var dims []ArrayDimension
	for _, part := range strings.Split(boundsText, ",") {
		part = strings.TrimSpace(part)
		rangeParts := strings.SplitN(part, "..", 2)
		if len(rangeParts) != 2 {
			continue
		}
		lo := strings.TrimSpace(rangeParts[0])
		hi := strings.TrimSpace(rangeParts[1])
		dim := ArrayDimension{Low: lo, High: hi}
		if isCharBoundLiteral(lo) || isCharBoundLiteral(hi) {
			dim.IsCharDim = true
		} else if !isIntBoundLiteral(lo) {
			// Neither a char literal nor an integer literal: treat as an
			// enum-member range, e.g. "Red..Blue".
			dim.IsEnumDim = true
		}
		dims = append(dims, dim)
	}

	return ArrayDescriptor{ElementType: elem, Dimensions: dims}, true
}

func isCharBoundLiteral(s string) bool {
	return strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'")
}

func isIntBoundLiteral(s string) bool {
	if s == "" {
		return false
	}
	start := 0
	if s[0] == '-' || s[0] == '+' {
		start = 1
	}
	if start >= len(s) {
		return false
	}
	for _, c := range s[start:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// EnumDescriptor is the ordered member list of "(Red,Green,Blue)",
// indexed by ordinal 0, 1, 2, ...
type EnumDescriptor struct {
	Members []string
}

// IndexOf returns a member's ordinal, or -1 if not a member.
func (e EnumDescriptor) IndexOf(name string) int {
	for i, m := range e.Members {
		if strings.EqualFold(m, name) {
			return i
		}
	}
	return -1
}

// ParseEnumType parses "(Red,Green,Blue)" into an EnumDescriptor.
func ParseEnumType(text string) (EnumDescriptor, bool) {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "(") || !strings.HasSuffix(t, ")") {
		return EnumDescriptor{}, false
	}
	inner := t[1 : len(t)-1]
	var members []string
	for _, m := range strings.Split(inner, ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			members = append(members, m)
		}
	}
	if len(members) == 0 {
		return EnumDescriptor{}, false
	}
	return EnumDescriptor{Members: members}, true
}

// RecordField is one field of a parsed record type definition.
type RecordField struct {
	Name string
	Type string
}

// VariantCase is one `VALUES: (FIELDS);` branch of a record's variant part.
type VariantCase struct {
	Values []string
	Fields []RecordField
}

// VariantPart is a record's tail `case SELECTOR: TYPE of ...` section.
type VariantPart struct {
	SelectorName string
	SelectorType string
	Cases        []VariantCase
}

// RecordDescriptor is the parsed shape of "record f1: T1; f2: T2; ... end",
// optionally followed by a variant part.
type RecordDescriptor struct {
	Fields  []RecordField
	Variant *VariantPart
}

// ParseRecordType parses a stored record type-definition string. It is
// deliberately tolerant: malformed input yields a partial descriptor
// rather than an error, mirroring the generator's "keep going" failure
// semantics (spec.md §4.5).
func ParseRecordType(text string) (RecordDescriptor, bool) {
	t := strings.TrimSpace(text)
	lower := strings.ToLower(t)
	if !strings.HasPrefix(lower, "record") {
		return RecordDescriptor{}, false
	}
	body := strings.TrimSpace(t[len("record"):])
	if strings.HasSuffix(strings.ToLower(body), "end") {
		body = strings.TrimSpace(body[:len(body)-len("end")])
	}

	var desc RecordDescriptor
	// Split on top-level ';' but stop at a "case" tail introducing a variant part.
	caseIdx := findCaseKeyword(body)
	fixedPart := body
	variantPart := ""
	if caseIdx >= 0 {
		fixedPart = body[:caseIdx]
		variantPart = body[caseIdx:]
	}

	for _, stmt := range splitFields(fixedPart) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		colon := strings.Index(stmt, ":")
		if colon < 0 {
			continue
		}
		names := strings.Split(stmt[:colon], ",")
		typ := strings.TrimSpace(stmt[colon+1:])
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n != "" {
				desc.Fields = append(desc.Fields, RecordField{Name: n, Type: typ})
			}
		}
	}

	if variantPart != "" {
		desc.Variant = parseVariantPart(variantPart)
	}

	return desc, true
}

func findCaseKeyword(s string) int {
	lower := strings.ToLower(s)
	idx := strings.Index(lower, "case ")
	if idx < 0 {
		idx = strings.Index(lower, "case\t")
	}
	return idx
}

func splitFields(s string) []string {
	return strings.Split(s, ";")
}

func parseVariantPart(s string) *VariantPart {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "case") {
		return nil
	}
	s = strings.TrimSpace(s[len("case"):])
	ofIdx := strings.Index(strings.ToLower(s), " of ")
	if ofIdx < 0 {
		return nil
	}
	header := strings.TrimSpace(s[:ofIdx])
	rest := strings.TrimSpace(s[ofIdx+len(" of "):])

	vp := &VariantPart{}
	if colon := strings.Index(header, ":"); colon >= 0 {
		vp.SelectorName = strings.TrimSpace(header[:colon])
		vp.SelectorType = strings.TrimSpace(header[colon+1:])
	} else {
		vp.SelectorType = header
	}

	for _, branch := range splitFields(rest) {
		branch = strings.TrimSpace(branch)
		if branch == "" {
			continue
		}
		colon := strings.Index(branch, ":")
		if colon < 0 {
			continue
		}
		valuesText := strings.TrimSpace(branch[:colon])
		fieldsText := strings.TrimSpace(branch[colon+1:])
		fieldsText = strings.TrimPrefix(fieldsText, "(")
		fieldsText = strings.TrimSuffix(fieldsText, ")")

		var vc VariantCase
		for _, v := range strings.Split(valuesText, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				vc.Values = append(vc.Values, v)
			}
		}
		for _, f := range strings.Split(fieldsText, ";") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			fc := strings.Index(f, ":")
			if fc < 0 {
				continue
			}
			names := strings.Split(f[:fc], ",")
			typ := strings.TrimSpace(f[fc+1:])
			for _, n := range names {
				n = strings.TrimSpace(n)
				if n != "" {
					vc.Fields = append(vc.Fields, RecordField{Name: n, Type: typ})
				}
			}
		}
		vp.Cases = append(vp.Cases, vc)
	}
	return vp
}

// SubrangeDescriptor is the parsed shape of "lo..hi".
type SubrangeDescriptor struct {
	Low, High string
	IsChar    bool
}

// ParseSubrangeType parses "1..10" or "'a'..'z'".
func ParseSubrangeType(text string) (SubrangeDescriptor, bool) {
	t := strings.TrimSpace(text)
	parts := strings.SplitN(t, "..", 2)
	if len(parts) != 2 {
		return SubrangeDescriptor{}, false
	}
	lo := strings.TrimSpace(parts[0])
	hi := strings.TrimSpace(parts[1])
	return SubrangeDescriptor{Low: lo, High: hi, IsChar: isCharBoundLiteral(lo) || isCharBoundLiteral(hi)}, true
}

// BoundedStringDescriptor is the parsed shape of "string[N]".
type BoundedStringDescriptor struct {
	MaxLength int
}

// ParseBoundedStringType parses "string[40]".
func ParseBoundedStringType(text string) (BoundedStringDescriptor, bool) {
	t := strings.TrimSpace(text)
	lower := strings.ToLower(t)
	if !strings.HasPrefix(lower, "string[") || !strings.HasSuffix(t, "]") {
		return BoundedStringDescriptor{}, false
	}
	inner := strings.TrimSpace(t[len("string[") : len(t)-1])
	n := 0
	for _, c := range inner {
		if c < '0' || c > '9' {
			return BoundedStringDescriptor{}, false
		}
		n = n*10 + int(c-'0')
	}
	return BoundedStringDescriptor{MaxLength: n}, true
}

// PointerDescriptor is the parsed shape of "^T".
type PointerDescriptor struct {
	PointeeType string
}

// ParsePointerType parses "^Integer".
func ParsePointerType(text string) (PointerDescriptor, bool) {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "^") {
		return PointerDescriptor{}, false
	}
	return PointerDescriptor{PointeeType: strings.TrimSpace(t[1:])}, true
}

// SetDescriptor is the parsed shape of "set of T".
type SetDescriptor struct {
	ElementType string
}

// ParseSetType parses "set of char" / "set of TColor".
func ParseSetType(text string) (SetDescriptor, bool) {
	t := strings.TrimSpace(text)
	lower := strings.ToLower(t)
	if !strings.HasPrefix(lower, "set") {
		return SetDescriptor{}, false
	}
	rest := strings.TrimSpace(t[len("set"):])
	if !strings.HasPrefix(strings.ToLower(rest), "of") {
		return SetDescriptor{}, false
	}
	return SetDescriptor{ElementType: strings.TrimSpace(rest[len("of"):])}, true
}

// FileOfDescriptor is the parsed shape of "file" or "file of T".
type FileOfDescriptor struct {
	ElementType string // empty for an untyped/text file
}

// ParseFileOfType parses "file of integer" or plain "file"/"text".
func ParseFileOfType(text string) (FileOfDescriptor, bool) {
	t := strings.TrimSpace(text)
	lower := strings.ToLower(t)
	if lower == "file" || lower == "text" {
		return FileOfDescriptor{}, true
	}
	if !strings.HasPrefix(lower, "file") {
		return FileOfDescriptor{}, false
	}
	rest := strings.TrimSpace(t[len("file"):])
	if !strings.HasPrefix(strings.ToLower(rest), "of") {
		return FileOfDescriptor{}, false
	}
	return FileOfDescriptor{ElementType: strings.TrimSpace(rest[len("of"):])}, true
}

// LooksLikeSet is the heuristic spec.md §9 notes the original source uses:
// detect "might be a set" type from a stored type *name* containing the
// substring "set" (case-insensitively), rather than carrying a precise
// element type through semantic analysis end to end. Preserved verbatim
// per the Design Notes: "ambiguities observed in source, noted not guessed".
func LooksLikeSet(typeName string) bool {
	return strings.Contains(strings.ToLower(typeName), "set")
}
