package semantic

import "github.com/daver64/tp2cpp/internal/types"

// withFrame is one active `with expr do` binding: the generated
// reference name, and enough type information to resolve bare field
// names against it.
type withFrame struct {
	VariableName string
	DataType     types.DataType
	TypeName     string // record type name, when DataType == types.Custom
}

// withStack tracks nested with-statements in source order. Field
// resolution searches it innermost-first, matching Pascal's rule that
// the nearest enclosing with wins on a name clash.
type withStack struct {
	frames []withFrame
}

func (w *withStack) push(f withFrame) { w.frames = append(w.frames, f) }

func (w *withStack) pop() {
	if len(w.frames) > 0 {
		w.frames = w.frames[:len(w.frames)-1]
	}
}

// resolveField searches the stack innermost-first for a frame whose
// record type defines fieldName, returning the frame's variable name
// and the field's declared type text.
func (w *withStack) resolveField(fieldName string, lookupRecordText func(typeName string) (string, bool)) (variable, fieldType string, ok bool) {
	for i := len(w.frames) - 1; i >= 0; i-- {
		frame := w.frames[i]
		if frame.DataType != types.Custom || frame.TypeName == "" {
			continue
		}
		recordText, found := lookupRecordText(frame.TypeName)
		if !found {
			continue
		}
		desc, isRecord := types.ParseRecordType(recordText)
		if !isRecord {
			continue
		}
		for _, field := range desc.Fields {
			if lower(field.Name) == lower(fieldName) {
				return frame.VariableName, field.Type, true
			}
		}
		if desc.Variant != nil {
			for _, vc := range desc.Variant.Cases {
				for _, field := range vc.Fields {
					if lower(field.Name) == lower(fieldName) {
						return frame.VariableName, field.Type, true
					}
				}
			}
		}
	}
	return "", "", false
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
