// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

import (
	"fmt"
	"slices"
)

// checkAssignment reports whether v may be stored in the named field.
// The field must exist, v must match the declared shape and, if the field
// restricts its values, v must be one of the choices.
func (s *Schema) checkAssignment(name string, v any) error {
	f, err := s.Field(name)
	if err != nil {
		return err
	}
	if inst, ok := v.(*Instance); ok && inst == nil {
		v = nil
	}

	err = s.checkShape(f, v)
	if err != nil {
		return err
	}

	if len(f.choices) == 0 || v == nil {
		return nil
	}
	nv := normalize(f, v)
	if slices.ContainsFunc(f.choices, func(c any) bool { return valuesEqual(normalize(f, c), nv) }) {
		return nil
	}
	return InvalidChoiceError{
		Schema:  s.name,
		Field:   f.name,
		Value:   v,
		Choices: slices.Clone(f.choices),
	}
}

func (s *Schema) checkShape(f *Field, v any) error {
	if v == nil {
		return nil
	}

	mismatch := TypeMismatchError{
		Schema:   s.name,
		Field:    f.name,
		Value:    v,
		Got:      typeName(v),
		Expected: f.shape,
	}

	switch x := f.shape.(type) {
	case ScalarShape:
		if !kindAccepts(x.Kind, v) {
			return mismatch
		}
		return nil
	case NestedShape, UnionShape:
		inst, ok := v.(*Instance)
		if !ok {
			return mismatch
		}
		cs, _ := candidates(x)
		if !slices.Contains(cs, inst.schema) {
			return mismatch
		}
		return nil
	default:
		return mismatch
	}
}

func kindAccepts(k Kind, v any) bool {
	switch v.(type) {
	case bool:
		return k == KindBool
	case int:
		return k == KindInt || k == KindFloat
	case float64:
		return k == KindFloat
	case string:
		return k == KindString
	default:
		return false
	}
}

// normalize widens int values assigned to float fields. It must only be
// called with values which passed checkShape.
func normalize(f *Field, v any) any {
	if n, ok := v.(int); ok && f.shape == (ScalarShape{Kind: KindFloat}) {
		return float64(n)
	}
	if inst, ok := v.(*Instance); ok && inst == nil {
		return nil
	}
	return v
}

func typeName(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case bool:
		return KindBool.String()
	case int:
		return KindInt.String()
	case float64:
		return KindFloat.String()
	case string:
		return KindString.String()
	case *Instance:
		return x.schema.name
	default:
		return fmt.Sprintf("%T", v)
	}
}
