// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

// Defaults returns the default value of every field.
//
// A field's default is its explicit default if it declares one. Otherwise
// action fields default to whatever the flag engine stores when the flag
// is missing from the input, e.g. false for a [StoreTrue] field, and every
// other field defaults to absent (nil).
func (s *Schema) Defaults() (Values, error) {
	ds, err := s.defaultValues()
	if err != nil {
		return nil, err
	}

	vs := make(Values, len(ds))
	for i, f := range s.fields {
		vs[f.name] = cloneValue(ds[i])
	}
	return vs, nil
}

func (s *Schema) defaultValues() ([]any, error) {
	s.defaultsOnce.Do(func() {
		ds := make([]any, len(s.fields))
		for i, f := range s.fields {
			switch {
			case f.hasDefault:
				ds[i] = cloneValue(normalize(f, f.def))
			case f.action != ActionNone:
				v, err := probeAction(f, false)
				if err != nil {
					s.defaultsErr = SchemaDefinitionError{Schema: s.name, Field: f.name, Cause: err}
					return
				}
				ds[i] = v
			}
		}
		s.defaults = ds
	})
	return s.defaults, s.defaultsErr
}

func cloneValue(v any) any {
	if inst, ok := v.(*Instance); ok && inst != nil {
		return inst.Clone()
	}
	return v
}
