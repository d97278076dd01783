// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

import (
	"errors"
	"slices"
	"strings"
)

// Variant is a named preset of field values for a schema.
type Variant struct {
	Name      string
	Overrides Values
}

var errInvalidVariantName = errors.New("variant name must not be empty, None or contain spaces or suboption punctuation")

// RegisterVariant adds a variant to the schema. Every override is checked
// before anything is stored, so a rejected variant leaves the table as it was.
// Registering a name again replaces the earlier overrides in place.
func (s *Schema) RegisterVariant(name string, overrides Values) error {
	if name == "" || name == noneLiteral || strings.ContainsAny(name, " \t\n=,()'\"") {
		return SchemaDefinitionError{Schema: s.name, Cause: errInvalidVariantName}
	}

	vs := make(Values, len(overrides))
	for k, v := range overrides {
		err := s.checkAssignment(k, v)
		if err != nil {
			return SchemaDefinitionError{Schema: s.name, Field: k, Cause: err}
		}
		f, _ := s.Field(k)
		vs[k] = cloneValue(normalize(f, v))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.variants, func(v Variant) bool { return v.Name == name })
	if i >= 0 {
		s.variants[i].Overrides = vs
		return nil
	}
	s.variants = append(s.variants, Variant{Name: name, Overrides: vs})
	return nil
}

// MustRegisterVariant is like [Schema.RegisterVariant] but panics on failure.
func (s *Schema) MustRegisterVariant(name string, overrides Values) {
	err := s.RegisterVariant(name, overrides)
	if err != nil {
		panic(err)
	}
}

// Variants returns the registered variants in registration order.
func (s *Schema) Variants() []Variant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vs := make([]Variant, len(s.variants))
	for i, v := range s.variants {
		vs[i] = Variant{Name: v.Name, Overrides: cloneValues(v.Overrides)}
	}
	return vs
}

// Variant returns a copy of the overrides registered under name.
func (s *Schema) Variant(name string) (Values, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.variants {
		if v.Name == name {
			return cloneValues(v.Overrides), true
		}
	}
	return nil, false
}

// VariantsHelp lists one variant per line as "<name> <overrides>".
func (s *Schema) VariantsHelp() string {
	vs := s.Variants()
	lines := make([]string, len(vs))
	for i, v := range vs {
		pairs := make([]string, 0, len(v.Overrides))
		for _, f := range s.fields {
			x, ok := v.Overrides[f.name]
			if !ok {
				continue
			}
			pairs = append(pairs, f.name+"="+FormatValue(x))
		}
		lines[i] = v.Name + " {" + strings.Join(pairs, ", ") + "}"
	}
	return strings.Join(lines, "\n")
}

// ResolveVariant resolves a suboption label against a nested or union
// shape. A candidate whose name equals label wins over any variant.
// Otherwise the first candidate, in declaration order, which owns a
// variant named label wins. The returned overrides are safe to modify.
func ResolveVariant(shape Shape, label string) (*Schema, Values, error) {
	cs, ok := candidates(shape)
	if !ok {
		return nil, nil, UnknownVariantError{Name: label, Candidates: []string{shape.String()}}
	}

	for _, c := range cs {
		if c.name == label {
			return c, Values{}, nil
		}
	}
	for _, c := range cs {
		overrides, ok := c.Variant(label)
		if ok {
			return c, overrides, nil
		}
	}
	return nil, nil, UnknownVariantError{Name: label, Candidates: candidateNames(cs)}
}

func cloneValues(vs Values) Values {
	out := make(Values, len(vs))
	for k, v := range vs {
		if inst, ok := v.(*Instance); ok && inst != nil {
			out[k] = inst.Clone()
			continue
		}
		out[k] = v
	}
	return out
}
