// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

import (
	"cmp"
	"slices"
)

// Instance is a value of a [Schema]. Every field always holds a value
// matching its declared shape; all mutations go through [Instance.SetFields].
type Instance struct {
	schema *Schema
	values []any
}

// New returns an instance of s holding its defaults with overrides applied.
func New(s *Schema, overrides Values) (*Instance, error) {
	ds, err := s.defaultValues()
	if err != nil {
		return nil, err
	}

	inst := &Instance{
		schema: s,
		values: make([]any, len(ds)),
	}
	for i, d := range ds {
		inst.values[i] = cloneValue(d)
	}

	err = inst.SetFields(overrides)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// MustNew is like [New] but panics on failure.
func MustNew(s *Schema, overrides Values) *Instance {
	inst, err := New(s, overrides)
	if err != nil {
		panic(err)
	}
	return inst
}

// Schema returns the schema of the instance.
func (i *Instance) Schema() *Schema {
	return i.schema
}

// Get returns the value of the named field.
func (i *Instance) Get(name string) (any, error) {
	idx, ok := i.schema.index[name]
	if !ok {
		return nil, UnknownFieldError{Schema: i.schema.name, Field: name, Known: i.schema.FieldNames()}
	}
	return i.values[idx], nil
}

// Set assigns a single field.
func (i *Instance) Set(name string, v any) error {
	return i.SetFields(Values{name: v})
}

// SetFields assigns every field in vs. All values are validated before
// any is stored, so on error the instance is left unchanged.
func (i *Instance) SetFields(vs Values) error {
	names := make([]string, 0, len(vs))
	for name := range vs {
		names = append(names, name)
	}
	slices.SortFunc(names, i.fieldOrder)

	pending := make([]any, len(names))
	for n, name := range names {
		v := vs[name]
		err := i.schema.checkAssignment(name, v)
		if err != nil {
			return err
		}
		f, _ := i.schema.Field(name)
		pending[n] = normalize(f, v)
	}

	for n, name := range names {
		i.values[i.schema.index[name]] = pending[n]
	}
	return nil
}

// fieldOrder sorts unknown names first so they are reported before
// any value of a known field is looked at.
func (i *Instance) fieldOrder(a, b string) int {
	ai, aok := i.schema.index[a]
	bi, bok := i.schema.index[b]
	switch {
	case !aok && !bok:
		return cmp.Compare(a, b)
	case !aok:
		return -1
	case !bok:
		return 1
	default:
		return cmp.Compare(ai, bi)
	}
}

// Values returns a copy of every field value keyed by field name.
func (i *Instance) Values() Values {
	vs := make(Values, len(i.values))
	for idx, f := range i.schema.fields {
		vs[f.name] = cloneValue(i.values[idx])
	}
	return vs
}

// Equal reports whether both instances have the same schema and field values.
func (i *Instance) Equal(o *Instance) bool {
	if i == nil || o == nil {
		return i == o
	}
	if i.schema != o.schema {
		return false
	}
	for idx := range i.values {
		if !valuesEqual(i.values[idx], o.values[idx]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the instance.
func (i *Instance) Clone() *Instance {
	c := &Instance{
		schema: i.schema,
		values: make([]any, len(i.values)),
	}
	for idx, v := range i.values {
		c.values[idx] = cloneValue(v)
	}
	return c
}
