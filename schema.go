// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Schema describes a structured configuration type: an ordered set of
// fields and a table of named variants. Fields are fixed when the schema
// is defined. Defaults are computed once, on first use.
type Schema struct {
	name   string
	parent *Schema
	fields []*Field
	index  map[string]int
	tokens map[string]int

	defaultsOnce sync.Once
	defaults     []any
	defaultsErr  error

	mu       sync.RWMutex
	variants []Variant
}

// Option configures a [Schema] while it is being defined.
type Option func(*definition)

type definition struct {
	parent   *Schema
	fields   []*Field
	variants []Variant
}

// Extends makes the schema inherit every field of parent. Parent
// fields come first, in the parent's declaration order.
func Extends(parent *Schema) Option {
	return func(d *definition) {
		d.parent = parent
	}
}

// WithVariant registers a variant as part of the schema definition.
// Variants are registered in option order.
func WithVariant(name string, overrides Values) Option {
	return func(d *definition) {
		d.variants = append(d.variants, Variant{Name: name, Overrides: overrides})
	}
}

var registry sync.Map

// Lookup returns the most recently defined schema with the given name.
func Lookup(name string) (*Schema, bool) {
	v, ok := registry.Load(name)
	if !ok {
		return nil, false
	}
	return v.(*Schema), true
}

var (
	errEmptySchemaName   = errors.New("schema name must not be empty")
	errInvalidSchemaName = errors.New("schema name must not be None or contain spaces or suboption punctuation")
	errDuplicateField    = errors.New("field is declared more than once")
	errFlagCollision     = errors.New("flag is already used by another field")
)

// Define builds a new schema from the given options.
func Define(name string, opts ...Option) (*Schema, error) {
	if name == "" {
		return nil, SchemaDefinitionError{Schema: name, Cause: errEmptySchemaName}
	}
	if name == noneLiteral || strings.ContainsAny(name, " \t\n=,()'\"") {
		return nil, SchemaDefinitionError{Schema: name, Cause: errInvalidSchemaName}
	}

	var d definition
	for _, opt := range opts {
		opt(&d)
	}

	s := &Schema{
		name:   name,
		parent: d.parent,
		index:  make(map[string]int),
		tokens: make(map[string]int),
	}
	if d.parent != nil {
		s.fields = slices.Clone(d.parent.fields)
	}
	s.fields = append(s.fields, d.fields...)

	for i, f := range s.fields {
		err := s.addField(i, f)
		if err != nil {
			return nil, err
		}
	}
	for _, f := range d.fields {
		err := s.checkFieldValues(f)
		if err != nil {
			return nil, err
		}
	}

	err := s.checkEngine()
	if err != nil {
		return nil, SchemaDefinitionError{Schema: name, Cause: err}
	}

	for _, v := range d.variants {
		err := s.RegisterVariant(v.Name, v.Overrides)
		if err != nil {
			return nil, err
		}
	}

	registry.Store(name, s)
	return s, nil
}

// MustDefine is like [Define] but panics if the definition is invalid.
func MustDefine(name string, opts ...Option) *Schema {
	s, err := Define(name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) addField(i int, f *Field) error {
	err := f.validate()
	if err != nil {
		return SchemaDefinitionError{Schema: s.name, Field: f.name, Cause: err}
	}
	if _, exists := s.index[f.name]; exists {
		return SchemaDefinitionError{Schema: s.name, Field: f.name, Cause: errDuplicateField}
	}
	s.index[f.name] = i

	for _, tok := range f.Flags() {
		if j, exists := s.tokens[tok]; exists && j != i {
			return SchemaDefinitionError{
				Schema: s.name,
				Field:  f.name,
				Cause:  fmt.Errorf("%w: %s", errFlagCollision, tok),
			}
		}
		s.tokens[tok] = i
	}
	return nil
}

func (s *Schema) checkFieldValues(f *Field) error {
	for _, c := range f.choices {
		err := s.checkShape(f, c)
		if err != nil {
			return SchemaDefinitionError{Schema: s.name, Field: f.name, Cause: err}
		}
	}
	if f.hasDefault {
		err := s.checkAssignment(f.name, f.def)
		if err != nil {
			return SchemaDefinitionError{Schema: s.name, Field: f.name, Cause: err}
		}
	}
	if f.action == ActionStoreConst {
		err := s.checkAssignment(f.name, f.constValue)
		if err != nil {
			return SchemaDefinitionError{Schema: s.name, Field: f.name, Cause: err}
		}
	}
	return nil
}

// Name returns the schema name. It doubles as the suboption label
// for instances which match none of the schema's variants.
func (s *Schema) Name() string { return s.name }

// Parent returns the schema this schema extends, if any.
func (s *Schema) Parent() *Schema { return s.parent }

// String implements the [fmt.Stringer] interface.
func (s *Schema) String() string { return s.name }

// Fields returns the schema fields, inherited fields first.
func (s *Schema) Fields() []*Field {
	return slices.Clone(s.fields)
}

// FieldNames returns the names of the schema fields in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// Field returns the field with the given name.
func (s *Schema) Field(name string) (*Field, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, UnknownFieldError{Schema: s.name, Field: name, Known: s.FieldNames()}
	}
	return s.fields[i], nil
}

func (s *Schema) fieldForToken(tok string) (int, *Field, bool) {
	i, ok := s.tokens[tok]
	if !ok {
		return 0, nil, false
	}
	return i, s.fields[i], true
}

// New returns an instance holding the schema defaults with overrides applied.
func (s *Schema) New(overrides Values) (*Instance, error) {
	return New(s, overrides)
}

// Parse returns a new instance with the fields given by text applied to the defaults.
func (s *Schema) Parse(text string) (*Instance, error) {
	return Parse(s, text)
}
