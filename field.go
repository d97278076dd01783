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

// ActionKind describes how a field's flag stores a value when it is
// present without an explicit value.
type ActionKind int

const (
	// ActionNone flags always require an explicit value.
	ActionNone ActionKind = iota
	// ActionStoreTrue flags store true when present and default to false.
	ActionStoreTrue
	// ActionStoreFalse flags store false when present and default to true.
	ActionStoreFalse
	// ActionStoreConst flags store a constant when present and default to absent.
	ActionStoreConst
)

// String implements the [fmt.Stringer] interface.
func (a ActionKind) String() string {
	switch a {
	case ActionNone:
		return "store"
	case ActionStoreTrue:
		return "store_true"
	case ActionStoreFalse:
		return "store_false"
	case ActionStoreConst:
		return "store_const"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(a))
	}
}

// Field is the static description of a single schema field.
// A Field is immutable once its schema has been defined.
type Field struct {
	name       string
	shape      Shape
	aliases    []string
	def        any
	hasDefault bool
	action     ActionKind
	constValue any
	choices    []any
	usage      string

	presentOnce sync.Once
	present     any
	presentErr  error
}

// Name returns the field name. The field is always reachable as --<name>.
func (f *Field) Name() string { return f.name }

// Shape returns the declared type of the field.
func (f *Field) Shape() Shape { return f.shape }

// Aliases returns the additional flag names of the field.
func (f *Field) Aliases() []string { return slices.Clone(f.aliases) }

// Default returns the explicit default and whether one was declared.
func (f *Field) Default() (any, bool) { return f.def, f.hasDefault }

// Action returns the action kind of the field.
func (f *Field) Action() ActionKind { return f.action }

// Const returns the value stored by an [ActionStoreConst] field.
func (f *Field) Const() any { return f.constValue }

// Choices returns the permitted values, or nil if the field is unrestricted.
func (f *Field) Choices() []any { return slices.Clone(f.choices) }

// Usage returns the help text of the field.
func (f *Field) Usage() string { return f.usage }

// Flags returns every token which refers to this field.
func (f *Field) Flags() []string {
	return append(slices.Clone(f.aliases), "--"+f.name)
}

func (f *Field) shorthand() string {
	for _, a := range f.aliases {
		if !strings.HasPrefix(a, "--") {
			return strings.TrimPrefix(a, "-")
		}
	}
	return ""
}

func (f *Field) longAliases() []string {
	var names []string
	for _, a := range f.aliases {
		if strings.HasPrefix(a, "--") {
			names = append(names, strings.TrimPrefix(a, "--"))
		}
	}
	return names
}

// FieldOption configures a [Field].
type FieldOption func(*Field)

// Alias registers additional flag names for a field. Names must be
// either a single letter prefixed by "-" or a long name prefixed by "--".
func Alias(names ...string) FieldOption {
	return func(f *Field) {
		f.aliases = append(f.aliases, names...)
	}
}

// Default sets the explicit default value of a field.
func Default(v any) FieldOption {
	return func(f *Field) {
		f.def = v
		f.hasDefault = true
	}
}

// Choices restricts the values a field accepts. Absent is always accepted.
func Choices(vs ...any) FieldOption {
	return func(f *Field) {
		f.choices = append(f.choices, vs...)
	}
}

// StoreTrue makes the field a presence flag which stores true.
func StoreTrue() FieldOption {
	return func(f *Field) {
		f.action = ActionStoreTrue
	}
}

// StoreFalse makes the field a presence flag which stores false.
func StoreFalse() FieldOption {
	return func(f *Field) {
		f.action = ActionStoreFalse
	}
}

// StoreConst makes the field a presence flag which stores v.
func StoreConst(v any) FieldOption {
	return func(f *Field) {
		f.action = ActionStoreConst
		f.constValue = v
	}
}

// Usage sets the help text of a field.
func Usage(s string) FieldOption {
	return func(f *Field) {
		f.usage = s
	}
}

// Declare adds a field of the given shape to the schema being defined.
func Declare(name string, shape Shape, opts ...FieldOption) Option {
	return func(d *definition) {
		f := &Field{
			name:  name,
			shape: shape,
		}
		for _, opt := range opts {
			opt(f)
		}
		d.fields = append(d.fields, f)
	}
}

// Bool declares a bool field.
func Bool(name string, opts ...FieldOption) Option {
	return Declare(name, ScalarShape{Kind: KindBool}, opts...)
}

// Int declares an int field.
func Int(name string, opts ...FieldOption) Option {
	return Declare(name, ScalarShape{Kind: KindInt}, opts...)
}

// Float declares a float64 field. Int values are widened on assignment.
func Float(name string, opts ...FieldOption) Option {
	return Declare(name, ScalarShape{Kind: KindFloat}, opts...)
}

// String declares a string field.
func String(name string, opts ...FieldOption) Option {
	return Declare(name, ScalarShape{Kind: KindString}, opts...)
}

// Nested declares a field holding an instance of s.
func Nested(name string, s *Schema, opts ...FieldOption) Option {
	return Declare(name, NestedShape{Schema: s}, opts...)
}

// Union declares a field holding an instance of any one of ss.
// Suboption labels are resolved against ss in order.
func Union(name string, ss []*Schema, opts ...FieldOption) Option {
	return Declare(name, UnionShape{Schemas: slices.Clone(ss)}, opts...)
}

var (
	errEmptyFieldName      = errors.New("field name must not be empty")
	errInvalidFieldName    = errors.New("field name must not start with - or contain spaces or suboption punctuation")
	errMissingFieldType    = errors.New("field has no type metadata")
	errEmptyUnion          = errors.New("union must have at least one candidate schema")
	errActionOnNested      = errors.New("actions are only supported on scalar fields")
	errChoicesOnNested     = errors.New("choices are only supported on scalar fields")
	errBoolActionNonBool   = errors.New("store_true and store_false require a bool field")
	errMultipleShorthands  = errors.New("at most one single letter alias is supported")
	errEmptyConstEncoding  = errors.New("store_const value must not encode to an empty string")
	errMissingConstValue   = errors.New("store_const requires a non absent value")
	errMalformedAliasToken = errors.New("alias must be -x or --name")
)

func (f *Field) validate() error {
	if f.name == "" {
		return errEmptyFieldName
	}
	if strings.HasPrefix(f.name, "-") || strings.ContainsAny(f.name, " \t\n=,()'\"") {
		return fmt.Errorf("%w: %q", errInvalidFieldName, f.name)
	}

	switch x := f.shape.(type) {
	case nil:
		return errMissingFieldType
	case ScalarShape:
		if x.Kind < KindBool || x.Kind > KindString {
			return errMissingFieldType
		}
	case NestedShape:
		if x.Schema == nil {
			return errMissingFieldType
		}
	case UnionShape:
		if len(x.Schemas) == 0 {
			return errEmptyUnion
		}
		if slices.Contains(x.Schemas, nil) {
			return errMissingFieldType
		}
	}

	_, nested := candidates(f.shape)
	if nested && f.action != ActionNone {
		return errActionOnNested
	}
	if nested && len(f.choices) > 0 {
		return errChoicesOnNested
	}

	switch f.action {
	case ActionStoreTrue, ActionStoreFalse:
		if f.shape != (ScalarShape{Kind: KindBool}) {
			return errBoolActionNonBool
		}
	case ActionStoreConst:
		if f.constValue == nil {
			return errMissingConstValue
		}
		if FormatValue(f.constValue) == "" {
			return errEmptyConstEncoding
		}
	}

	shorthands := 0
	for _, a := range f.aliases {
		switch {
		case strings.HasPrefix(a, "--") && len(a) > 2 && !strings.ContainsAny(a, " ="):
		case strings.HasPrefix(a, "-") && len(a) == 2 && a[1] != '-':
			shorthands++
		default:
			return fmt.Errorf("%w: %q", errMalformedAliasToken, a)
		}
	}
	if shorthands > 1 {
		return errMultipleShorthands
	}
	return nil
}
