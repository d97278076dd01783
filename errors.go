// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

import (
	"fmt"
	"strings"
)

// SchemaDefinitionError occurs when a schema, one of its fields or
// one of its variants is declared incorrectly.
type SchemaDefinitionError struct {
	Schema string
	Field  string
	Cause  error
}

// Error implements the [builtin.error] interface.
func (e SchemaDefinitionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid definition of schema %s: %s", e.Schema, e.Cause)
	}
	return fmt.Sprintf("invalid definition of schema %s field '%s': %s", e.Schema, e.Field, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e SchemaDefinitionError) Unwrap() error {
	return e.Cause
}

// UnknownFieldError occurs when a field name is not declared by a schema.
type UnknownFieldError struct {
	Schema string
	Field  string
	Known  []string
}

// Error implements the [builtin.error] interface.
func (e UnknownFieldError) Error() string {
	return fmt.Sprintf("%s is not among %s fields: [%s]", e.Field, e.Schema, strings.Join(e.Known, ", "))
}

// TypeMismatchError occurs when a value does not have the shape a field declares.
type TypeMismatchError struct {
	Schema   string
	Field    string
	Value    any
	Got      string
	Expected Shape
}

// Error implements the [builtin.error] interface.
func (e TypeMismatchError) Error() string {
	return fmt.Sprintf(
		"constraints check failed for %s field '%s' and value '%s': type %s does not match field type %s",
		e.Schema,
		e.Field,
		FormatValue(e.Value),
		e.Got,
		e.Expected,
	)
}

// InvalidChoiceError occurs when a value is not a member of the field's choices.
type InvalidChoiceError struct {
	Schema  string
	Field   string
	Value   any
	Choices []any
}

// Error implements the [builtin.error] interface.
func (e InvalidChoiceError) Error() string {
	choices := make([]string, 0, len(e.Choices)+1)
	for _, c := range e.Choices {
		choices = append(choices, FormatValue(c))
	}
	choices = append(choices, FormatValue(nil))

	return fmt.Sprintf(
		"constraints check failed for %s field '%s' and value '%s': invalid choice '%s', (choose from [%s])",
		e.Schema,
		e.Field,
		FormatValue(e.Value),
		FormatValue(e.Value),
		strings.Join(choices, ", "),
	)
}

// UnknownVariantError occurs when a suboption label matches neither a
// candidate schema name nor any of their variants.
type UnknownVariantError struct {
	Name       string
	Candidates []string
}

// Error implements the [builtin.error] interface.
func (e UnknownVariantError) Error() string {
	return fmt.Sprintf("%s is not among types or variants permitted for %s", e.Name, strings.Join(e.Candidates, "|"))
}

// MalformedSuboptionError occurs when a suboption value is quoted on one side only
// or its field clause is not closed.
type MalformedSuboptionError struct {
	Value string
}

// Error implements the [builtin.error] interface.
func (e MalformedSuboptionError) Error() string {
	return fmt.Sprintf("unexpected suboption string: %s, suboption strings must be balanced and must not contain spaces", e.Value)
}

// UnknownFlagError occurs when an input token does not name any field.
type UnknownFlagError struct {
	Schema string
	Flag   string
}

// Error implements the [builtin.error] interface.
func (e UnknownFlagError) Error() string {
	return fmt.Sprintf("%s is not found among %s fields", e.Flag, e.Schema)
}

// ParseError occurs when the flag engine rejects the forwarded tokens
// or a raw value cannot be decoded.
type ParseError struct {
	Schema string
	Input  string
	Cause  error
}

// Error implements the [builtin.error] interface.
func (e ParseError) Error() string {
	return fmt.Sprintf("failed to parse '%s' for %s: %s", e.Input, e.Schema, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ParseError) Unwrap() error {
	return e.Cause
}

// SuboptionError wraps a failure to build a nested value for a field.
type SuboptionError struct {
	Schema string
	Field  string
	Value  string
	Cause  error
}

// Error implements the [builtin.error] interface.
func (e SuboptionError) Error() string {
	return fmt.Sprintf("failed to parse suboption of %s field '%s' from '%s': %s", e.Schema, e.Field, e.Value, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e SuboptionError) Unwrap() error {
	return e.Cause
}
