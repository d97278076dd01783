// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

import (
	"encoding"
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Map returns the field values keyed by field name with nested
// instances converted to maps of their own.
func (i *Instance) Map() map[string]any {
	m := make(map[string]any, len(i.values))
	for idx, f := range i.schema.fields {
		v := i.values[idx]
		if inst, ok := v.(*Instance); ok && inst != nil {
			m[f.name] = inst.Map()
			continue
		}
		m[f.name] = v
	}
	return m
}

// Decode copies the instance into v, which must be a pointer to a struct
// or map. Struct fields are matched by their "option" tag, or by name.
//
// Besides the conversions done by mapstructure, field values are coerced
// as follows:
//
//	nested instance -> string     its unquoted suboption label
//	nested instance -> struct/map its fields, recursively
//	nested instance -> any        the result of [Instance.Map]
//	string -> encoding.TextUnmarshaler
//	string -> time.Duration       time.ParseDuration
//	int -> time.Duration          nanoseconds
//	float -> time.Duration        seconds
func (i *Instance) Decode(v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "option",
		Result:  v,
		DecodeHook: coerce(
			instanceCoercion,
			durationCoercion,
			textCoercion,
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(i.fieldValues())
}

// fieldValues is like Map but keeps nested instances so that
// instanceCoercion can pick their representation per target.
func (i *Instance) fieldValues() map[string]any {
	m := make(map[string]any, len(i.values))
	for idx, f := range i.schema.fields {
		m[f.name] = i.values[idx]
	}
	return m
}

// TypeCoercionError occurs when decoding a field value into a struct
// field whose type it cannot be converted to.
type TypeCoercionError struct {
	From  reflect.Type
	To    reflect.Type
	Cause error
}

// Error implements the [builtin.error] interface.
func (e TypeCoercionError) Error() string {
	return fmt.Sprintf("failed to coerce value from %s to %s: %s", e.From, e.To, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e TypeCoercionError) Unwrap() error {
	return e.Cause
}

// coercion converts data of type from into type to. It reports false
// if it does not apply to the pair.
type coercion func(from, to reflect.Type, data any) (any, bool, error)

// coerce runs the first applicable coercion and leaves data untouched
// when none applies.
func coerce(cs ...coercion) mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		for _, c := range cs {
			v, ok, err := c(from, to, data)
			if !ok {
				continue
			}
			if err != nil {
				return nil, TypeCoercionError{From: from, To: to, Cause: err}
			}
			return v, nil
		}
		return data, nil
	}
}

var (
	durationType        = reflect.TypeOf(time.Duration(0))
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

func instanceCoercion(_, to reflect.Type, data any) (any, bool, error) {
	inst, ok := data.(*Instance)
	if !ok || inst == nil {
		return nil, false, nil
	}
	for to.Kind() == reflect.Pointer {
		to = to.Elem()
	}
	switch to.Kind() {
	case reflect.String:
		return inst.suboption(false), true, nil
	case reflect.Interface:
		return inst.Map(), true, nil
	default:
		return inst.fieldValues(), true, nil
	}
}

func durationCoercion(from, to reflect.Type, data any) (any, bool, error) {
	if to != durationType {
		return nil, false, nil
	}

	switch from.Kind() {
	case reflect.String:
		d, err := time.ParseDuration(data.(string))
		return d, true, err
	case reflect.Int:
		return time.Duration(data.(int)), true, nil
	case reflect.Float64:
		return time.Duration(data.(float64) * float64(time.Second)), true, nil
	default:
		return nil, false, nil
	}
}

func textCoercion(from, to reflect.Type, data any) (any, bool, error) {
	if from.Kind() != reflect.String || !reflect.PointerTo(to).Implements(textUnmarshalerType) {
		return nil, false, nil
	}

	result := reflect.New(to)
	err := result.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(data.(string)))
	if err != nil {
		return nil, true, err
	}
	return result.Elem().Interface(), true, nil
}
