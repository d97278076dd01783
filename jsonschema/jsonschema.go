// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package jsonschema describes the config documents accepted for a
// schema as a JSON Schema.
//
// Every schema reachable from the root becomes an entry of $defs.
// A scalar field accepts its JSON type or null. A nested or union field
// accepts either a suboption string or an object with exactly one key,
// a candidate schema name or variant name, whose value holds the field
// overrides.
package jsonschema

import (
	"encoding/json"

	"github.com/z5labs/optschema"

	ijs "github.com/invopop/jsonschema"
)

const defsPrefix = "#/$defs/"

// Reflect returns the JSON Schema of config documents for s.
func Reflect(s *optschema.Schema) *ijs.Schema {
	defs := make(ijs.Definitions)
	define(defs, s)

	return &ijs.Schema{
		Version:     ijs.Version,
		Ref:         defsPrefix + s.Name(),
		Definitions: defs,
	}
}

// Marshal renders the JSON Schema of s as indented JSON.
func Marshal(s *optschema.Schema) ([]byte, error) {
	return json.MarshalIndent(Reflect(s), "", "  ")
}

func define(defs ijs.Definitions, s *optschema.Schema) {
	if _, ok := defs[s.Name()]; ok {
		return
	}

	obj := &ijs.Schema{
		Type:                 "object",
		Title:                s.Name(),
		Properties:           ijs.NewProperties(),
		AdditionalProperties: ijs.FalseSchema,
	}
	if help := s.VariantsHelp(); help != "" {
		obj.Description = "Variants:\n" + help
	}
	// schemas shared by several fields are defined once
	defs[s.Name()] = obj

	ds, _ := s.Defaults()
	for _, f := range s.Fields() {
		obj.Properties.Set(f.Name(), property(defs, f, ds[f.Name()]))
	}
}

func property(defs ijs.Definitions, f *optschema.Field, def any) *ijs.Schema {
	var value *ijs.Schema
	switch x := f.Shape().(type) {
	case optschema.ScalarShape:
		value = scalar(x.Kind)
		if choices := f.Choices(); len(choices) > 0 {
			value.Enum = choices
		}
	case optschema.NestedShape:
		value = nested(defs, []*optschema.Schema{x.Schema})
	case optschema.UnionShape:
		value = nested(defs, x.Schemas)
	}

	return &ijs.Schema{
		AnyOf:       []*ijs.Schema{value, {Type: "null"}},
		Description: f.Usage(),
		Default:     jsonValue(def),
	}
}

func scalar(k optschema.Kind) *ijs.Schema {
	switch k {
	case optschema.KindBool:
		return &ijs.Schema{Type: "boolean"}
	case optschema.KindInt:
		return &ijs.Schema{Type: "integer"}
	case optschema.KindFloat:
		return &ijs.Schema{Type: "number"}
	default:
		return &ijs.Schema{Type: "string"}
	}
}

// nested accepts a suboption string or a single label object.
func nested(defs ijs.Definitions, ss []*optschema.Schema) *ijs.Schema {
	labels := &ijs.Schema{
		Type:                 "object",
		Properties:           ijs.NewProperties(),
		AdditionalProperties: ijs.FalseSchema,
		Extras: map[string]any{
			"minProperties": 1,
			"maxProperties": 1,
		},
	}
	for _, s := range ss {
		define(defs, s)

		ref := &ijs.Schema{
			AnyOf: []*ijs.Schema{{Ref: defsPrefix + s.Name()}, {Type: "null"}},
		}
		labels.Properties.Set(s.Name(), ref)
		for _, v := range s.Variants() {
			if _, taken := labels.Properties.Get(v.Name); taken {
				continue
			}
			labels.Properties.Set(v.Name, ref)
		}
	}

	return &ijs.Schema{
		AnyOf: []*ijs.Schema{{Type: "string"}, labels},
	}
}

// jsonValue converts a field value into the value of a config document.
func jsonValue(v any) any {
	if inst, ok := v.(*optschema.Instance); ok {
		if inst == nil {
			return nil
		}
		return inst.Label()
	}
	return v
}
