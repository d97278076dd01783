// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

import (
	"fmt"
	"strings"
)

// Kind identifies the scalar type of a field.
type Kind int

const (
	KindBool Kind = iota + 1
	KindInt
	KindFloat
	KindString
)

// String implements the [fmt.Stringer] interface.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Shape is the declared type of a field. It is one of [ScalarShape],
// [NestedShape] or [UnionShape].
type Shape interface {
	fmt.Stringer

	isShape()
}

// ScalarShape declares a field holding a single scalar value.
type ScalarShape struct {
	Kind Kind
}

func (ScalarShape) isShape() {}

// String implements the [fmt.Stringer] interface.
func (s ScalarShape) String() string {
	return s.Kind.String()
}

// NestedShape declares a field holding an instance of exactly one schema.
type NestedShape struct {
	Schema *Schema
}

func (NestedShape) isShape() {}

// String implements the [fmt.Stringer] interface.
func (s NestedShape) String() string {
	if s.Schema == nil {
		return "<nil>"
	}
	return s.Schema.Name()
}

// UnionShape declares a field holding an instance of any one of its schemas.
type UnionShape struct {
	Schemas []*Schema
}

func (UnionShape) isShape() {}

// String implements the [fmt.Stringer] interface.
func (s UnionShape) String() string {
	return strings.Join(candidateNames(s.Schemas), "|")
}

// candidates returns the schemas a nested or union shape may hold.
func candidates(shape Shape) ([]*Schema, bool) {
	switch x := shape.(type) {
	case NestedShape:
		return []*Schema{x.Schema}, true
	case UnionShape:
		return x.Schemas, true
	default:
		return nil, false
	}
}

func candidateNames(ss []*Schema) []string {
	names := make([]string, len(ss))
	for i, s := range ss {
		if s == nil {
			names[i] = "<nil>"
			continue
		}
		names[i] = s.Name()
	}
	return names
}
