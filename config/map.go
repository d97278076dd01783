// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"slices"
)

// Map is an ordinary map[string]any which implements both
// the [Source] and the [Store] interfaces.
type Map map[string]any

// Apply implements the [Source] interface. It recursively walks the
// map, in key order, setting every leaf value on the given store.
func (m Map) Apply(store Store) error {
	return walkMap(m, store, nil)
}

func walkMap(m map[string]any, store Store, path Path) error {
	for _, k := range sortedKeys(m) {
		var err error
		switch x := m[k].(type) {
		case map[string]any:
			err = walkNested(x, store, path.With(Name(k)))
		case Map:
			err = walkNested(x, store, path.With(Name(k)))
		default:
			err = store.Set(path.With(Name(k)), x)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// walkNested keeps empty maps so that a bare label survives merging.
func walkNested(m map[string]any, store Store, path Path) error {
	if len(m) == 0 {
		return store.Set(path, map[string]any{})
	}
	return walkMap(m, store, path)
}

// UnknownKeyerError occurs when a [Store] is given a [Keyer]
// which is neither a [Name] nor a [Path].
type UnknownKeyerError struct {
	Key Keyer
}

// Error implements the [builtin.error] interface.
func (e UnknownKeyerError) Error() string {
	return fmt.Sprintf("config source tried setting config value with unknown config.Keyer: %s", e.Key.Key())
}

// EmptyPathError occurs when a value is set to a [Path] with no elements.
type EmptyPathError struct {
	Value any
}

// Error implements the [builtin.error] interface.
func (e EmptyPathError) Error() string {
	return fmt.Sprintf("attempted to set value to an empty path: %v", e.Value)
}

// UnexpectedKeyValueTypeError represents the situation when
// a source tries setting a key to a different type than it
// had previously been set to.
type UnexpectedKeyValueTypeError struct {
	Key          string
	ExpectedType string
}

// Error implements the [builtin.error] interface.
func (e UnexpectedKeyValueTypeError) Error() string {
	return fmt.Sprintf("expected key value to be a %s: %s", e.ExpectedType, e.Key)
}

// Set implements the [Store] interface.
func (m Map) Set(k Keyer, v any) error {
	switch x := k.(type) {
	case Name:
		m[string(x)] = v
		return nil
	case Path:
		return m.setPath(x, v)
	default:
		return UnknownKeyerError{Key: k}
	}
}

func (m Map) setPath(path Path, v any) error {
	if len(path) == 0 {
		return EmptyPathError{Value: v}
	}

	root := path[0]
	if len(path) == 1 {
		return m.Set(root, v)
	}

	old, ok := m[root.Key()]
	if !ok {
		old = make(map[string]any)
		m[root.Key()] = old
	}

	sub, ok := old.(map[string]any)
	if !ok {
		return UnexpectedKeyValueTypeError{
			Key:          root.Key(),
			ExpectedType: "map[string]any",
		}
	}
	return Map(sub).setPath(path[1:], v)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
