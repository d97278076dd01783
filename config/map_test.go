// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type storeFunc func(Keyer, any) error

func (f storeFunc) Set(k Keyer, v any) error {
	return f(k, v)
}

type myKeyer string

func (myKeyer) Key() string {
	return "my key"
}

func TestPath_With(t *testing.T) {
	t.Run("will not modify the original path", func(t *testing.T) {
		t.Run("if two paths are derived from the same parent", func(t *testing.T) {
			parent := make(Path, 1, 4)
			parent[0] = Name("method")

			a := parent.With(Name("A2"))
			b := parent.With(Name("B2"))
			if !assert.Equal(t, "method.A2", a.Key()) {
				return
			}
			if !assert.Equal(t, "method.B2", b.Key()) {
				return
			}
			if !assert.Equal(t, "method", parent.Key()) {
				return
			}
		})
	})
}

func TestMap_Set(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if an unknown Keyer is used", func(t *testing.T) {
			m := make(Map)
			err := m.Set(myKeyer("hello"), "world")

			var ierr UnknownKeyerError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.NotEmpty(t, ierr.Error()) {
				return
			}
		})

		t.Run("if an empty Path is used", func(t *testing.T) {
			m := make(Map)
			err := m.Set(Path{}, "world")

			var ierr EmptyPathError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.NotEmpty(t, ierr.Error()) {
				return
			}
		})

		t.Run("if the value type is attempted to be changed while overriding an existing key", func(t *testing.T) {
			m := make(Map)
			err := m.Set(Name("method"), "A2")
			if !assert.Nil(t, err) {
				return
			}

			err = m.Set(Path{Name("method"), Name("A2")}, nil)

			var ierr UnexpectedKeyValueTypeError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.NotEmpty(t, ierr.Error()) {
				return
			}
			if !assert.Equal(t, "method", ierr.Key) {
				return
			}
		})
	})

	t.Run("will create nested maps", func(t *testing.T) {
		t.Run("if a Path is used", func(t *testing.T) {
			m := make(Map)
			err := m.Set(Path{Name("method"), Name("A2"), Name("aint")}, 5)
			if !assert.Nil(t, err) {
				return
			}

			expected := Map{
				"method": map[string]any{
					"A2": map[string]any{
						"aint": 5,
					},
				},
			}
			if !assert.Equal(t, expected, m) {
				return
			}
		})
	})

	t.Run("will override a nested map", func(t *testing.T) {
		t.Run("if a Name is used", func(t *testing.T) {
			m := make(Map)
			err := m.Set(Path{Name("method"), Name("A2")}, nil)
			if !assert.Nil(t, err) {
				return
			}

			err = m.Set(Name("method"), "B2")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, Map{"method": "B2"}, m) {
				return
			}
		})
	})
}

func TestMap_Apply(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the store fails to set a key", func(t *testing.T) {
			storeErr := errors.New("failed to set key")
			store := storeFunc(func(k Keyer, a any) error {
				return storeErr
			})

			err := Map{"W": 1}.Apply(store)
			if !assert.ErrorIs(t, err, storeErr) {
				return
			}
		})
	})

	t.Run("will set every leaf in key order", func(t *testing.T) {
		t.Run("if the map is nested", func(t *testing.T) {
			var keys []string
			store := storeFunc(func(k Keyer, a any) error {
				keys = append(keys, k.Key())
				return nil
			})

			m := Map{
				"net": "net2",
				"method": map[string]any{
					"A2": map[string]any{
						"astr": "x",
						"aint": 5,
					},
				},
				"W": 8,
			}
			err := m.Apply(store)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, []string{"W", "method.A2.aint", "method.A2.astr", "net"}, keys) {
				return
			}
		})
	})
}
