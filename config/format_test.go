// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/z5labs/optschema/internal/try"

	"github.com/stretchr/testify/assert"
)

type readFunc func([]byte) (int, error)

func (f readFunc) Read(b []byte) (int, error) {
	return f(b)
}

type closeFunc func() error

type readCloser struct {
	io.Reader
	closeFunc
}

func (rc readCloser) Close() error {
	return rc.closeFunc()
}

func TestJson_Apply(t *testing.T) {
	testDocumentSource(t, func(r io.Reader) Source { return FromJson(r) }, `{"W": 8, "method": {"A2": {"aint": 5}}}`, `{`)

	t.Run("will return an InvalidJsonError", func(t *testing.T) {
		t.Run("if the document is not an object", func(t *testing.T) {
			err := FromJson(strings.NewReader(`[1, 2]`)).Apply(make(Map))

			var ierr InvalidJsonError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.NotEmpty(t, ierr.Error()) {
				return
			}
			if !assert.NotNil(t, ierr.Unwrap()) {
				return
			}
		})
	})
}

func TestYaml_Apply(t *testing.T) {
	testDocumentSource(t, func(r io.Reader) Source { return FromYaml(r) }, "W: 8\nmethod:\n  A2:\n    aint: 5\n", `hello`)

	t.Run("will return an InvalidYamlError", func(t *testing.T) {
		t.Run("if the document is not a mapping", func(t *testing.T) {
			err := FromYaml(strings.NewReader(`- 1`)).Apply(make(Map))

			var ierr InvalidYamlError
			if !assert.ErrorAs(t, err, &ierr) {
				return
			}
			if !assert.NotEmpty(t, ierr.Error()) {
				return
			}
			if !assert.NotNil(t, ierr.Unwrap()) {
				return
			}
		})
	})
}

func testDocumentSource(t *testing.T, newSource func(io.Reader) Source, valid, invalid string) {
	t.Helper()

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the underlying io.Reader fails", func(t *testing.T) {
			readErr := errors.New("failed to read")
			r := readFunc(func(b []byte) (int, error) {
				return 0, readErr
			})

			err := newSource(r).Apply(make(Map))
			if !assert.ErrorIs(t, err, readErr) {
				return
			}
		})

		t.Run("if the io.Reader contains an invalid document", func(t *testing.T) {
			err := newSource(strings.NewReader(invalid)).Apply(make(Map))
			if !assert.Error(t, err) {
				return
			}
		})

		t.Run("if the underlying store fails to set a key", func(t *testing.T) {
			storeErr := errors.New("failed to set key")
			store := storeFunc(func(k Keyer, a any) error {
				return storeErr
			})

			err := newSource(strings.NewReader(valid)).Apply(store)
			if !assert.ErrorIs(t, err, storeErr) {
				return
			}
		})

		t.Run("if the underlying io.Closer fails", func(t *testing.T) {
			closeErr := errors.New("failed to close")
			r := readCloser{
				Reader: strings.NewReader(valid),
				closeFunc: func() error {
					return closeErr
				},
			}

			err := newSource(r).Apply(make(Map))
			if !assert.ErrorIs(t, err, closeErr) {
				return
			}

			var cerr try.CloseError
			if !assert.ErrorAs(t, err, &cerr) {
				return
			}
		})
	})

	t.Run("will set nested values", func(t *testing.T) {
		t.Run("if the document is valid", func(t *testing.T) {
			closed := false
			r := readCloser{
				Reader: strings.NewReader(valid),
				closeFunc: func() error {
					closed = true
					return nil
				},
			}

			m := make(Map)
			err := newSource(r).Apply(m)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.True(t, closed) {
				return
			}
			if !assert.EqualValues(t, 8, m["W"]) {
				return
			}

			method, ok := m["method"].(map[string]any)
			if !assert.True(t, ok) {
				return
			}
			a2, ok := method["A2"].(map[string]any)
			if !assert.True(t, ok) {
				return
			}
			if !assert.EqualValues(t, 5, a2["aint"]) {
				return
			}
		})
	})
}
