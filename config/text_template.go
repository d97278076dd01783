// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"sync"
	"text/template"

	"github.com/z5labs/optschema/internal/try"
)

// RenderTextTemplateOption represents options for configuring the TextTemplateRenderer.
type RenderTextTemplateOption func(*TextTemplateRenderer)

// TemplateFunc registers the given function, f, for use in the config
// template via the given name. It replaces a builtin function of the same name.
func TemplateFunc(name string, f any) RenderTextTemplateOption {
	return func(ttr *TextTemplateRenderer) {
		ttr.funcs[name] = f
	}
}

// TemplateDelims sets the action delimiters to the specified strings.
// An empty delimiter stands for the corresponding default: {{ or }}.
func TemplateDelims(left, right string) RenderTextTemplateOption {
	return func(ttr *TextTemplateRenderer) {
		ttr.leftDelim = left
		ttr.rightDelim = right
	}
}

// TextTemplateRenderer is an io.Reader that renders a text/template from
// a given io.Reader. The rendered template can then be read via [TextTemplateRenderer.Read].
// If the source fails to close after a complete read, the rendered template
// is still returned and the close failure takes the place of io.EOF.
//
// Two functions are always available to the template:
//
//	env "NAME"          the value of an environment variable or ""
//	default DEF VALUE   DEF if VALUE is nil or the zero value of its type
type TextTemplateRenderer struct {
	r io.Reader

	leftDelim  string
	rightDelim string
	funcs      template.FuncMap
	renderOnce sync.Once
	renderErr  error
	closeErr   error
	buf        bytes.Buffer
}

// RenderTextTemplate configures a TextTemplateRenderer.
func RenderTextTemplate(r io.Reader, opts ...RenderTextTemplateOption) *TextTemplateRenderer {
	ttr := &TextTemplateRenderer{
		r: r,
		funcs: template.FuncMap{
			"env":     os.Getenv,
			"default": defaultValue,
		},
	}
	for _, opt := range opts {
		opt(ttr)
	}
	return ttr
}

// TextTemplateParseError occurs when the config template fails to be parsed.
type TextTemplateParseError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e TextTemplateParseError) Error() string {
	return fmt.Sprintf("failed to parse config template: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TextTemplateParseError) Unwrap() error {
	return e.Cause
}

// TextTemplateExecError occurs when a template fails to execute. Most
// likely cause is using template functions returning an error or panicing.
type TextTemplateExecError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e TextTemplateExecError) Error() string {
	return fmt.Sprintf("failed to exec config template: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e TextTemplateExecError) Unwrap() error {
	return e.Cause
}

// Read implements the [io.Reader] interface.
func (ttr *TextTemplateRenderer) Read(b []byte) (int, error) {
	ttr.renderOnce.Do(func() {
		ttr.renderErr = ttr.render()
	})
	if ttr.renderErr != nil {
		return 0, ttr.renderErr
	}
	n, err := ttr.buf.Read(b)
	if err == io.EOF && ttr.closeErr != nil {
		return n, ttr.closeErr
	}
	return n, err
}

func (ttr *TextTemplateRenderer) render() error {
	src, err := io.ReadAll(ttr.r)

	var closeErr error
	try.Close(&closeErr, ttr.r)
	if err != nil {
		return errors.Join(err, closeErr)
	}

	tmpl, err := template.New("config").
		Delims(ttr.leftDelim, ttr.rightDelim).
		Funcs(ttr.funcs).
		Parse(string(src))
	if err != nil {
		return errors.Join(TextTemplateParseError{Cause: err}, closeErr)
	}

	err = tmpl.Execute(&ttr.buf, struct{}{})
	if err != nil {
		return errors.Join(TextTemplateExecError{Cause: err}, closeErr)
	}
	ttr.closeErr = closeErr
	return nil
}

func defaultValue(def, v any) any {
	if v == nil {
		return def
	}
	if reflect.ValueOf(v).IsZero() {
		return def
	}
	return v
}
