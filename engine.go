// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

import (
	"errors"
	"fmt"
	"io"

	"github.com/z5labs/optschema/internal/try"

	"github.com/spf13/pflag"
)

// flagValue adapts a field to pflag.Value. Decoding failures are kept
// on the value because pflag flattens them into plain strings.
type flagValue struct {
	field  *Field
	value  any
	decode func(string) (any, error)
	err    error
}

// String implements the pflag.Value interface.
func (v *flagValue) String() string {
	return FormatValue(v.value)
}

// Set implements the pflag.Value interface.
func (v *flagValue) Set(s string) error {
	x, err := v.decode(s)
	if err != nil {
		v.err = err
		return err
	}
	v.value = x
	return nil
}

// Type implements the pflag.Value interface.
func (v *flagValue) Type() string {
	return v.field.shape.String()
}

// actionValues returns what an action flag stores when it is missing
// from the input and when it is present without a value.
func actionValues(f *Field) (absent, present any) {
	switch f.action {
	case ActionStoreTrue:
		return false, true
	case ActionStoreFalse:
		return true, false
	case ActionStoreConst:
		return nil, normalize(f, f.constValue)
	default:
		return nil, nil
	}
}

func scalarDecoder(f *Field) func(string) (any, error) {
	kind := f.shape.(ScalarShape).Kind
	return func(s string) (any, error) {
		return DecodeScalar(kind, s)
	}
}

func decoderFor(f *Field, nested nestedDecoder) func(string) (any, error) {
	if _, ok := candidates(f.shape); !ok {
		return scalarDecoder(f)
	}
	return func(text string) (any, error) {
		return nested(f, text)
	}
}

func fieldUsage(f *Field) string {
	usage := f.usage
	cs, _ := candidates(f.shape)
	for _, c := range cs {
		if help := c.VariantsHelp(); help != "" {
			usage = joinUsage(usage, help)
		}
	}
	return usage
}

func addFlag(fs *pflag.FlagSet, name, shorthand, usage string, f *Field, decode func(string) (any, error)) *flagValue {
	fv := &flagValue{
		field:  f,
		decode: decode,
	}
	flag := fs.VarPF(fv, name, shorthand, usage)
	if f.action != ActionNone {
		absent, present := actionValues(f)
		fv.value = absent
		flag.NoOptDefVal = FormatValue(present)
	}
	return fv
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// probeAction asks the flag engine which value an action flag stores
// when it is absent from, or present without a value in, the input.
func probeAction(f *Field, present bool) (v any, err error) {
	defer try.Recover(&err)

	fs := newFlagSet("probe")
	fv := addFlag(fs, "opt", "", "", f, scalarDecoder(f))

	var args []string
	if present {
		args = []string{"--opt"}
	}
	err = fs.Parse(args)
	if err != nil {
		return nil, err
	}
	return fv.value, nil
}

// engine is a single use pflag.FlagSet with one flag per schema field.
type engine struct {
	schema *Schema
	fs     *pflag.FlagSet
	values []*flagValue
}

type nestedDecoder func(f *Field, s string) (any, error)

func newEngine(s *Schema, nested nestedDecoder) (e *engine, err error) {
	defer try.Recover(&err)

	fs := newFlagSet(s.name)

	aliases := make(map[string]string)
	for _, f := range s.fields {
		for _, a := range f.longAliases() {
			aliases[a] = f.name
		}
	}
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if canonical, ok := aliases[name]; ok {
			return pflag.NormalizedName(canonical)
		}
		return pflag.NormalizedName(name)
	})

	e = &engine{
		schema: s,
		fs:     fs,
		values: make([]*flagValue, len(s.fields)),
	}
	for i, f := range s.fields {
		e.values[i] = addFlag(fs, f.name, f.shorthand(), fieldUsage(f), f, decoderFor(f, nested))
	}
	return e, nil
}

func joinUsage(usage, help string) string {
	if usage == "" {
		return help
	}
	return usage + "\n" + help
}

var errUnexpectedArgs = errors.New("unexpected positional arguments")

// parse runs the flag engine and returns the values of the flags
// which actually appeared in args.
func (e *engine) parse(args []string) (Values, error) {
	err := e.fs.Parse(args)
	if err != nil {
		for _, fv := range e.values {
			if fv.err != nil {
				return nil, fv.err
			}
		}
		return nil, err
	}
	if e.fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %v", errUnexpectedArgs, e.fs.Args())
	}

	seen := make(Values)
	e.fs.Visit(func(flag *pflag.Flag) {
		fv := flag.Value.(*flagValue)
		seen[fv.field.name] = fv.value
	})
	return seen, nil
}

// Usage renders the flag listing of the schema as produced by the flag engine.
func (s *Schema) Usage() string {
	e, err := newEngine(s, func(*Field, string) (any, error) { return nil, nil })
	if err != nil {
		return ""
	}
	return e.fs.FlagUsages()
}

// checkEngine makes sure the flag engine accepts the schema's flags.
func (s *Schema) checkEngine() error {
	_, err := newEngine(s, func(*Field, string) (any, error) { return nil, nil })
	return err
}
