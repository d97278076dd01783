// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

import (
	"errors"
	"strings"
)

// String renders every field of the instance. It is equivalent to Format(true).
func (i *Instance) String() string {
	return i.Format(true)
}

// Minimal renders only the fields whose values differ from their defaults.
// It is equivalent to Format(false).
func (i *Instance) Minimal() string {
	return i.Format(false)
}

// Format renders the instance as space separated "--<field> <value>" pairs
// in field declaration order. Fields equal to their default are skipped
// unless includeDefaults is set. Nested instances are rendered by [Instance.Label].
//
// Empty strings and strings containing whitespace do not survive the
// whitespace split done by [Parse]. Use [Instance.Args] with [ParseArgs]
// for such values.
func (i *Instance) Format(includeDefaults bool) string {
	return strings.Join(i.Args(includeDefaults), " ")
}

// Args renders the instance like [Instance.Format] but as separate
// "--<field>", "<value>" tokens which [ParseArgs] reads back unchanged.
func (i *Instance) Args(includeDefaults bool) []string {
	ds, _ := i.schema.defaultValues()

	args := make([]string, 0, 2*len(i.values))
	for idx, f := range i.schema.fields {
		v := i.values[idx]
		if !includeDefaults && valuesEqual(v, ds[idx]) {
			continue
		}
		args = append(args, "--"+f.name, encodeValue(v, true))
	}
	return args
}

// Label renders the instance as a suboption: the name of the first variant
// whose overrides all match the instance (or the schema name if none does),
// followed by "(<field>=<value>,...)" for the remaining fields which differ
// from their defaults. A label with a field clause is single quoted.
func (i *Instance) Label() string {
	return i.suboption(true)
}

func (i *Instance) suboption(quoted bool) string {
	name, rest := i.label()
	ds, _ := i.schema.defaultValues()

	var pairs []string
	for _, idx := range rest {
		v := i.values[idx]
		if valuesEqual(v, ds[idx]) {
			continue
		}
		pairs = append(pairs, i.schema.fields[idx].name+"="+encodeValue(v, false))
	}
	if len(pairs) == 0 {
		return name
	}

	s := name + "(" + strings.Join(pairs, ",") + ")"
	if quoted {
		return "'" + s + "'"
	}
	return s
}

// label returns the suboption name of the instance and the indexes of
// the fields which the name does not already account for.
func (i *Instance) label() (string, []int) {
	s := i.schema
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.variants {
		if !i.matches(v.Overrides) {
			continue
		}

		rest := make([]int, 0, len(s.fields))
		for idx, f := range s.fields {
			if _, overridden := v.Overrides[f.name]; !overridden {
				rest = append(rest, idx)
			}
		}
		return v.Name, rest
	}

	rest := make([]int, len(s.fields))
	for idx := range rest {
		rest[idx] = idx
	}
	return s.name, rest
}

func (i *Instance) matches(overrides Values) bool {
	for name, v := range overrides {
		if !valuesEqual(i.values[i.schema.index[name]], v) {
			return false
		}
	}
	return true
}

func encodeValue(v any, quoted bool) string {
	if inst, ok := v.(*Instance); ok && inst != nil {
		return inst.suboption(quoted)
	}
	return FormatValue(v)
}

var errUnbalancedParens = errors.New("unbalanced parentheses")

// splitSuboption splits "Name(field=value,...)", optionally quoted, into
// its label and the equivalent flag tokens "--field value ...".
func splitSuboption(text string) (string, []string, error) {
	s, err := unquote(text)
	if err != nil {
		return "", nil, err
	}

	open := strings.IndexByte(s, '(')
	if open == -1 {
		if strings.IndexByte(s, ')') != -1 {
			return "", nil, MalformedSuboptionError{Value: text}
		}
		return s, nil, nil
	}
	if !strings.HasSuffix(s, ")") {
		return "", nil, MalformedSuboptionError{Value: text}
	}

	label := s[:open]
	clause := s[open+1 : len(s)-1]
	if clause == "" {
		return label, nil, nil
	}

	parts, err := splitTopLevel(clause)
	if err != nil {
		return "", nil, MalformedSuboptionError{Value: text}
	}

	args := make([]string, 0, 2*len(parts))
	for _, part := range parts {
		name, value, _ := strings.Cut(part, "=")
		if name == "" {
			return "", nil, MalformedSuboptionError{Value: text}
		}
		args = append(args, "--"+name)
		if value != "" {
			args = append(args, value)
		}
	}
	return label, args, nil
}

func unquote(s string) (string, error) {
	for _, q := range []string{"'", `"`} {
		starts := strings.HasPrefix(s, q)
		ends := strings.HasSuffix(s, q)
		switch {
		case starts && ends && len(s) >= 2:
			return s[1 : len(s)-1], nil
		case starts || ends:
			return "", MalformedSuboptionError{Value: s}
		}
	}
	return s, nil
}

// splitTopLevel splits s on commas which are not enclosed in parentheses.
func splitTopLevel(s string) ([]string, error) {
	var (
		parts []string
		depth int
		start int
	)
	for idx, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errUnbalancedParens
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:idx])
				start = idx + 1
			}
		}
	}
	if depth != 0 {
		return nil, errUnbalancedParens
	}
	return append(parts, s[start:]), nil
}

// decodeSuboption builds the value of a nested or union field from its
// suboption form. The label picks the schema and its variant overrides,
// the field clause is then parsed into the new instance.
func (p *Parser) decodeSuboption(owner *Schema, f *Field, text string) (any, error) {
	wrap := func(err error) error {
		return SuboptionError{Schema: owner.name, Field: f.name, Value: text, Cause: err}
	}

	label, args, err := splitSuboption(text)
	if err != nil {
		return nil, wrap(err)
	}
	if label == noneLiteral {
		return nil, nil
	}

	target, overrides, err := ResolveVariant(f.shape, label)
	if err != nil {
		if known, ok := Lookup(label); ok {
			return nil, wrap(TypeMismatchError{
				Schema:   owner.name,
				Field:    f.name,
				Value:    text,
				Got:      known.name,
				Expected: f.shape,
			})
		}
		return nil, wrap(err)
	}

	inst, err := New(target, overrides)
	if err != nil {
		return nil, wrap(err)
	}
	err = p.parseInto(inst, args)
	if err != nil {
		return nil, wrap(err)
	}
	return inst, nil
}
