// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/z5labs/optschema"
)

// ApplyError occurs when a config value cannot be assigned to an instance field.
type ApplyError struct {
	Key   string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ApplyError) Error() string {
	return fmt.Sprintf("failed to apply config value for %s: %s", e.Key, e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e ApplyError) Unwrap() error {
	return e.Cause
}

// LabelCountError occurs when a nested field is given as a map
// which does not have exactly one type or variant label.
type LabelCountError struct {
	Labels []string
}

// Error implements the [builtin.error] interface.
func (e LabelCountError) Error() string {
	return fmt.Sprintf("expected exactly one type or variant label but found %d: [%s]", len(e.Labels), strings.Join(e.Labels, ", "))
}

// Apply assigns the merged values to inst. Keys name fields exactly or,
// failing that, case-insensitively. Fields without a config value keep
// their current value. On error inst is left unchanged.
func (m *Manager) Apply(inst *optschema.Instance) error {
	target := inst.Clone()
	err := applyMap(target, m.store, nil)
	if err != nil {
		return err
	}
	return inst.SetFields(target.Values())
}

func applyMap(inst *optschema.Instance, m map[string]any, path Path) error {
	for _, k := range sortedKeys(m) {
		p := path.With(Name(k))

		f, err := lookupField(inst.Schema(), k)
		if err != nil {
			return ApplyError{Key: p.Key(), Cause: err}
		}

		err = applyValue(inst, f, m[k], p)
		if err != nil {
			return err
		}
	}
	return nil
}

func lookupField(s *optschema.Schema, name string) (*optschema.Field, error) {
	f, err := s.Field(name)
	if err == nil {
		return f, nil
	}
	for _, other := range s.Fields() {
		if strings.EqualFold(other.Name(), name) {
			return other, nil
		}
	}
	return nil, err
}

func applyValue(inst *optschema.Instance, f *optschema.Field, v any, path Path) error {
	var err error
	switch x := v.(type) {
	case string:
		err = inst.ParseArgs([]string{"--" + f.Name(), x})
	case float64:
		err = inst.Set(f.Name(), narrowFloat(f, x))
	case map[string]any:
		var sub *optschema.Instance
		sub, err = nestedInstance(f, x, path)
		if err != nil {
			return err
		}
		err = inst.Set(f.Name(), sub)
	default:
		err = inst.Set(f.Name(), v)
	}
	if err != nil {
		return ApplyError{Key: path.Key(), Cause: err}
	}
	return nil
}

// narrowFloat turns integral numbers decoded by JSON back into ints
// when the field expects one.
func narrowFloat(f *optschema.Field, x float64) any {
	if f.Shape() != (optschema.ScalarShape{Kind: optschema.KindInt}) {
		return x
	}
	if x != math.Trunc(x) || math.IsInf(x, 0) || x > math.MaxInt64 || x < math.MinInt64 {
		return x
	}
	return int(x)
}

func nestedInstance(f *optschema.Field, m map[string]any, path Path) (*optschema.Instance, error) {
	if len(m) != 1 {
		return nil, ApplyError{Key: path.Key(), Cause: LabelCountError{Labels: sortedKeys(m)}}
	}

	label := sortedKeys(m)[0]
	s, overrides, err := optschema.ResolveVariant(f.Shape(), label)
	if err != nil {
		return nil, ApplyError{Key: path.Key(), Cause: err}
	}
	sub, err := optschema.New(s, overrides)
	if err != nil {
		return nil, ApplyError{Key: path.Key(), Cause: err}
	}

	path = path.With(Name(label))
	switch x := m[label].(type) {
	case nil:
		return sub, nil
	case map[string]any:
		return sub, applyMap(sub, x, path)
	default:
		return nil, ApplyError{
			Key:   path.Key(),
			Cause: fmt.Errorf("expected the fields of %s but found %T", label, x),
		}
	}
}
