// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchema_Defaults(t *testing.T) {
	t.Run("will use the explicit default", func(t *testing.T) {
		t.Run("if the field declares one", func(t *testing.T) {
			ds, err := scenario.Defaults()
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, Values{"w": 3, "net": "net1"}, ds) {
				return
			}
		})
	})

	t.Run("will ask the flag engine", func(t *testing.T) {
		t.Run("if the field is a store_true flag", func(t *testing.T) {
			ds, err := methodA.Defaults()
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, false, ds["abool"]) {
				return
			}
		})

		t.Run("if the field is a store_false flag", func(t *testing.T) {
			ds, err := methodB.Defaults()
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, true, ds["bbool"]) {
				return
			}
		})

		t.Run("if the field is a store_const flag", func(t *testing.T) {
			ds, err := exampleOptions.Defaults()
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Nil(t, ds["cnst"]) {
				return
			}
		})
	})

	t.Run("will return every example default", func(t *testing.T) {
		ds, err := exampleOptions.Defaults()
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, mapOf(exampleDefaults()), mapOf(ds)) {
			return
		}
	})

	t.Run("will return a copy", func(t *testing.T) {
		t.Run("if the caller modifies a nested default", func(t *testing.T) {
			ds, err := exampleOptions.Defaults()
			if !assert.Nil(t, err) {
				return
			}

			err = ds["method3"].(*Instance).Set("cstr", "changed")
			if !assert.Nil(t, err) {
				return
			}

			inst, err := New(exampleOptions, nil)
			if !assert.Nil(t, err) {
				return
			}
			m3, _ := inst.Get("method3")
			if !assert.Equal(t, "abcd", m3.(*Instance).Map()["cstr"]) {
				return
			}
		})
	})
}

func TestNew(t *testing.T) {
	t.Run("will hold the schema defaults", func(t *testing.T) {
		t.Run("if no overrides are given", func(t *testing.T) {
			inst, err := New(exampleOptions, nil)
			if !assert.Nil(t, err) {
				return
			}

			ds, err := exampleOptions.Defaults()
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, mapOf(ds), inst.Map()) {
				return
			}
		})
	})

	t.Run("will apply the overrides", func(t *testing.T) {
		t.Run("if they are valid", func(t *testing.T) {
			inst, err := New(exampleOptions, Values{
				"test":    true,
				"data":    "abcdefg",
				"ikd":     "1i2dk3",
				"cnst":    42,
				"method2": MustNew(methodB, Values{"bint": 234, "bbool": false}),
			})
			if !assert.Nil(t, err) {
				return
			}

			expected := expectFields(Values{
				"test":    true,
				"data":    "abcdefg",
				"ikd":     "1i2dk3",
				"cnst":    42,
				"method2": MustNew(methodB, Values{"bint": 234, "bbool": false}),
			})
			if !assert.Equal(t, mapOf(expected), inst.Map()) {
				return
			}
		})

		t.Run("if a union field is given any of its candidates", func(t *testing.T) {
			for _, v := range []*Instance{
				MustNew(methodA, Values{"aint": 0, "abool": false}),
				MustNew(methodB, Values{"bint": 234, "bbool": false}),
				nil,
			} {
				inst, err := New(exampleOptions, Values{"method": v})
				if !assert.Nil(t, err) {
					return
				}

				got, _ := inst.Get("method")
				if !assert.True(t, valuesEqual(v, got)) {
					return
				}
			}
		})
	})

	t.Run("will widen an int", func(t *testing.T) {
		t.Run("if it is assigned to a float field", func(t *testing.T) {
			s := MustDefine("Widening", Float("rate", Default(1)))

			inst, err := New(s, nil)
			if !assert.Nil(t, err) {
				return
			}
			rate, _ := inst.Get("rate")
			if !assert.Equal(t, float64(1), rate) {
				return
			}

			err = inst.Set("rate", 2)
			if !assert.Nil(t, err) {
				return
			}
			rate, _ = inst.Get("rate")
			if !assert.Equal(t, float64(2), rate) {
				return
			}
		})
	})

	t.Run("will return an InvalidChoiceError", func(t *testing.T) {
		t.Run("if an override is not one of the choices", func(t *testing.T) {
			_, err := New(exampleOptions, Values{"net": "net55", "data": "somedata"})

			var cerr InvalidChoiceError
			if !assert.ErrorAs(t, err, &cerr) {
				return
			}
			if !assert.Equal(t, "net55", cerr.Value) {
				return
			}
			if !assert.Regexp(t, "invalid choice.*net55", cerr.Error()) {
				return
			}
			if !assert.Contains(t, cerr.Error(), "net1, net2, None") {
				return
			}
		})
	})

	t.Run("will return a TypeMismatchError", func(t *testing.T) {
		testCases := []struct {
			Name  string
			Field string
			Value any
		}{
			{Name: "if a string is given for an int field", Field: "W", Value: "3"},
			{Name: "if a float is given for an int field", Field: "W", Value: 3.5},
			{Name: "if an int is given for a bool field", Field: "test", Value: 1},
			{Name: "if a bool is given for a string field", Field: "data", Value: true},
			{Name: "if a scalar is given for a nested field", Field: "method2", Value: "MethodB"},
			{Name: "if an instance is given for a scalar field", Field: "data", Value: MustNew(methodB, nil)},
			{Name: "if a derived instance is given for a union field", Field: "method", Value: MustNew(methodC, Values{"bint": 234, "bbool": false})},
			{Name: "if an instance of another schema is given for a nested field", Field: "method2", Value: MustNew(methodA, nil)},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				_, err := New(exampleOptions, Values{testCase.Field: testCase.Value})

				var merr TypeMismatchError
				if !assert.ErrorAs(t, err, &merr) {
					return
				}
				if !assert.Equal(t, testCase.Field, merr.Field) {
					return
				}
				if !assert.Equal(t, "ExampleOptions", merr.Schema) {
					return
				}
			})
		}

		t.Run("naming the candidates of a union field", func(t *testing.T) {
			_, err := New(exampleOptions, Values{"method": MustNew(methodC, nil)})
			if !assert.Error(t, err) {
				return
			}
			if !assert.Regexp(t, "MethodC.*does not match.*MethodA\\|MethodB", err.Error()) {
				return
			}
		})
	})

	t.Run("will return an UnknownFieldError", func(t *testing.T) {
		t.Run("if an override names an undeclared field", func(t *testing.T) {
			_, err := New(exampleOptions, Values{"data": 1, "nope": 1})

			var uerr UnknownFieldError
			if !assert.ErrorAs(t, err, &uerr) {
				return
			}
			if !assert.Equal(t, "nope", uerr.Field) {
				return
			}
		})
	})
}

func TestInstance_SetFields(t *testing.T) {
	t.Run("will not modify the instance", func(t *testing.T) {
		t.Run("if any of the values is invalid", func(t *testing.T) {
			inst := MustNew(exampleOptions, nil)
			before := inst.Clone()

			err := inst.SetFields(Values{"W": 7, "data": "x", "net": "omg"})
			if !assert.Error(t, err) {
				return
			}
			if !assert.True(t, before.Equal(inst)) {
				return
			}
		})

		t.Run("if a single assignment is outside the choices", func(t *testing.T) {
			inst := MustNew(exampleOptions, Values{"net": "net2", "data": "somedata"})

			err := inst.Set("net", "omg")
			if !assert.Regexp(t, "invalid choice.*omg", err) {
				return
			}

			net, _ := inst.Get("net")
			if !assert.Equal(t, "net2", net) {
				return
			}
		})
	})

	t.Run("will accept absent", func(t *testing.T) {
		t.Run("if the field restricts its choices", func(t *testing.T) {
			inst := MustNew(exampleOptions, nil)

			err := inst.Set("net", nil)
			if !assert.Nil(t, err) {
				return
			}
		})
	})

	t.Run("will switch a union field between candidates", func(t *testing.T) {
		inst := MustNew(exampleOptions, Values{"method": MustNew(methodA, nil)})

		err := inst.Set("method", MustNew(methodB, Values{"bint": 1}))
		if !assert.Nil(t, err) {
			return
		}

		m, _ := inst.Get("method")
		if !assert.Equal(t, methodB, m.(*Instance).Schema()) {
			return
		}
	})
}

func TestInstance_Equal(t *testing.T) {
	t.Run("will report equal", func(t *testing.T) {
		t.Run("if both instances hold the same values", func(t *testing.T) {
			a := MustNew(methodC, Values{"cstr": "x"})
			b := MustNew(methodC, Values{"cstr": "x"})

			if !assert.True(t, a.Equal(b)) {
				return
			}
		})

		t.Run("if one is a clone of the other", func(t *testing.T) {
			a := MustNew(exampleOptions, Values{"method": MustNew(methodA, Values{"aint": 1})})

			if !assert.True(t, a.Equal(a.Clone())) {
				return
			}
		})
	})

	t.Run("will report not equal", func(t *testing.T) {
		t.Run("if the schemas differ", func(t *testing.T) {
			a := MustNew(methodB, nil)
			b := MustNew(methodC, nil)

			if !assert.False(t, a.Equal(b)) {
				return
			}
		})

		t.Run("if a nested value differs", func(t *testing.T) {
			a := MustNew(exampleOptions, Values{"method": MustNew(methodA, Values{"aint": 1})})
			b := MustNew(exampleOptions, Values{"method": MustNew(methodA, Values{"aint": 2})})

			if !assert.False(t, a.Equal(b)) {
				return
			}
		})

		t.Run("if a clone was modified", func(t *testing.T) {
			a := MustNew(exampleOptions, nil)
			b := a.Clone()

			m3, _ := b.Get("method3")
			err := m3.(*Instance).Set("bint", 100)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.False(t, a.Equal(b)) {
				return
			}
		})
	})
}
