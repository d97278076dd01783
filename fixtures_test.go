// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

// Variants are matched in registration order when labelling an instance,
// so the most specific ones are registered first.
var (
	methodA = MustDefine("MethodA",
		Bool("abool", StoreTrue()),
		Int("aint"),
		String("astr"),
		WithVariant("A3", Values{"abool": true, "aint": 2, "astr": "variantA3"}),
		WithVariant("A2", Values{"abool": true}),
		WithVariant("A1", nil),
	)

	methodB = MustDefine("MethodB",
		Bool("bbool", StoreFalse()),
		Int("bint", Default(8)),
		WithVariant("B2", Values{"bbool": true, "bint": 3}),
		WithVariant("B1", nil),
	)

	methodC = MustDefine("MethodC",
		Extends(methodB),
		String("cstr"),
	)

	exampleOptions = MustDefine("ExampleOptions",
		Bool("test", Alias("-t"), StoreTrue(), Usage("Test only")),
		String("data", Default("MNIST"), Usage("MNIST")),
		Int("W", Alias("-W"), Default(3), Usage("quantization levels per weight (0-continuous)")),
		String("net", Default("net1"), Choices("net1", "net2"), Usage("nets")),
		String("ikd", Alias("--idk", "-k")),
		Int("cnst", Alias("-c"), StoreConst(42), Usage("store const")),
		Union("method", []*Schema{methodA, methodB}),
		Nested("method2", methodB),
		Nested("method3", methodC, Default(MustNew(methodC, Values{"cstr": "abcd", "bint": 2, "bbool": true}))),
	)

	scenario = MustDefine("Scenario",
		Int("w", Default(3)),
		String("net", Default("net1"), Choices("net1", "net2")),
	)
)

func exampleDefaults() Values {
	return Values{
		"test":    false,
		"data":    "MNIST",
		"W":       3,
		"net":     "net1",
		"ikd":     nil,
		"cnst":    nil,
		"method":  nil,
		"method2": nil,
		"method3": MustNew(methodC, Values{"cstr": "abcd", "bint": 2, "bbool": true}),
	}
}

// expectFields returns the example defaults with the given values applied.
func expectFields(overrides Values) Values {
	vs := exampleDefaults()
	for k, v := range overrides {
		vs[k] = v
	}
	return vs
}

// mapOf renders expected field values the way [Instance.Map] does.
func mapOf(vs Values) map[string]any {
	m := make(map[string]any, len(vs))
	for k, v := range vs {
		if inst, ok := v.(*Instance); ok && inst != nil {
			m[k] = inst.Map()
			continue
		}
		m[k] = v
	}
	return m
}
