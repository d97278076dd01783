// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package example declares the schemas used by the optschema demo
// binary and by package tests outside the root package.
package example

import (
	"github.com/z5labs/optschema"
)

// Variants are matched in registration order when labelling an instance,
// so the most specific ones are registered first.
var (
	// MethodA is a training method with three optional settings.
	MethodA = optschema.MustDefine("MethodA",
		optschema.Bool("abool", optschema.StoreTrue(), optschema.Usage("enable a")),
		optschema.Int("aint", optschema.Usage("a count")),
		optschema.String("astr", optschema.Usage("a name")),
		optschema.WithVariant("A3", optschema.Values{"abool": true, "aint": 2, "astr": "variantA3"}),
		optschema.WithVariant("A2", optschema.Values{"abool": true}),
		optschema.WithVariant("A1", nil),
	)

	// MethodB is a training method which is enabled unless disabled.
	MethodB = optschema.MustDefine("MethodB",
		optschema.Bool("bbool", optschema.StoreFalse(), optschema.Usage("disable b")),
		optschema.Int("bint", optschema.Default(8), optschema.Usage("b count")),
		optschema.WithVariant("B2", optschema.Values{"bbool": true, "bint": 3}),
		optschema.WithVariant("B1", nil),
	)

	// MethodC extends MethodB with a name.
	MethodC = optschema.MustDefine("MethodC",
		optschema.Extends(MethodB),
		optschema.String("cstr", optschema.Usage("c name")),
	)

	// Options is the top level schema of the demo binary.
	Options = optschema.MustDefine("ExampleOptions",
		optschema.Bool("test", optschema.Alias("-t"), optschema.StoreTrue(), optschema.Usage("Test only")),
		optschema.String("data", optschema.Default("MNIST"), optschema.Usage("dataset")),
		optschema.Int("W", optschema.Alias("-W"), optschema.Default(3), optschema.Usage("quantization levels per weight (0-continuous)")),
		optschema.Float("lr", optschema.Default(0.1), optschema.Usage("learning rate")),
		optschema.String("net", optschema.Default("net1"), optschema.Choices("net1", "net2"), optschema.Usage("nets")),
		optschema.String("ikd", optschema.Alias("--idk", "-k")),
		optschema.Int("cnst", optschema.Alias("-c"), optschema.StoreConst(42), optschema.Usage("store const")),
		optschema.Union("method", []*optschema.Schema{MethodA, MethodB}, optschema.Usage("training method")),
		optschema.Nested("method2", MethodB),
		optschema.Nested("method3", MethodC, optschema.Default(optschema.MustNew(MethodC, optschema.Values{"cstr": "abcd", "bint": 2, "bbool": true}))),
	)
)

// Schemas lists every schema of this package by name.
func Schemas() map[string]*optschema.Schema {
	return map[string]*optschema.Schema{
		MethodA.Name(): MethodA,
		MethodB.Name(): MethodB,
		MethodC.Name(): MethodC,
		Options.Name(): Options,
	}
}
