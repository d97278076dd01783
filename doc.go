// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package optschema provides declarative, typed option schemas which
// round trip through a compact command line style string.
//
// A [Schema] is an ordered set of typed fields, optionally extending a
// parent schema, plus a table of named variants. An [Instance] holds one
// value per field and always satisfies the field types and choices.
//
// # Options strings
//
// Instances are rendered as space separated "--<field> <value>" pairs.
// Booleans are True or False and absent values are None. Fields holding
// another instance use the suboption form
//
//	'<label>(<field>=<value>,...)'
//
// where the label is either a schema name or the name of one of its
// variants. The clause lists only fields which the label does not
// already determine.
//
// # Basic Usage
//
//	methodA := optschema.MustDefine("MethodA",
//	    optschema.Bool("abool", optschema.Default(false)),
//	    optschema.WithVariant("A1", optschema.Values{"abool": false}),
//	)
//
//	opts := optschema.MustDefine("Options",
//	    optschema.Int("w", optschema.Default(3), optschema.Alias("-W")),
//	    optschema.Nested("method", methodA),
//	)
//
//	inst, err := optschema.Parse(opts, "--w 5 --method 'A1(abool=True)'")
//
// Parsing only touches the fields which appear in the input, so an
// existing instance can be refined with [Instance.Parse].
//
// [Parse] splits its input on whitespace, so empty strings and strings
// containing whitespace cannot be read back from [Instance.String].
// [Instance.Args] and [ParseArgs] carry such values as separate tokens.
package optschema
