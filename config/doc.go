// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config loads option values from layered sources and applies
// them to an [optschema.Instance].
//
// Sources are read in order into a single [Map]; subsequent sources
// override previous ones key by key. The merged values are then applied
// to an instance with [Manager.Apply], which checks every value against
// the instance's schema before anything is stored.
//
// Field values follow the same rules as options strings. A string value
// is decoded with the options-string grammar, so "None", "True", "8" and
// "'A2(aint=5)'" all work. Native booleans, integers and floats are
// assigned directly. A nested field may also be given as a single-key
// map from a type or variant label to the fields overriding it:
//
//	method:
//	  A2:
//	    aint: 5
package config
