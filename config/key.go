// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import "strings"

// Keyer is a common interface all value key types must implement.
type Keyer interface {
	Key() string
}

// Name is a single key.
type Name string

// Key implements the [Keyer] interface.
func (k Name) Key() string {
	return string(k)
}

// Path locates a value in nested maps, e.g. method.A2.aint.
type Path []Keyer

// Key implements the [Keyer] interface.
func (p Path) Key() string {
	ss := make([]string, len(p))
	for i, k := range p {
		ss[i] = k.Key()
	}
	return strings.Join(ss, ".")
}

// With returns a new Path with k appended. p is never modified.
func (p Path) With(k Keyer) Path {
	q := make(Path, len(p), len(p)+1)
	copy(q, p)
	return append(q, k)
}
