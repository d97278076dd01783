// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"os"
	"strings"
)

// Env represents a Source where its underlying values
// are extracted from environment variables.
type Env struct {
	prefix  string
	environ func() []string
}

// FromEnv returns a Source which will apply its config from the
// environment variables of the current process whose names start
// with prefix. The prefix is stripped, so with prefix "TRAIN_" the
// variable TRAIN_net=net2 sets the field net. Matching of the
// remainder against field names falls back to case-insensitive.
func FromEnv(prefix string) Env {
	return Env{
		prefix:  prefix,
		environ: os.Environ,
	}
}

// Apply implements the [Source] interface.
func (src Env) Apply(store Store) error {
	m := make(Map)
	for _, pair := range src.environ() {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		name, ok := strings.CutPrefix(k, src.prefix)
		if !ok || name == "" {
			continue
		}
		m[name] = v
	}
	return m.Apply(store)
}
