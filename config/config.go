// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

// Store represents a general key value structure.
type Store interface {
	Set(Keyer, any) error
}

// Source defines valid config sources as those who can
// serialize themselves into a key value like structure.
type Source interface {
	Apply(Store) error
}

// SourceFunc is a func which implements the [Source] interface.
type SourceFunc func(Store) error

// Apply implements the [Source] interface.
func (f SourceFunc) Apply(store Store) error {
	return f(store)
}

// Manager holds the values merged from one or more sources.
type Manager struct {
	store Map
}

// Read merges every source into a single [Manager].
// Subsequent sources override previous sources.
func Read(srcs ...Source) (*Manager, error) {
	store := make(Map)
	for _, src := range srcs {
		err := src.Apply(store)
		if err != nil {
			return nil, err
		}
	}
	m := &Manager{
		store: store,
	}
	return m, nil
}

// Values returns a deep copy of the merged values.
func (m *Manager) Values() Map {
	return copyMap(m.store)
}

// Empty reports whether no source provided any value.
func (m *Manager) Empty() bool {
	return len(m.store) == 0
}

func copyMap(m map[string]any) Map {
	out := make(Map, len(m))
	for k, v := range m {
		if sub, ok := v.(map[string]any); ok {
			out[k] = map[string]any(copyMap(sub))
			continue
		}
		out[k] = v
	}
	return out
}
