// FILE: config.go
package config

import (
	"sort"
	"strings"
)

// Manager is an immutable snapshot of the resolved configuration.
// Nothing mutates it after Build returns, so a *Manager can be shared by any
// number of goroutines without locking.
type Manager struct {
	values  Flat
	origins map[string]int
	sources []Source
	keys    []string // sorted
	tag     string   // struct tag used by Scan
}

func newManager(resolved Resolved, sources []Source, tag string) *Manager {
	keys := make([]string, 0, len(resolved.Values))
	for k := range resolved.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	srcs := make([]Source, len(sources))
	copy(srcs, sources)

	return &Manager{
		values:  resolved.Values,
		origins: resolved.Origins,
		sources: srcs,
		keys:    keys,
		tag:     tag,
	}
}

// Get retrieves the raw value stored under the dotted path.
// The second return value reports whether the path is set.
func (m *Manager) Get(path string) (Value, bool) {
	v, ok := m.values[path]
	return v, ok
}

// Has reports whether the path is set
func (m *Manager) Has(path string) bool {
	_, ok := m.values[path]
	return ok
}

// Keys returns all resolved paths in sorted order
func (m *Manager) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// KeysWithPrefix returns the sorted paths at or below prefix ("server" matches
// "server.port" but not "serverless")
func (m *Manager) KeysWithPrefix(prefix string) []string {
	prefix = strings.TrimSuffix(prefix, ".")
	if prefix == "" {
		return m.Keys()
	}
	var out []string
	for _, k := range m.keys {
		if k == prefix || strings.HasPrefix(k, prefix+".") {
			out = append(out, k)
		}
	}
	return out
}

// Len returns the number of resolved paths
func (m *Manager) Len() int { return len(m.values) }

// Origin returns the source whose value won for path
func (m *Manager) Origin(path string) (Source, bool) {
	idx, ok := m.origins[path]
	if !ok || idx < 0 || idx >= len(m.sources) {
		return Source{}, false
	}
	return m.sources[idx], true
}

// Sources returns the sources the manager was built from, in registration order
func (m *Manager) Sources() []Source {
	out := make([]Source, len(m.sources))
	copy(out, m.sources)
	return out
}

// Snapshot returns a copy of the resolved flat mapping
func (m *Manager) Snapshot() Flat {
	out := make(Flat, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// AllSettings rebuilds the nested tree of plain Go values from the dotted paths
func (m *Manager) AllSettings() map[string]any {
	nested := make(map[string]any)
	for _, path := range m.keys {
		setNestedValue(nested, path, m.values[path].Interface())
	}
	return nested
}
