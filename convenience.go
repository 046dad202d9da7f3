// File: convenience.go
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Quick builds a configuration from an optional file, environment variables
// under envPrefix and the process arguments, with the standard precedence
// CLI > Env > File. An empty configFile skips the file source.
func Quick(configFile, envPrefix string) (*Manager, error) {
	b := NewBuilder()
	if configFile != "" {
		b.AddSource(FromFile(configFile).AsOptional())
	}
	return b.
		AddSource(FromEnv(envPrefix)).
		AddSource(FromOSArgs()).
		Build()
}

// MustQuick is like Quick but panics on error
func MustQuick(configFile, envPrefix string) *Manager {
	m, err := Quick(configFile, envPrefix)
	if err != nil {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return m
}

// Validate checks that all required paths are set, either directly or as a table
func (m *Manager) Validate(required ...string) error {
	var missing []string

	for _, path := range required {
		if !m.Has(path) && len(m.KeysWithPrefix(path)) == 0 {
			missing = append(missing, path)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Debug returns a formatted string showing all configuration values and their sources
func (m *Manager) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	b.WriteString("Sources (registration order):\n")
	for i, src := range m.sources {
		fmt.Fprintf(&b, "  #%d %s (precedence %d)\n", i, src, src.Precedence)
	}
	b.WriteString("Current values:\n")

	for _, path := range m.keys {
		val := m.values[path]
		fmt.Fprintf(&b, "  %s = %s (%s)", path, val.Text(), val.Kind())
		if src, ok := m.Origin(path); ok {
			fmt.Fprintf(&b, " from #%d %s", m.origins[path], src)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// Dump writes the resolved configuration to w in TOML format for inspection
func (m *Manager) Dump(w io.Writer) error {
	encoder := toml.NewEncoder(w)
	if err := encoder.Encode(m.AllSettings()); err != nil {
		return fmt.Errorf("failed to encode configuration as TOML: %w", err)
	}
	return nil
}
