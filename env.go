// FILE: env.go
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvProvider isolates access to environment variables so callers and tests
// can substitute a fixed mapping for the process environment.
type EnvProvider interface {
	Environ() map[string]string
}

// OSEnv reads the live process environment
type OSEnv struct{}

// Environ returns a snapshot of the process environment
func (OSEnv) Environ() map[string]string {
	return env.ToMap(os.Environ())
}

// MapEnv is a fixed environment, typically used in tests
type MapEnv map[string]string

// Environ returns a copy of the mapping
func (m MapEnv) Environ() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// loadEnv collects every variable matching prefix into a map keyed by normalized
// dotted path. Each value is a String leaf. Variable names are visited in sorted
// order so that two names normalizing to the same key resolve deterministically.
func loadEnv(provider EnvProvider, prefix string) Value {
	if provider == nil {
		provider = OSEnv{}
	}
	vars := provider.Environ()

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make(map[string]Value)
	for _, name := range names {
		key, ok := NormalizeEnvKey(name, prefix)
		if !ok {
			continue
		}
		fields[key] = String(vars[name])
	}

	return Map(fields)
}

// NormalizeEnvKey maps an environment variable name to a dotted config path.
// The prefix is matched case-sensitively and stripped, the remainder is lowercased
// and split on underscores, empty segments are dropped:
//
//	APP_DATABASE_URL (prefix "APP_") -> database.url
//	A__B                             -> a.b
//
// It reports false when the name does not carry the prefix or leaves no key.
func NormalizeEnvKey(name, prefix string) (string, bool) {
	if !strings.HasPrefix(name, prefix) {
		return "", false
	}
	rest := strings.ToLower(strings.TrimPrefix(name, prefix))

	segments := strings.Split(rest, "_")
	kept := segments[:0]
	for _, seg := range segments {
		if seg != "" {
			kept = append(kept, seg)
		}
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, "."), true
}
