// File: doc.go

// Package config resolves one application configuration from several sources:
// JSON, YAML and TOML files, environment variables and command-line arguments,
// merged by precedence into an immutable snapshot with typed accessors.
//
// Features:
//   - File, environment and CLI sources with fixed or custom precedence
//   - Last-registered-wins among sources of equal precedence
//   - Dotted key paths shared by every source (APP_DATABASE_URL, --database-url
//     and {"database": {"url": ...}} all address database.url)
//   - Immutable Manager, safe for concurrent readers without locking
//   - Typed getters that separate an absent key from a mistyped one
//   - Struct, map and typed-list decoding of any section through mapstructure
//   - Source tracking to see where values originated
//   - Structured build tracing through zerolog
//
// Quick Start:
//
//	m, err := config.NewBuilder().
//	    AddSource(config.FromFile("config.yaml")).
//	    AddSource(config.FromEnv("MYAPP_")).
//	    AddSource(config.FromOSArgs()).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	url, ok, err := m.String("database.url")
//	port, _, err := m.Int64("server.port")
//
// Default Precedence (highest to lowest):
//  1. Command-line arguments (--server-port=9090 or --server.port 9090)
//  2. Environment variables (MYAPP_SERVER_PORT=9090)
//  3. Configuration files (config.yaml)
//
// Sources of equal precedence are applied in registration order, so a file
// added twice resolves to its last registration. WithPrecedence assigns a
// custom ordinal:
//
//	config.FromFile("override.json").WithPrecedence(config.PrecedenceCLI + 1)
//
// Null values never override: an explicit null in any source is dropped and
// the value from a lower-precedence source stays in effect.
//
// Absent keys are not errors. Every getter returns (value, ok, err): ok is
// false for an absent key, and err is a *TypeMismatchError when the stored
// value cannot be coerced to the requested type.
//
// Build fails fast: the first source that cannot be parsed aborts the build
// with a *SourceFailedError wrapping the adapter's *ParseError.
package config
