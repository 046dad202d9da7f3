// FILE: loader.go
package config

import (
	"fmt"
	"os"
	"strings"
)

// SourceKind identifies the adapter used for a Source
type SourceKind string

const (
	// SourceFile represents values loaded from a configuration file
	SourceFile SourceKind = "file"
	// SourceEnv represents values loaded from environment variables
	SourceEnv SourceKind = "env"
	// SourceCLI represents values loaded from command-line arguments
	SourceCLI SourceKind = "cli"
)

// Precedence ranks sources during the merge. Higher values win.
type Precedence int

const (
	PrecedenceFile Precedence = 0
	PrecedenceEnv  Precedence = 1
	PrecedenceCLI  Precedence = 2
)

// Source describes one configuration origin registered on a Builder.
// Sources are plain values; the With/As modifiers return modified copies.
type Source struct {
	Kind       SourceKind
	Precedence Precedence

	// File
	Path     string
	Format   Format
	Optional bool

	// Environment
	Prefix string

	// CLI
	Args       []string
	valueFlags map[string]bool
}

// FromFile describes a file source. The format is inferred from the extension
// unless set with WithFormat.
func FromFile(path string) Source {
	return Source{Kind: SourceFile, Precedence: PrecedenceFile, Path: path}
}

// FromEnv describes the process environment filtered by prefix.
// The prefix is stripped before key normalization; an empty prefix matches every variable.
func FromEnv(prefix string) Source {
	return Source{Kind: SourceEnv, Precedence: PrecedenceEnv, Prefix: prefix}
}

// FromArgs describes an explicit argument list in --key value / --key=value form
func FromArgs(args []string) Source {
	cp := make([]string, len(args))
	copy(cp, args)
	return Source{Kind: SourceCLI, Precedence: PrecedenceCLI, Args: cp}
}

// FromOSArgs describes the process arguments, program name excluded
func FromOSArgs() Source {
	if len(os.Args) < 2 {
		return FromArgs(nil)
	}
	return FromArgs(os.Args[1:])
}

// WithPrecedence overrides the default precedence of the source kind
func (s Source) WithPrecedence(p Precedence) Source {
	s.Precedence = p
	return s
}

// WithFormat sets an explicit file format, bypassing extension inference
func (s Source) WithFormat(f Format) Source {
	s.Format = f
	return s
}

// AsOptional makes a missing file load as an empty tree instead of failing the build
func (s Source) AsOptional() Source {
	s.Optional = true
	return s
}

// RequireValue marks CLI keys that must be followed by a value.
// A bare flag for one of these keys is a malformed argument instead of boolean true.
// Keys are given in normalized dotted form or as flag names.
func (s Source) RequireValue(keys ...string) Source {
	flags := make(map[string]bool, len(s.valueFlags)+len(keys))
	for k := range s.valueFlags {
		flags[k] = true
	}
	for _, k := range keys {
		flags[NormalizeFlagKey(k)] = true
	}
	s.valueFlags = flags
	return s
}

// String renders the origin for diagnostics
func (s Source) String() string {
	switch s.Kind {
	case SourceFile:
		if s.Format != "" {
			return fmt.Sprintf("file:%s[%s]", s.Path, s.Format)
		}
		return "file:" + s.Path
	case SourceEnv:
		return "env:" + s.Prefix
	case SourceCLI:
		return "cli:[" + strings.Join(s.Args, " ") + "]"
	}
	return string(s.Kind)
}

// origin is the bare origin metadata carried into parse errors
func (s Source) origin() string {
	switch s.Kind {
	case SourceFile:
		return s.Path
	case SourceEnv:
		return s.Prefix
	}
	return strings.Join(s.Args, " ")
}

// load runs the adapter for the source kind and returns its flattened key space.
// Environment and CLI trees carry already-normalized dotted keys, so flattening
// them is the identity on their single level. missing reports an optional file
// that does not exist.
func (s Source) load(env EnvProvider) (flat Flat, missing bool, err error) {
	var root Value

	switch s.Kind {
	case SourceFile:
		root, missing, err = loadFile(s)
	case SourceEnv:
		root = loadEnv(env, s.Prefix)
	case SourceCLI:
		root, err = parseArgs(s.Args, s.valueFlags)
	default:
		return nil, false, &ParseError{Kind: ParseUnsupportedFormat, Origin: s.origin(), Msg: fmt.Sprintf("unknown source kind %q", s.Kind)}
	}
	if err != nil {
		return nil, false, err
	}

	return Flatten(root), missing, nil
}
