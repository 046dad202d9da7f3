// FILE: error.go
package config

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is against the typed errors below.
var (
	ErrSyntax            = errors.New("syntax error")
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrMalformedArgument = errors.New("malformed command-line argument")
	ErrRootNotAMap       = errors.New("config root is not a map")
	ErrUnreadable        = errors.New("config source unreadable")

	// ErrConfigNotFound is wrapped by the unreadable ParseError of a required file
	// source that does not exist. Optional sources swallow it.
	ErrConfigNotFound = errors.New("configuration file not found")

	ErrTypeMismatch    = errors.New("type mismatch")
	ErrBuilderConsumed = errors.New("builder already used")
	ErrValidation      = errors.New("configuration validation failed")
)

// ParseKind classifies a ParseError
type ParseKind int

const (
	ParseSyntax ParseKind = iota
	ParseUnsupportedFormat
	ParseMalformedArgument
	ParseRootNotAMap
	ParseUnreadable
)

func (k ParseKind) sentinel() error {
	switch k {
	case ParseSyntax:
		return ErrSyntax
	case ParseUnsupportedFormat:
		return ErrUnsupportedFormat
	case ParseMalformedArgument:
		return ErrMalformedArgument
	case ParseRootNotAMap:
		return ErrRootNotAMap
	default:
		return ErrUnreadable
	}
}

func (k ParseKind) String() string { return k.sentinel().Error() }

// ParseError is produced by a source adapter that cannot turn its input into a Value tree.
type ParseError struct {
	Kind   ParseKind
	Origin string // file path, env prefix or argument list
	Format Format // file sources only
	Line   int    // 1-based, 0 when unknown
	Token  string // offending CLI token
	Msg    string
	Err    error // underlying decoder or I/O error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ParseSyntax:
		if e.Line > 0 {
			return fmt.Sprintf("%s in %s (%s) at line %d: %s", ErrSyntax, e.Origin, e.Format, e.Line, e.Msg)
		}
		return fmt.Sprintf("%s in %s (%s): %s", ErrSyntax, e.Origin, e.Format, e.Msg)
	case ParseUnsupportedFormat:
		return fmt.Sprintf("%s for %s: %s", ErrUnsupportedFormat, e.Origin, e.Msg)
	case ParseMalformedArgument:
		return fmt.Sprintf("%s %q: %s", ErrMalformedArgument, e.Token, e.Msg)
	case ParseRootNotAMap:
		return fmt.Sprintf("%s in %s: %s", ErrRootNotAMap, e.Origin, e.Msg)
	default:
		return fmt.Sprintf("%s: %s: %v", ErrUnreadable, e.Origin, e.Err)
	}
}

// Is matches the sentinel of the error's kind
func (e *ParseError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *ParseError) Unwrap() error { return e.Err }

// SourceFailedError aborts Build when a source adapter fails.
type SourceFailedError struct {
	Source Source
	Index  int // registration index
	Cause  *ParseError
}

func (e *SourceFailedError) Error() string {
	return fmt.Sprintf("source #%d (%s) failed: %v", e.Index, e.Source, e.Cause)
}

func (e *SourceFailedError) Unwrap() error { return e.Cause }

// TypeMismatchError is returned by a typed getter when the stored value
// cannot be coerced to the requested type.
type TypeMismatchError struct {
	Key      string
	Expected Kind
	Want     string // requested type when narrower than Expected, e.g. "unsigned int"
	Actual   Kind
	Value    string // rendered offending value
}

func (e *TypeMismatchError) Error() string {
	want := e.Want
	if want == "" {
		want = e.Expected.String()
	}
	return fmt.Sprintf("%s for path %s: expected %s, got %s %q", ErrTypeMismatch, e.Key, want, e.Actual, e.Value)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }
