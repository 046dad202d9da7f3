// File: type.go
package config

import (
	"math"
	"strconv"
	"strings"
)

// Every typed getter follows the same contract: an absent path returns the zero
// value with ok == false and a nil error; a present value that cannot be coerced
// returns a *TypeMismatchError.

// String retrieves a string value. Numbers and booleans are formatted;
// lists and maps are a type mismatch.
func (m *Manager) String(path string) (string, bool, error) {
	val, found := m.Get(path)
	if !found {
		return "", false, nil
	}

	switch val.Kind() {
	case KindString, KindBool, KindInt, KindFloat:
		return val.Text(), true, nil
	}
	return "", true, mismatch(path, KindString, val)
}

// Int64 retrieves an integer value. Strings are parsed as base-10 integers;
// floats are accepted only when they hold an exact integer within range.
func (m *Manager) Int64(path string) (int64, bool, error) {
	val, found := m.Get(path)
	if !found {
		return 0, false, nil
	}

	switch val.Kind() {
	case KindInt:
		return val.i, true, nil
	case KindFloat:
		f := val.f
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			return int64(f), true, nil
		}
	case KindString:
		if i, err := strconv.ParseInt(val.s, 10, 64); err == nil {
			return i, true, nil
		}
	}
	return 0, true, mismatch(path, KindInt, val)
}

// Uint64 retrieves a non-negative integer value
func (m *Manager) Uint64(path string) (uint64, bool, error) {
	val, found := m.Get(path)
	if !found {
		return 0, false, nil
	}

	switch val.Kind() {
	case KindInt:
		if val.i >= 0 {
			return uint64(val.i), true, nil
		}
	case KindFloat:
		f := val.f
		if f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 {
			return uint64(f), true, nil
		}
	case KindString:
		if u, err := strconv.ParseUint(val.s, 10, 64); err == nil {
			return u, true, nil
		}
	}
	err := mismatch(path, KindInt, val)
	err.Want = "unsigned int"
	return 0, true, err
}

// Bool retrieves a boolean value. Strings must be "true" or "false" in any case.
func (m *Manager) Bool(path string) (bool, bool, error) {
	val, found := m.Get(path)
	if !found {
		return false, false, nil
	}

	switch val.Kind() {
	case KindBool:
		return val.b, true, nil
	case KindString:
		switch strings.ToLower(val.s) {
		case "true":
			return true, true, nil
		case "false":
			return false, true, nil
		}
	}
	return false, true, mismatch(path, KindBool, val)
}

// Float64 retrieves a float value. Integers convert; strings are parsed as
// finite decimals, so "NaN", "Inf" and hexadecimal forms are a type mismatch.
func (m *Manager) Float64(path string) (float64, bool, error) {
	val, found := m.Get(path)
	if !found {
		return 0, false, nil
	}

	switch val.Kind() {
	case KindFloat:
		return val.f, true, nil
	case KindInt:
		return float64(val.i), true, nil
	case KindString:
		if f, ok := parseDecimal(val.s); ok {
			return f, true, nil
		}
	}
	return 0, true, mismatch(path, KindFloat, val)
}

// List retrieves a list value. The returned slice is a copy.
func (m *Manager) List(path string) ([]Value, bool, error) {
	val, found := m.Get(path)
	if !found {
		return nil, false, nil
	}
	if val.Kind() != KindList {
		return nil, true, mismatch(path, KindList, val)
	}
	return val.Items(), true, nil
}

// Map retrieves the table at path, rebuilt from every resolved path below it
// and nested one level per path segment. An empty table kept by flattening
// counts as present; children set by other sources fill it.
func (m *Manager) Map(path string) (map[string]Value, bool, error) {
	prefix := strings.TrimSuffix(path, ".")

	leaf, found := m.Get(prefix)
	if found && leaf.Kind() != KindMap {
		return nil, true, mismatch(path, KindMap, leaf)
	}

	var children []string
	for _, k := range m.KeysWithPrefix(prefix) {
		if k != prefix {
			children = append(children, k)
		}
	}
	if len(children) == 0 {
		if found {
			return leaf.Fields(), true, nil
		}
		return nil, false, nil
	}

	if prefix != "" {
		prefix += "."
	}
	return subtree(m.values, children, prefix), true, nil
}

// subtree nests the values of keys (all starting with prefix) by their
// remaining segments
func subtree(values Flat, keys []string, prefix string) map[string]Value {
	groups := make(map[string][]string)
	out := make(map[string]Value)
	for _, key := range keys {
		rest := strings.TrimPrefix(key, prefix)
		head, _, nested := strings.Cut(rest, ".")
		if !nested {
			out[head] = values[key]
			continue
		}
		groups[head] = append(groups[head], key)
	}
	for head, group := range groups {
		// A scalar sharing its name with a deeper table loses to the table
		out[head] = Map(subtree(values, group, prefix+head+"."))
	}
	return out
}

// parseDecimal accepts base-10 float syntax with a finite result
func parseDecimal(s string) (float64, bool) {
	lower := strings.ToLower(s)
	if strings.Contains(lower, "0x") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func mismatch(path string, expected Kind, val Value) *TypeMismatchError {
	return &TypeMismatchError{Key: path, Expected: expected, Want: expected.String(), Actual: val.Kind(), Value: val.Text()}
}
