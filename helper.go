// FILE: helper.go
package config

import (
	"sort"
	"strings"
)

// Flat maps dotted key paths to leaf values
type Flat map[string]Value

// Flatten converts a Value tree to a flat map with dot-notation paths.
// Maps are walked recursively; lists and scalars are leaves, as is an empty
// nested map. A root that is not a map flattens to an empty mapping.
// Keys are visited in sorted order, so when a literal dotted key collides with
// a nested path the later key in sort order wins.
func Flatten(root Value) Flat {
	flat := make(Flat)
	if root.Kind() != KindMap {
		return flat
	}
	flattenInto(flat, root.m, "")
	return flat
}

func flattenInto(flat Flat, nested map[string]Value, prefix string) {
	keys := make([]string, 0, len(nested))
	for key := range nested {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := nested[key]
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		// Check if the value is a map that can be further flattened
		if value.Kind() == KindMap && len(value.m) > 0 {
			flattenInto(flat, value.m, newPath)
			continue
		}
		flat[newPath] = value
	}
}

// setNestedValue sets a value in a nested map using a dot-notation path.
// It creates intermediate maps if they don't exist.
// If a segment exists but is not a map, it will be overwritten by a new map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	// Iterate through segments up to the second-to-last one
	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		next, exists := current[segment]
		if nextMap, isMap := next.(map[string]any); exists && isMap {
			current = nextMap
			continue
		}
		newMap := make(map[string]any)
		current[segment] = newMap
		current = newMap
	}

	lastSegment := segments[len(segments)-1]
	// Never clobber a subtree already built from deeper paths
	if existing, isMap := current[lastSegment].(map[string]any); isMap {
		if valueMap, ok := value.(map[string]any); ok {
			for k, v := range valueMap {
				if _, taken := existing[k]; !taken {
					existing[k] = v
				}
			}
		}
		return
	}
	current[lastSegment] = value
}

// navigateToPath traverses nested map to reach the specified path
func navigateToPath(nested map[string]any, path string) any {
	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return nested
	}

	segments := strings.Split(path, ".")
	current := any(nested)

	for _, segment := range segments {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}

		value, exists := currentMap[segment]
		if !exists {
			return nil
		}
		current = value
	}

	return current
}

// isValidKeySegment checks if a single path segment is a valid key part:
// ASCII letters, digits, underscores and dashes.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}

	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isUnderscore := r == '_'
		isDash := r == '-'

		if !(isLetter || isDigit || isUnderscore || isDash) {
			return false
		}
	}
	return true
}
