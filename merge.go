// FILE: merge.go
package config

import "sort"

// Layer is the flattened output of one source, tagged with its registration index
type Layer struct {
	Source Source
	Index  int
	Values Flat
}

// Resolved is the merged key space together with the index of the source that
// supplied each value
type Resolved struct {
	Values  Flat
	Origins map[string]int
}

// Merge combines layers in ascending precedence, registration index breaking ties,
// so a later layer replaces any value an earlier one set for the same key.
// Null values are skipped: they never overwrite an earlier value and are never
// kept on their own. The input slice and its maps are not modified.
func Merge(layers []Layer) Resolved {
	ordered := make([]Layer, len(layers))
	copy(ordered, layers)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Source.Precedence != ordered[j].Source.Precedence {
			return ordered[i].Source.Precedence < ordered[j].Source.Precedence
		}
		return ordered[i].Index < ordered[j].Index
	})

	resolved := Resolved{
		Values:  make(Flat),
		Origins: make(map[string]int),
	}
	for _, layer := range ordered {
		for key, value := range layer.Values {
			if value.IsNull() {
				continue
			}
			resolved.Values[key] = value
			resolved.Origins[key] = layer.Index
		}
	}

	return resolved
}
