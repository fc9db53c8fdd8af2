package config

import (
	"sort"
	"strings"
)

// Matrix maps each discriminating configuration key to its candidate values.
// A resolved configuration is a Matrix with exactly one value per key.
type Matrix map[string][]string

// Combinations returns all cartesian product combinations of the matrix.
// Keys are sorted alphabetically and values are joined with "-" in key order,
// so the same matrix always produces the same strings in the same order.
func (m Matrix) Combinations() []string {
	if len(m) == 0 {
		return nil
	}
	keys := m.keys()

	result := make([]string, len(m[keys[0]]))
	copy(result, m[keys[0]])

	for _, k := range keys[1:] {
		values := m[k]
		next := make([]string, 0, len(result)*len(values))
		for _, prev := range result {
			for _, v := range values {
				next = append(next, prev+"-"+v)
			}
		}
		result = next
	}
	return result
}

// CombinationCount returns the number of combinations without building them.
func (m Matrix) CombinationCount() int {
	if len(m) == 0 {
		return 0
	}
	count := 1
	for _, v := range m {
		count *= len(v)
	}
	return count
}

// String returns the first combination, which for a resolved configuration
// is its only one.
func (m Matrix) String() string {
	combos := m.Combinations()
	if len(combos) == 0 {
		return ""
	}
	return combos[0]
}

// Keys returns the matrix keys in combination order.
func (m Matrix) Keys() string {
	return strings.Join(m.keys(), "-")
}

func (m Matrix) keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FullMatrix lists every supported value for every discriminating key.
func FullMatrix() Matrix {
	return Matrix{
		"arch":       strs(allArchs),
		"build_type": strs(allBuildTypes),
		"generator":  strs(allGenerators),
		"os":         strs(allOS),
		"pkg_mgr":    strs(allPkgMgrs),
	}
}

func strs[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}
