// Package analytics holds the in-memory aggregations behind dashboard charts.
package analytics

import "math"

// Unassigned labels items whose key is empty.
const Unassigned = "Unassigned"

type Pair struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// GroupCount counts items per key. Pairs appear in the order each key is
// first seen and their values sum to len(items).
func GroupCount[T any](items []T, key func(T) string) []Pair {
	index := map[string]int{}
	out := []Pair{}
	for _, item := range items {
		name := key(item)
		if name == "" {
			name = Unassigned
		}
		if i, ok := index[name]; ok {
			out[i].Value++
			continue
		}
		index[name] = len(out)
		out = append(out, Pair{Name: name, Value: 1})
	}
	return out
}

// TurnoverRate is separations over the average of the opening and closing
// headcount, as a percentage with one decimal.
func TurnoverRate(separations, headcountStart, headcountEnd int) float64 {
	avg := float64(headcountStart+headcountEnd) / 2
	if avg <= 0 {
		return 0
	}
	return math.Round(float64(separations)/avg*1000) / 10
}
