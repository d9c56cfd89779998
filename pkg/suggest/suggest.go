// Package suggest finds likely intended names for a mistyped flag or option value.
package suggest

import (
	"cmp"
	"slices"
	"strings"
)

// threshold is the minimum similarity score required for a string to be considered similar.
const threshold = 0.5

type scored struct {
	name  string
	score float64
}

// FindSimilar returns up to maxResults candidates that resemble target, most similar first. Ties
// are broken alphabetically. Leading dashes are ignored on both sides, so "--mdoe" matches "-mode"
// and the candidate is returned as given.
func FindSimilar(target string, candidates []string, maxResults int) []string {
	target = strings.TrimLeft(target, "-")
	if target == "" || maxResults <= 0 {
		return []string{}
	}

	matches := make([]scored, 0, len(candidates))
	for _, name := range candidates {
		score := calculateSimilarity(target, strings.TrimLeft(name, "-"))
		if score > threshold {
			matches = append(matches, scored{name, score})
		}
	}
	slices.SortFunc(matches, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	result := make([]string, 0, min(maxResults, len(matches)))
	for _, m := range matches[:min(maxResults, len(matches))] {
		result = append(result, m.name)
	}
	return result
}

func calculateSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 1.0
	}
	if strings.HasPrefix(b, a) {
		return 0.9
	}
	distance := editDistance(a, b)
	maxLen := float64(max(len(a), len(b)))
	return 1.0 - float64(distance)/maxLen
}

// editDistance computes the optimal string alignment distance between a and b: insertions,
// deletions, substitutions and transpositions of adjacent bytes each cost one.
func editDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Three rolling rows: i-2, i-1 and i.
	older := make([]int, len(b)+1)
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				curr[j] = min(curr[j], older[j-2]+1) // transposition
			}
		}
		older, prev, curr = prev, curr, older
	}
	return prev[len(b)]
}
