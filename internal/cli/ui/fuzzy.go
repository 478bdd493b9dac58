package ui

import (
	"iter"
	"slices"
	"strings"
)

const (
	// DefaultMaxDistance is the default maximum edit distance to consider for fuzzy matching
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions is the default maximum number of suggestions to return
	DefaultMaxSuggestions = 3
)

// FuzzyMatchOptions configures fuzzy matching behavior
type FuzzyMatchOptions struct {
	MaxDistance    int // default DefaultMaxDistance
	MaxSuggestions int // default DefaultMaxSuggestions
}

type suggestion struct {
	value    string
	distance int
}

// SuggestNames returns catalogue FullNames close to target, ignoring case.
// A candidate whose short name (the part after the last '.') equals target
// ranks first, so "Actor" suggests "Engine.Actor". Ties keep candidate
// order.
func SuggestNames(target string, candidates iter.Seq[string], opts *FuzzyMatchOptions) []string {
	maxDistance, maxSuggestions := DefaultMaxDistance, DefaultMaxSuggestions
	if opts != nil {
		if opts.MaxDistance > 0 {
			maxDistance = opts.MaxDistance
		}
		if opts.MaxSuggestions > 0 {
			maxSuggestions = opts.MaxSuggestions
		}
	}

	target = strings.ToLower(target)
	var found []suggestion
	for candidate := range candidates {
		lower := strings.ToLower(candidate)
		if lower == target {
			continue
		}

		short := lower
		if i := strings.LastIndexByte(lower, '.'); i >= 0 {
			short = lower[i+1:]
		}
		if short == target {
			found = append(found, suggestion{value: candidate, distance: 0})
			continue
		}

		if d := min(LevenshteinDistance(target, lower), LevenshteinDistance(target, short)); d <= maxDistance {
			found = append(found, suggestion{value: candidate, distance: d})
		}
	}

	slices.SortStableFunc(found, func(a, b suggestion) int {
		return a.distance - b.distance
	})

	result := make([]string, 0, maxSuggestions)
	for i := 0; i < len(found) && i < maxSuggestions; i++ {
		result = append(result, found[i].value)
	}
	return result
}

// LevenshteinDistance is the minimum number of single-rune insertions,
// deletions or substitutions that turn s1 into s2.
func LevenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

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
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
