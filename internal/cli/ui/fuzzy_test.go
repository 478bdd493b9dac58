package ui

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"actor", "actr", 1},
		{"größe", "grösse", 2},
	}

	for _, tt := range tests {
		if got := LevenshteinDistance(tt.s1, tt.s2); got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}

func TestSuggestNames(t *testing.T) {
	names := []string{"Core.Object", "Engine.Actor", "Engine.ActorComponent", "Engine.Pawn", "Core.Vector"}

	tests := []struct {
		name   string
		target string
		opts   *FuzzyMatchOptions
		want   []string
	}{
		{"typo in full name", "Engine.Actr", nil, []string{"Engine.Actor"}},
		{"short name ranks first", "actor", nil, []string{"Engine.Actor", "Core.Vector"}},
		{"short name typo", "Pwn", nil, []string{"Engine.Pawn"}},
		{"exact match excluded", "engine.pawn", nil, []string{}},
		{"nothing close", "Skeleton", nil, []string{}},
		{"limit", "Core.Objec", &FuzzyMatchOptions{MaxDistance: 10, MaxSuggestions: 1}, []string{"Core.Object"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestNames(tt.target, slices.Values(names), tt.opts)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SuggestNames(%q) mismatch (-want +got):\n%s", tt.target, diff)
			}
		})
	}
}
