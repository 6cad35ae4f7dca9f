package quiz

import (
	"math"
	"testing"
)

var cities = []string{"Berlin", "Hamburg", "Munich", "Cologne"}

func TestReconcile(t *testing.T) {
	rc := NewReconciler(DefaultThreshold, true)
	cases := []struct {
		name    string
		value   string
		options []string
		answer  string
		outcome Outcome
		option  int
	}{
		{"blank", "   ", cities, "", Empty, -1},
		{"index", " 3 ", cities, "Munich", NumericIndexResolved, 2},
		{"exact after trim", " Hamburg ", cities, "Hamburg", ExactMatch, 1},
		{"fuzzy case and space", "berlin ", cities, "Berlin", FuzzyMatched, 0},
		{"unresolved", "Paris", cities, "Paris", Unresolved, -2},
		{"index out of range is text", "5", cities, "5", Unresolved, -2},
		{"signed number is text", "+2", cities, "+2", Unresolved, -2},
		{"options trimmed for exact", "Rome", []string{" Rome ", "Oslo", "", ""}, "Rome", ExactMatch, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := rc.Reconcile(tc.value, tc.options)
			if got.Answer != tc.answer || got.Outcome != tc.outcome {
				t.Fatalf("Reconcile(%q) = (%q, %s), want (%q, %s)", tc.value, got.Answer, got.Outcome, tc.answer, tc.outcome)
			}
			if tc.option != -2 && got.Option != tc.option {
				t.Fatalf("Option = %d, want %d", got.Option, tc.option)
			}
		})
	}
}

func TestReconcileFuzzyScore(t *testing.T) {
	got := NewReconciler(DefaultThreshold, false).Reconcile("berlin ", cities)
	if got.Outcome != FuzzyMatched {
		t.Fatalf("expected fuzzy match, got %s", got.Outcome)
	}
	// The input is trimmed before scoring: "berlin" vs "Berlin".
	if math.Abs(got.Score-10.0/12.0) > 1e-12 {
		t.Fatalf("expected score 10/12, got %.15f", got.Score)
	}
}

func TestReconcileWithoutIndexResolution(t *testing.T) {
	got := NewReconciler(DefaultThreshold, false).Reconcile("2", []string{"1", "2", "3", "4"})
	if got.Outcome != ExactMatch || got.Option != 1 {
		t.Fatalf("expected exact match on option 2, got %+v", got)
	}
	got = NewReconciler(DefaultThreshold, true).Reconcile("2", []string{"4", "3", "2", "1"})
	if got.Outcome != NumericIndexResolved || got.Answer != "3" {
		t.Fatalf("expected index resolution to option 2, got %+v", got)
	}
}

func TestReconcileIndexToEmptyOption(t *testing.T) {
	got := NewReconciler(DefaultThreshold, true).Reconcile("4", []string{"a", "b", "c", ""})
	if got.Outcome != NumericIndexResolved || got.Answer != "" {
		t.Fatalf("expected empty answer from index, got %+v", got)
	}
}

func TestBestMatchTieKeepsFirst(t *testing.T) {
	idx, score := BestMatch("ab", []string{"ax", "ay", "ab "})
	if idx != 2 || score != 1 {
		t.Fatalf("expected exact option after trim, got %d %.3f", idx, score)
	}
	idx, _ = BestMatch("ab", []string{"ax", "ay"})
	if idx != 0 {
		t.Fatalf("expected first of tied options, got %d", idx)
	}
	idx, score = BestMatch("zz", []string{"ab", "cd"})
	if idx != -1 || score != 0 {
		t.Fatalf("expected no match, got %d %.3f", idx, score)
	}
}

func TestReconcileDoesNotMutateOptions(t *testing.T) {
	opts := []string{" Berlin ", "Hamburg", "Munich", "Cologne"}
	_ = NewReconciler(DefaultThreshold, true).Reconcile("berlin", opts)
	if opts[0] != " Berlin " {
		t.Fatalf("options mutated: %q", opts)
	}
}
