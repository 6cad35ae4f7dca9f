package similarity

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the longest-matching-blocks similarity of a and b in [0,1]:
// 2*M/T where M is the number of matched runes and T the total rune count.
// The score is computed in both argument orders and the larger one wins, so
// Ratio(a, b) == Ratio(b, a).
func Ratio(a, b string) float64 {
	ar, br := runes(a), runes(b)
	fwd := difflib.NewMatcher(ar, br).Ratio()
	rev := difflib.NewMatcher(br, ar).Ratio()
	if rev > fwd {
		return rev
	}
	return fwd
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
