package quiz

import (
	"strings"

	"quizprep/internal/similarity"
)

// DefaultThreshold is the minimum similarity for a fuzzy answer repair.
const DefaultThreshold = 0.75

// Outcome says how a correct-answer value was reconciled against the options.
type Outcome int

const (
	Empty Outcome = iota
	NumericIndexResolved
	ExactMatch
	FuzzyMatched
	Unresolved
)

func (o Outcome) String() string {
	switch o {
	case Empty:
		return "empty"
	case NumericIndexResolved:
		return "numeric_index_resolved"
	case ExactMatch:
		return "exact_match"
	case FuzzyMatched:
		return "fuzzy_matched"
	case Unresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Reconciliation is the result of Reconcile.
type Reconciliation struct {
	Answer  string
	Outcome Outcome
	// Score is the best similarity seen; 1 for exact and index matches.
	Score float64
	// Option is the 0-based index of the chosen option, or -1.
	Option int
}

// Reconciler maps a free-text or numeric correct-answer value onto one of a
// row's options.
type Reconciler struct {
	Threshold float64
	// ResolveIndex treats values "1".."4" as 1-based option positions.
	ResolveIndex bool
}

func NewReconciler(threshold float64, resolveIndex bool) Reconciler {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Reconciler{Threshold: threshold, ResolveIndex: resolveIndex}
}

// Reconcile never fails: values it cannot place come back Unresolved with
// the trimmed input as Answer. options is read only.
func (rc Reconciler) Reconcile(value string, options []string) Reconciliation {
	ca := strings.TrimSpace(value)
	if ca == "" {
		return Reconciliation{Outcome: Empty, Option: -1}
	}
	if rc.ResolveIndex {
		if idx, ok := parseIndex(ca); ok && idx >= 1 && idx <= 4 && idx <= len(options) {
			return Reconciliation{
				Answer:  strings.TrimSpace(options[idx-1]),
				Outcome: NumericIndexResolved,
				Score:   1,
				Option:  idx - 1,
			}
		}
	}
	for i, opt := range options {
		if o := strings.TrimSpace(opt); o == ca {
			return Reconciliation{Answer: o, Outcome: ExactMatch, Score: 1, Option: i}
		}
	}
	best, score := BestMatch(ca, options)
	if best >= 0 && score >= rc.threshold() {
		return Reconciliation{
			Answer:  strings.TrimSpace(options[best]),
			Outcome: FuzzyMatched,
			Score:   score,
			Option:  best,
		}
	}
	return Reconciliation{Answer: ca, Outcome: Unresolved, Score: score, Option: best}
}

func (rc Reconciler) threshold() float64 {
	if rc.Threshold <= 0 {
		return DefaultThreshold
	}
	return rc.Threshold
}

// BestMatch returns the index and score of the option most similar to
// target. Ties keep the earliest option; -1 means no option scored above 0.
func BestMatch(target string, options []string) (int, float64) {
	t := strings.TrimSpace(target)
	best, bestScore := -1, 0.0
	for i, opt := range options {
		score := similarity.Ratio(t, strings.TrimSpace(opt))
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, bestScore
}
