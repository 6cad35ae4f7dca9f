package quiz

import "fmt"

// Code classifies a row-level data-quality defect.
type Code string

const (
	CodeEmptyRow             Code = "empty_row"
	CodeNoLanguage           Code = "no_language"
	CodeMissingOptions       Code = "missing_options"
	CodeMissingQuestion      Code = "missing_question"
	CodeMissingCorrect       Code = "missing_correct"
	CodeIndexInCorrectAnswer Code = "index_in_correct_answer"
	CodeInvalidIndex         Code = "invalid_index"
	CodeCorrectMismatch      Code = "correct_mismatch"
	CodeAmbiguousCorrect     Code = "ambiguous_correct"

	// Answer fixer outcomes.
	CodeEmptyCorrect Code = "empty_correct"
	CodeFixed        Code = "fixed"
	CodeNoFix        Code = "no_fix"
)

// Problem is one finding for one input row.
type Problem struct {
	Row     int    `json:"row"`
	Code    Code   `json:"code"`
	Message string `json:"message,omitempty"`
}

func (p Problem) String() string {
	if p.Message == "" {
		return fmt.Sprintf("Row %d: %s", p.Row, p.Code)
	}
	return fmt.Sprintf("Row %d: %s - %s", p.Row, p.Code, p.Message)
}

// Fix records what the answer fixer did with one row.
type Fix struct {
	Row   int     `json:"row"`
	Code  Code    `json:"code"`
	Score float64 `json:"score"`
	Best  string  `json:"best,omitempty"`
}

func (f Fix) String() string {
	switch f.Code {
	case CodeFixed:
		return fmt.Sprintf("Row %d: fixed (score=%.2f) -> %q", f.Row, f.Score, f.Best)
	case CodeEmptyCorrect:
		return fmt.Sprintf("Row %d: missing correct_answer", f.Row)
	default:
		return fmt.Sprintf("Row %d: no confident match (best_score=%.2f)", f.Row, f.Score)
	}
}

// CountByCode tallies problems per code.
func CountByCode(problems []Problem) map[Code]int {
	out := make(map[Code]int)
	for _, p := range problems {
		out[p.Code]++
	}
	return out
}
