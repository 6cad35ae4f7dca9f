package quiz

import (
	"context"
	"fmt"
)

// Validator reports per-row import problems without touching the data.
type Validator struct {
	Schema Schema
}

func NewValidator(schema Schema) *Validator {
	return &Validator{Schema: schema}
}

// Check returns the problems for one row: at most one, except that an
// ambiguous correct answer is reported for a row that otherwise passes.
func (v *Validator) Check(row Row, line int) []Problem {
	fail := func(code Code, msg string) []Problem {
		return []Problem{{Row: line, Code: code, Message: msg}}
	}
	if row.Blank() {
		return fail(CodeEmptyRow, "Row is empty")
	}
	det := v.Schema.Detect(row)
	if !det.OK {
		return fail(CodeNoLanguage, "No language detected: add `language` or language-specific columns like `question_de`")
	}
	if len(det.OptionColumns) != 4 {
		return fail(CodeMissingOptions, fmt.Sprintf("Expected 4 options for language `%s` but found %d", det.Language, len(det.OptionColumns)))
	}
	if row.text(det.QuestionColumn) == "" {
		return fail(CodeMissingQuestion, fmt.Sprintf("Question field `%s` empty", det.QuestionColumn))
	}
	ca := row.text(colCorrectAnswer)
	if ca == "" {
		return fail(CodeMissingCorrect, "`correct_answer` empty")
	}
	matches := 0
	for _, col := range det.OptionColumns {
		if row.text(col) == ca {
			matches++
		}
	}
	switch {
	case matches == 0:
		if idx, ok := parseIndex(ca); ok {
			if idx >= 1 && idx <= 4 {
				return fail(CodeIndexInCorrectAnswer, "`correct_answer` is numeric index; consider replacing with option text")
			}
			return fail(CodeInvalidIndex, "`correct_answer` numeric but out of 1..4 range")
		}
		return fail(CodeCorrectMismatch, "`correct_answer` does not equal any option exactly (whitespace/encoding mismatch?)")
	case matches > 1:
		return fail(CodeAmbiguousCorrect, "`correct_answer` matches multiple options")
	}
	return nil
}

// Validate checks every row in order. Row numbers start at 1.
func (v *Validator) Validate(ctx context.Context, rows []Row, workers int) ([]Problem, error) {
	found := make([][]Problem, len(rows))
	err := runOrdered(ctx, len(rows), workers, func(i int) {
		found[i] = v.Check(rows[i], i+1)
	})
	if err != nil {
		return nil, err
	}
	var out []Problem
	for _, ps := range found {
		out = append(out, ps...)
	}
	return out, nil
}
