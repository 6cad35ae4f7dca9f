package quiz

import (
	"context"
	"strings"
)

// Fixer repairs correct_answer cells that do not exactly match any option,
// using fuzzy matching against every `option*` column.
type Fixer struct {
	Threshold     float64
	optionColumns []string
}

func NewFixer(schema Schema, threshold float64) *Fixer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	var cols []string
	for _, h := range schema.Headers() {
		if strings.HasPrefix(h, "option") {
			cols = append(cols, h)
		}
	}
	return &Fixer{Threshold: threshold, optionColumns: cols}
}

// OptionColumns lists the columns the fixer matches against.
func (f *Fixer) OptionColumns() []string { return append([]string(nil), f.optionColumns...) }

// Fix returns a repaired copy of row and what was done. ok is false when the
// row needs no report: all options blank, or an exact match.
func (f *Fixer) Fix(row Row, line int) (Row, Fix, bool) {
	options := make([]string, len(f.optionColumns))
	populated := false
	for i, col := range f.optionColumns {
		options[i] = row[col]
		if !isEmpty(options[i]) {
			populated = true
		}
	}
	if !populated {
		return row, Fix{}, false
	}
	ca := row.text(colCorrectAnswer)
	if ca == "" {
		return row, Fix{Row: line, Code: CodeEmptyCorrect}, true
	}
	for _, opt := range options {
		if strings.TrimSpace(opt) == ca {
			return row, Fix{}, false
		}
	}
	best, score := BestMatch(ca, options)
	if best < 0 {
		return row, Fix{Row: line, Code: CodeNoFix, Score: score}, true
	}
	if score >= f.Threshold {
		out := row.clone()
		out[colCorrectAnswer] = options[best]
		return out, Fix{Row: line, Code: CodeFixed, Score: score, Best: options[best]}, true
	}
	return row, Fix{Row: line, Code: CodeNoFix, Score: score, Best: options[best]}, true
}

// FixAll applies Fix to every row in order. Row numbers start at 2. The
// returned rows are the input rows, with repaired rows replaced by copies.
func (f *Fixer) FixAll(ctx context.Context, rows []Row, workers int) ([]Row, []Fix, error) {
	out := make([]Row, len(rows))
	fixes := make([]*Fix, len(rows))
	err := runOrdered(ctx, len(rows), workers, func(i int) {
		r, fx, ok := f.Fix(rows[i], i+2)
		out[i] = r
		if ok {
			fixes[i] = &fx
		}
	})
	if err != nil {
		return nil, nil, err
	}
	var all []Fix
	for _, fx := range fixes {
		if fx != nil {
			all = append(all, *fx)
		}
	}
	return out, all, nil
}
