package quiz

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Columns is the canonical output column order.
var Columns = []string{
	"language", "question", "option1", "option2", "option3", "option4",
	"correct_answer", "is_active", "is_verified", "difficulty", "id",
}

// Record is one normalized, import-ready question.
type Record struct {
	Language      string
	Question      string
	Options       [4]string
	CorrectAnswer string
	IsActive      string
	IsVerified    string
	Difficulty    string
	ID            string
}

// Values returns the record's cells in Columns order.
func (r Record) Values() []string {
	return []string{
		r.Language, r.Question, r.Options[0], r.Options[1], r.Options[2], r.Options[3],
		r.CorrectAnswer, r.IsActive, r.IsVerified, r.Difficulty, r.ID,
	}
}

// RecordFromValues is the inverse of Values; short input leaves trailing
// fields empty.
func RecordFromValues(vals []string) Record {
	cell := func(i int) string {
		if i < len(vals) {
			return vals[i]
		}
		return ""
	}
	return Record{
		Language:      cell(0),
		Question:      cell(1),
		Options:       [4]string{cell(2), cell(3), cell(4), cell(5)},
		CorrectAnswer: cell(6),
		IsActive:      cell(7),
		IsVerified:    cell(8),
		Difficulty:    cell(9),
		ID:            cell(10),
	}
}

// Normalizer turns heterogeneous input rows into canonical records.
type Normalizer struct {
	Schema     Schema
	Reconciler Reconciler
	// AssignIDs fills blank ids using NewID.
	AssignIDs bool
	NewID     func() string
}

func NewNormalizer(schema Schema, threshold float64) *Normalizer {
	return &Normalizer{
		Schema:     schema,
		Reconciler: NewReconciler(threshold, true),
		NewID:      uuid.NewString,
	}
}

// Normalize converts one row; line is the row number used in issues. It
// returns false for rows with no non-blank cell, which are skipped silently.
func (n *Normalizer) Normalize(row Row, line int) (Record, []Problem, bool) {
	if row.Blank() {
		return Record{}, nil, false
	}
	det := n.Schema.Detect(row)

	var rec Record
	if det.OK {
		rec.Question = row.text(det.QuestionColumn)
		for i, col := range det.OptionColumns {
			if i < len(rec.Options) {
				rec.Options[i] = row.text(col)
			}
		}
		if det.Language != Generic {
			rec.Language = det.Language
		}
	}
	rec.CorrectAnswer = n.Reconciler.Reconcile(row[colCorrectAnswer], rec.Options[:]).Answer
	rec.IsActive = NormalizeBool(row[colIsActive])
	rec.IsVerified = NormalizeBool(row[colIsVerified])
	rec.Difficulty = row.text(colDifficulty)
	rec.ID = row.text(colID)
	if rec.ID == "" && n.AssignIDs && n.NewID != nil {
		rec.ID = n.NewID()
	}

	var issues []Problem
	if rec.Question == "" {
		issues = append(issues, Problem{Row: line, Code: CodeMissingQuestion, Message: "No question text found"})
	}
	if strings.Join(rec.Options[:], "") == "" {
		issues = append(issues, Problem{Row: line, Code: CodeMissingOptions, Message: "All four options are empty"})
	}
	if rec.CorrectAnswer == "" {
		issues = append(issues, Problem{Row: line, Code: CodeMissingCorrect, Message: "No correct answer after reconciliation"})
	}
	return rec, issues, true
}

// NormalizeResult is the outcome of normalizing a whole table.
type NormalizeResult struct {
	Records []Record
	Issues  []Problem
	Skipped int
}

// NormalizeAll normalizes rows in input order. Row numbers start at 2 to
// account for the header line.
func (n *Normalizer) NormalizeAll(ctx context.Context, rows []Row, workers int) (NormalizeResult, error) {
	type slot struct {
		rec    Record
		issues []Problem
		ok     bool
	}
	slots := make([]slot, len(rows))
	err := runOrdered(ctx, len(rows), workers, func(i int) {
		rec, issues, ok := n.Normalize(rows[i], i+2)
		slots[i] = slot{rec: rec, issues: issues, ok: ok}
	})
	if err != nil {
		return NormalizeResult{}, err
	}
	var res NormalizeResult
	for _, s := range slots {
		if !s.ok {
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, s.rec)
		res.Issues = append(res.Issues, s.issues...)
	}
	return res, nil
}
