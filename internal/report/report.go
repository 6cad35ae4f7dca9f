package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"quizprep/internal/quiz"
)

// Report summarizes one tool run for the -report flag.
type Report struct {
	Tool        string         `json:"tool"`
	Input       string         `json:"input"`
	Output      string         `json:"output,omitempty"`
	Delimiter   string         `json:"delimiter"`
	Columns     []string       `json:"columns"`
	RowsRead    int            `json:"rows_read"`
	RowsWritten int            `json:"rows_written"`
	Skipped     int            `json:"rows_skipped,omitempty"`
	Languages   map[string]int `json:"languages,omitempty"`
	Counts      map[string]int `json:"counts"`
	Problems    []quiz.Problem `json:"problems,omitempty"`
	Fixes       []quiz.Fix     `json:"fixes,omitempty"`
}

// New fills the code tallies from problems and fixes.
func New(tool string, problems []quiz.Problem, fixes []quiz.Fix) Report {
	counts := map[string]int{}
	for code, n := range quiz.CountByCode(problems) {
		counts[string(code)] += n
	}
	for _, f := range fixes {
		counts[string(f.Code)]++
	}
	return Report{Tool: tool, Counts: counts, Problems: problems, Fixes: fixes}
}

// LanguageCounts tallies records per language; generic records count as "generic".
func LanguageCounts(recs []quiz.Record) map[string]int {
	out := map[string]int{}
	for _, r := range recs {
		lang := r.Language
		if lang == "" {
			lang = quiz.Generic
		}
		out[lang]++
	}
	return out
}

// Write stores the report as JSON when path ends in .json, else as markdown.
func Write(path string, r Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var payload []byte
	if strings.EqualFold(filepath.Ext(path), ".json") {
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("json encode: %w", err)
		}
		payload = append(b, '\n')
	} else {
		payload = []byte(Markdown(r))
	}
	return os.WriteFile(path, payload, 0o644)
}

// Markdown renders r as a human-readable markdown document.
func Markdown(r Report) string {
	lines := []string{
		fmt.Sprintf("# %s report", r.Tool),
		"",
		"## Dataset shape",
		fmt.Sprintf("- Input: `%s`", r.Input),
	}
	if r.Output != "" {
		lines = append(lines, fmt.Sprintf("- Output: `%s`", r.Output))
	}
	lines = append(lines,
		fmt.Sprintf("- Delimiter: `%s`", r.Delimiter),
		fmt.Sprintf("- Columns: %s", humanize.Comma(int64(len(r.Columns)))),
		fmt.Sprintf("- Rows read: %s", humanize.Comma(int64(r.RowsRead))),
		fmt.Sprintf("- Rows written: %s", humanize.Comma(int64(r.RowsWritten))),
	)
	if r.Skipped > 0 {
		lines = append(lines, fmt.Sprintf("- Blank rows skipped: %s", humanize.Comma(int64(r.Skipped))))
	}
	lines = append(lines, "")

	if len(r.Languages) > 0 {
		lines = append(lines, "## Languages")
		for _, kv := range sortedCounts(r.Languages) {
			lines = append(lines, fmt.Sprintf("- %s: %s", kv.key, humanize.Comma(int64(kv.n))))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "## Findings by code")
	if len(r.Counts) == 0 {
		lines = append(lines, "- none")
	}
	for _, kv := range sortedCounts(r.Counts) {
		lines = append(lines, fmt.Sprintf("- `%s`: %s", kv.key, humanize.Comma(int64(kv.n))))
	}
	lines = append(lines, "")

	if len(r.Problems) > 0 {
		lines = append(lines, "## Problems")
		for _, p := range r.Problems {
			lines = append(lines, "- "+p.String())
		}
		lines = append(lines, "")
	}
	if len(r.Fixes) > 0 {
		lines = append(lines, "## Fixes")
		for _, f := range r.Fixes {
			lines = append(lines, "- "+f.String())
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

type countKV struct {
	key string
	n   int
}

// sortedCounts orders by count descending, then key.
func sortedCounts(m map[string]int) []countKV {
	out := make([]countKV, 0, len(m))
	for k, n := range m {
		out = append(out, countKV{k, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n == out[j].n {
			return out[i].key < out[j].key
		}
		return out[i].n > out[j].n
	})
	return out
}
