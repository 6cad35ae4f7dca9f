package quiz

import (
	"fmt"
	"strings"
)

// Generic is the language tag used when a row only populates the plain
// `question` / `option1..4` columns.
const Generic = "generic"

const (
	colLanguage      = "language"
	colQuestion      = "question"
	colCorrectAnswer = "correct_answer"
	colCorrectIndex  = "correct_index"
	colIsActive      = "is_active"
	colIsVerified    = "is_verified"
	colDifficulty    = "difficulty"
	colID            = "id"

	questionPrefix = "question_"
)

// Schema is the set of column names of one input table plus the language
// suffixes derived from it.
type Schema struct {
	headers    []string
	known      map[string]struct{}
	candidates []string
}

// NewSchema indexes headers once so per-row detection does no scanning.
func NewSchema(headers []string) Schema {
	known := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		known[h] = struct{}{}
	}
	return Schema{
		headers:    append([]string(nil), headers...),
		known:      known,
		candidates: LanguageCandidates(headers),
	}
}

// LanguageCandidates returns the suffix of every `question_<suffix>` header,
// in column order.
func LanguageCandidates(headers []string) []string {
	out := make([]string, 0)
	for _, h := range headers {
		if suffix, ok := strings.CutPrefix(h, questionPrefix); ok && suffix != "" {
			out = append(out, suffix)
		}
	}
	return out
}

func (s Schema) Headers() []string { return append([]string(nil), s.headers...) }

func (s Schema) Has(col string) bool {
	_, ok := s.known[col]
	return ok
}

// Detection is the result of running the schema detector on one row.
type Detection struct {
	Language       string
	QuestionColumn string
	OptionColumns  []string
	// OK is false when no language could be inferred for the row.
	OK bool
}

// Detect infers the row's language and the concrete columns holding its
// question and options. An explicit `language` cell wins, then the first
// populated `question_<lang>` column, then a populated bare `question`
// column (tagged Generic).
func (s Schema) Detect(row Row) Detection {
	lang := s.language(row)
	if lang == "" {
		return Detection{}
	}
	return Detection{
		Language:       lang,
		QuestionColumn: s.QuestionColumn(lang),
		OptionColumns:  s.OptionColumns(lang, row),
		OK:             true,
	}
}

func (s Schema) language(row Row) string {
	if lang := row.text(colLanguage); lang != "" {
		return lang
	}
	for _, suffix := range s.candidates {
		if row.text(questionPrefix+suffix) != "" {
			return suffix
		}
	}
	if s.Has(colQuestion) && row.text(colQuestion) != "" {
		return Generic
	}
	return ""
}

// QuestionColumn returns `question_<lang>` when the table has it, else
// `question`.
func (s Schema) QuestionColumn(lang string) string {
	if lang != Generic {
		if col := questionPrefix + lang; s.Has(col) {
			return col
		}
	}
	return colQuestion
}

// OptionColumns resolves the option columns for lang. Language-specific
// columns are used when at least one is populated in row; otherwise the
// generic columns are used when the table has any; otherwise whatever
// language-specific columns exist. The result may hold fewer than four names.
func (s Schema) OptionColumns(lang string, row Row) []string {
	var specific []string
	if lang != Generic {
		for j := 1; j <= 4; j++ {
			if col := fmt.Sprintf("option_%s_%d", lang, j); s.Has(col) {
				specific = append(specific, col)
			}
		}
	}
	for _, col := range specific {
		if row.text(col) != "" {
			return specific
		}
	}
	var generic []string
	for j := 1; j <= 4; j++ {
		col := fmt.Sprintf("option%d", j)
		if !s.Has(col) {
			col = fmt.Sprintf("option_%d", j)
		}
		if s.Has(col) {
			generic = append(generic, col)
		}
	}
	if len(generic) > 0 {
		return generic
	}
	return specific
}
