package quiz

import (
	"context"
	"testing"
)

func TestValidatorCheck(t *testing.T) {
	lang := NewSchema([]string{"question_de", "option_de_1", "option_de_2", "option_de_3", "option_de_4", "correct_answer"})
	partial := NewSchema([]string{"question_de", "option_de_1", "option_de_2", "correct_answer"})
	canonical := NewSchema(Columns)

	full := func(ca string) Row {
		return Row{"question_de": "Hauptstadt?", "option_de_1": "Berlin", "option_de_2": "Hamburg", "option_de_3": "München", "option_de_4": "Köln", "correct_answer": ca}
	}

	cases := []struct {
		name   string
		schema Schema
		row    Row
		want   []Code
	}{
		{"empty row", lang, Row{"question_de": "", "option_de_1": " ", "correct_answer": ""}, []Code{CodeEmptyRow}},
		{"no language", lang, Row{"question_de": "", "option_de_1": "Berlin", "correct_answer": "Berlin"}, []Code{CodeNoLanguage}},
		{"missing options", partial, Row{"question_de": "Q?", "option_de_1": "a", "option_de_2": "b", "correct_answer": "a"}, []Code{CodeMissingOptions}},
		{"missing question", canonical, Row{"language": "de", "question": "", "option1": "a", "correct_answer": "a"}, []Code{CodeMissingQuestion}},
		{"missing correct", lang, full(" "), []Code{CodeMissingCorrect}},
		{"index in correct answer", lang, full("2"), []Code{CodeIndexInCorrectAnswer}},
		{"invalid index", lang, full("5"), []Code{CodeInvalidIndex}},
		{"mismatch", lang, full("berlin"), []Code{CodeCorrectMismatch}},
		{"passes", lang, full(" Berlin "), nil},
		{"generic passes", canonical, Row{"question": "Q?", "option1": "a", "option2": "b", "option3": "c", "option4": "d", "correct_answer": "d"}, nil},
	}
	v := func(s Schema) *Validator { return NewValidator(s) }
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := v(tc.schema).Check(tc.row, 1)
			if len(got) != len(tc.want) {
				t.Fatalf("Check = %v, want codes %v", got, tc.want)
			}
			for i := range got {
				if got[i].Code != tc.want[i] {
					t.Fatalf("Check = %v, want codes %v", got, tc.want)
				}
				if got[i].Message == "" {
					t.Fatalf("problem %v has no message", got[i])
				}
			}
		})
	}
}

func TestValidatorAmbiguous(t *testing.T) {
	v := NewValidator(NewSchema(Columns))
	got := v.Check(Row{"question": "Q?", "option1": "Yes ", "option2": " Yes", "option3": "No", "option4": "Maybe", "correct_answer": "Yes"}, 4)
	if len(got) != 1 || got[0].Code != CodeAmbiguousCorrect || got[0].Row != 4 {
		t.Fatalf("expected ambiguous_correct on row 4, got %v", got)
	}
}

func TestValidateNumbersRowsFromOne(t *testing.T) {
	v := NewValidator(NewSchema(Columns))
	rows := []Row{
		{"question": "Q?", "option1": "a", "option2": "b", "option3": "c", "option4": "d", "correct_answer": "a"},
		{"question": "", "option1": "", "correct_answer": ""},
		{"question": "Q?", "option1": "a", "option2": "b", "option3": "c", "option4": "d", "correct_answer": "7"},
	}
	for _, workers := range []int{1, 4} {
		got, err := v.Validate(context.Background(), rows, workers)
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 problems, got %v", got)
		}
		if got[0].Row != 2 || got[0].Code != CodeEmptyRow {
			t.Fatalf("unexpected first problem %v", got[0])
		}
		if got[1].Row != 3 || got[1].Code != CodeInvalidIndex {
			t.Fatalf("unexpected second problem %v", got[1])
		}
	}
}

func TestValidateDoesNotMutate(t *testing.T) {
	row := Row{"question": " Q? ", "option1": " a ", "correct_answer": " a "}
	_, _ = NewValidator(NewSchema(Columns)).Validate(context.Background(), []Row{row}, 1)
	if row["question"] != " Q? " || row["correct_answer"] != " a " || len(row) != 3 {
		t.Fatalf("row mutated: %v", row)
	}
}
