package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizprep/internal/report"
)

func testdataPath(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stdout.String(), "Usage: validate-import") {
		t.Fatalf("expected usage message, got %q", stdout.String())
	}
}

func TestRunMissingFile(t *testing.T) {
	t.Setenv("QUIZPREP_LOG_MODE", "nop")
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{filepath.Join(t.TempDir(), "nope.csv")}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "load csv error") {
		t.Fatalf("expected load error, got %q", stderr.String())
	}
}

func TestRunRejectsLatin1WithoutEncodingFlag(t *testing.T) {
	t.Setenv("QUIZPREP_LOG_MODE", "nop")
	p := filepath.Join(t.TempDir(), "latin1.csv")
	data := "question_de,option_de_1,option_de_2,option_de_3,option_de_4,correct_answer\nStadt?,M\xfcnchen,Bonn,Kiel,Ulm,M\xfcnchen\n"
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{p}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d (stdout=%q)", code, stdout.String())
	}
	if !strings.Contains(stderr.String(), "not valid UTF-8") {
		t.Fatalf("expected encoding error, got %q", stderr.String())
	}

	stdout.Reset()
	stderr.Reset()
	if code := run(context.Background(), []string{"-encoding", "latin1", p}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0 with -encoding latin1, got %d (stderr=%q)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "No problems found") {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}

func TestRunMultilang(t *testing.T) {
	t.Setenv("QUIZPREP_LOG_MODE", "nop")
	reportPath := filepath.Join(t.TempDir(), "report.json")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-workers", "3", "-report", reportPath, testdataPath("questions_multilang.csv")}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr=%q)", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{
		"Detected columns: id,question_de,option_de_1",
		"Row 2: index_in_correct_answer - ",
		"Row 3: correct_mismatch - ",
		"Row 4: empty_row - Row is empty",
		"Row 5: invalid_index - ",
		"Row 6: no_language - ",
		"Total problematic rows: 5",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("stdout missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Row 1:") {
		t.Fatalf("row 1 is valid but was reported:\n%s", out)
	}

	b, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var r report.Report
	if err := json.Unmarshal(b, &r); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if r.RowsRead != 6 || r.Delimiter != ";" || len(r.Problems) != 5 {
		t.Fatalf("unexpected report %+v", r)
	}
}

func TestRunCleanFile(t *testing.T) {
	t.Setenv("QUIZPREP_LOG_MODE", "nop")
	p := filepath.Join(t.TempDir(), "clean.csv")
	data := "language,question,option1,option2,option3,option4,correct_answer\nde,Frage?,a,b,c,d,c\n"
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{p}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr=%q)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "No problems found") {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}
