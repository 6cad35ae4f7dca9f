package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadYAMLAndEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "quizprep.yaml")
	if err := os.WriteFile(p, []byte("threshold: 0.8\nworkers: 4\nencoding: latin1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("QUIZPREP_WORKERS", "2")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Threshold != 0.8 || cfg.Encoding != "latin1" {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if cfg.Workers != 2 {
		t.Fatalf("env override not applied: %+v", cfg)
	}
	if cfg.SampleBytes != 8192 {
		t.Fatalf("unset field lost its default: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("threshold: [1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected parse error")
	}

	t.Setenv("QUIZPREP_THRESHOLD", "abc")
	if _, err := Load(""); err == nil {
		t.Fatalf("expected env parse error")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Threshold = 1.5
	cfg.Workers = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "threshold") || !strings.Contains(err.Error(), "workers") {
		t.Fatalf("expected both problems reported, got %v", err)
	}
}
