package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const envPrefix = "QUIZPREP_"

// Config holds the tunables shared by all quizprep tools.
type Config struct {
	// Threshold is the minimum similarity for fuzzy answer repair.
	Threshold   float64 `yaml:"threshold"`
	SampleBytes int     `yaml:"sample_bytes"`
	Encoding    string  `yaml:"encoding"`
	Workers     int     `yaml:"workers"`
	LogMode     string  `yaml:"log_mode"`
	LogLevel    string  `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Threshold:   0.75,
		SampleBytes: 8192,
		Encoding:    "utf-8",
		Workers:     1,
		LogMode:     "dev",
		LogLevel:    "info",
	}
}

// Load starts from Default, overlays the YAML file at path (if path is not
// empty) and then QUIZPREP_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(envPrefix + "THRESHOLD")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sTHRESHOLD: %w", envPrefix, err)
		}
		c.Threshold = f
	}
	if v := strings.TrimSpace(getenv(envPrefix + "SAMPLE_BYTES")); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sSAMPLE_BYTES: %w", envPrefix, err)
		}
		c.SampleBytes = i
	}
	if v := strings.TrimSpace(getenv(envPrefix + "WORKERS")); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWORKERS: %w", envPrefix, err)
		}
		c.Workers = i
	}
	if v := strings.TrimSpace(getenv(envPrefix + "ENCODING")); v != "" {
		c.Encoding = v
	}
	if v := strings.TrimSpace(getenv(envPrefix + "LOG_MODE")); v != "" {
		c.LogMode = v
	}
	if v := strings.TrimSpace(getenv(envPrefix + "LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Threshold <= 0 || c.Threshold > 1 {
		errs = append(errs, fmt.Errorf("threshold must be in (0,1], got %v", c.Threshold))
	}
	if c.SampleBytes < 0 {
		errs = append(errs, fmt.Errorf("sample_bytes must not be negative, got %d", c.SampleBytes))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	return errors.Join(errs...)
}
