package cli

import (
	"flag"
	"fmt"
	"io"

	"quizprep/internal/config"
	"quizprep/internal/logger"
	"quizprep/internal/table"
)

// Options are the flags every quizprep tool accepts.
type Options struct {
	ConfigPath string
	Encoding   string
	Workers    int
	ReportPath string
}

// NewFlagSet returns a flag set with the shared flags registered. usage is
// the one-line synopsis printed on bad invocations.
func NewFlagSet(name, usage string, stderr io.Writer, opts *Options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s\n", usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.ConfigPath, "config", "", "Optional YAML config file")
	fs.StringVar(&opts.Encoding, "encoding", "", "Input encoding: utf-8 or latin1 (overrides config)")
	fs.IntVar(&opts.Workers, "workers", 0, "Rows processed concurrently (overrides config; 0 = config value)")
	fs.StringVar(&opts.ReportPath, "report", "", "Optional report path (.json for JSON, otherwise markdown)")
	return fs
}

// Env is the resolved runtime for one tool invocation.
type Env struct {
	Config config.Config
	Log    *logger.Logger
}

// Setup loads config, applies flag overrides and builds the logger.
func Setup(tool string, opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Encoding != "" {
		cfg.Encoding = opts.Encoding
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return &Env{Config: cfg, Log: log.With("tool", tool)}, nil
}

// LoadTable reads path with the configured encoding and sample size.
func (e *Env) LoadTable(path string) (table.Table, error) {
	t, err := table.Load(path, table.LoadOptions{Encoding: e.Config.Encoding, SampleBytes: e.Config.SampleBytes})
	if err != nil {
		return table.Table{}, err
	}
	e.Log.Debug("table loaded", "path", path, "delimiter", string(t.Delimiter), "columns", len(t.Headers), "rows", len(t.Rows))
	return t, nil
}
