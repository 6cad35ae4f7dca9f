package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"quizprep/internal/cli"
	"quizprep/internal/quiz"
	"quizprep/internal/report"
	"quizprep/internal/table"
)

const usage = "fix-correct-answers [flags] input.csv output.csv"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts cli.Options
	fs := cli.NewFlagSet("fix-correct-answers", usage, stderr, &opts)
	threshold := fs.Float64("threshold", 0, "Minimum similarity for a repair (overrides config; 0 = config value)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() < 2 {
		fmt.Fprintf(stdout, "Usage: %s\n", usage)
		return 1
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	env, err := cli.Setup("fix-correct-answers", opts)
	if err != nil {
		fmt.Fprintf(stderr, "setup error: %v\n", err)
		return 1
	}
	defer env.Log.Sync()
	if *threshold > 0 {
		env.Config.Threshold = *threshold
	}

	tbl, err := env.LoadTable(inPath)
	if err != nil {
		fmt.Fprintf(stderr, "load csv error: %v\n", err)
		return 1
	}
	fixer := quiz.NewFixer(quiz.NewSchema(tbl.Headers), env.Config.Threshold)
	env.Log.Debug("matching against option columns", "columns", fixer.OptionColumns(), "threshold", fixer.Threshold)
	rows, fixes, err := fixer.FixAll(ctx, quiz.Rows(tbl.Rows), env.Config.Workers)
	if err != nil {
		fmt.Fprintf(stderr, "fix error: %v\n", err)
		return 1
	}
	if err := table.Write(outPath, tbl.Headers, quiz.Maps(rows)); err != nil {
		fmt.Fprintf(stderr, "write csv error: %v\n", err)
		return 1
	}
	env.Log.Info("fixing finished", "input", inPath, "output", outPath, "rows", len(rows), "findings", len(fixes))

	fmt.Fprintf(stdout, "Wrote %s. Rows processed: %d\n", outPath, len(rows))
	if len(fixes) > 0 {
		fmt.Fprintln(stdout, "\nFixes / issues:")
		for _, f := range fixes {
			fmt.Fprintln(stdout, f.String())
		}
	} else {
		fmt.Fprintln(stdout, "No fixes needed")
	}

	if opts.ReportPath != "" {
		r := report.New("fix-correct-answers", nil, fixes)
		r.Input = inPath
		r.Output = outPath
		r.Delimiter = string(tbl.Delimiter)
		r.Columns = tbl.Headers
		r.RowsRead = len(tbl.Rows)
		r.RowsWritten = len(rows)
		if err := report.Write(opts.ReportPath, r); err != nil {
			fmt.Fprintf(stderr, "write report error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote report: %s\n", opts.ReportPath)
	}
	return 0
}
