package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"quizprep/internal/cli"
	"quizprep/internal/quiz"
	"quizprep/internal/report"
)

const usage = "validate-import [flags] file.csv"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts cli.Options
	fs := cli.NewFlagSet("validate-import", usage, stderr, &opts)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(stdout, "Usage: %s\n", usage)
		return 1
	}
	inPath := fs.Arg(0)

	env, err := cli.Setup("validate-import", opts)
	if err != nil {
		fmt.Fprintf(stderr, "setup error: %v\n", err)
		return 1
	}
	defer env.Log.Sync()

	tbl, err := env.LoadTable(inPath)
	if err != nil {
		fmt.Fprintf(stderr, "load csv error: %v\n", err)
		return 1
	}
	problems, err := quiz.NewValidator(quiz.NewSchema(tbl.Headers)).Validate(ctx, quiz.Rows(tbl.Rows), env.Config.Workers)
	if err != nil {
		fmt.Fprintf(stderr, "validate error: %v\n", err)
		return 1
	}
	env.Log.Info("validation finished", "path", inPath, "rows", len(tbl.Rows), "problems", len(problems))

	fmt.Fprintf(stdout, "Detected columns: %s\n", strings.Join(tbl.Headers, ","))
	if len(problems) == 0 {
		fmt.Fprintln(stdout, "No problems found - file likely acceptable for import.")
	} else {
		fmt.Fprintln(stdout, "\nProblems found:")
		for _, p := range problems {
			fmt.Fprintln(stdout, p.String())
		}
		fmt.Fprintf(stdout, "\nTotal problematic rows: %d\n", len(problems))
	}

	if opts.ReportPath != "" {
		r := report.New("validate-import", problems, nil)
		r.Input = inPath
		r.Delimiter = string(tbl.Delimiter)
		r.Columns = tbl.Headers
		r.RowsRead = len(tbl.Rows)
		if err := report.Write(opts.ReportPath, r); err != nil {
			fmt.Fprintf(stderr, "write report error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote report: %s\n", opts.ReportPath)
	}
	return 0
}
