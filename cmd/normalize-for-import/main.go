package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"quizprep/internal/cli"
	"quizprep/internal/quiz"
	"quizprep/internal/report"
	"quizprep/internal/store"
	"quizprep/internal/table"
)

const usage = "normalize-for-import [flags] input.csv output.csv"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts cli.Options
	fs := cli.NewFlagSet("normalize-for-import", usage, stderr, &opts)
	sqlitePath := fs.String("sqlite", "", "Optional SQLite output path (import-ready questions table)")
	assignIDs := fs.Bool("assign-ids", false, "Fill blank ids with random UUIDs")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() < 2 {
		fmt.Fprintf(stdout, "Usage: %s\n", usage)
		return 1
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	env, err := cli.Setup("normalize-for-import", opts)
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
	n := quiz.NewNormalizer(quiz.NewSchema(tbl.Headers), env.Config.Threshold)
	n.AssignIDs = *assignIDs
	res, err := n.NormalizeAll(ctx, quiz.Rows(tbl.Rows), env.Config.Workers)
	if err != nil {
		fmt.Fprintf(stderr, "normalize error: %v\n", err)
		return 1
	}

	recs := make([][]string, len(res.Records))
	for i, r := range res.Records {
		recs[i] = r.Values()
	}
	if err := table.WriteRecords(outPath, quiz.Columns, recs); err != nil {
		fmt.Fprintf(stderr, "write csv error: %v\n", err)
		return 1
	}
	env.Log.Info("normalization finished", "input", inPath, "output", outPath, "records", len(res.Records), "skipped", res.Skipped, "issues", len(res.Issues))

	if *sqlitePath != "" {
		if err := store.WriteSQLite(ctx, *sqlitePath, res.Records); err != nil {
			fmt.Fprintf(stderr, "write sqlite error: %v\n", err)
			return 1
		}
		env.Log.Info("sqlite written", "path", *sqlitePath, "records", len(res.Records))
	}

	fmt.Fprintf(stdout, "Wrote %s (%d rows).\n", outPath, len(res.Records))
	if *sqlitePath != "" {
		fmt.Fprintf(stdout, "SQLite: %s\n", *sqlitePath)
	}
	if len(res.Issues) > 0 {
		fmt.Fprintln(stdout, "\nIssues detected:")
		for _, it := range res.Issues {
			fmt.Fprintf(stdout, "Row %d: %s\n", it.Row, it.Code)
		}
		fmt.Fprintf(stdout, "Total issues: %d\n", len(res.Issues))
	} else {
		fmt.Fprintln(stdout, "No issues detected.")
	}

	if opts.ReportPath != "" {
		r := report.New("normalize-for-import", res.Issues, nil)
		r.Input = inPath
		r.Output = outPath
		r.Delimiter = string(tbl.Delimiter)
		r.Columns = tbl.Headers
		r.RowsRead = len(tbl.Rows)
		r.RowsWritten = len(res.Records)
		r.Skipped = res.Skipped
		r.Languages = report.LanguageCounts(res.Records)
		if err := report.Write(opts.ReportPath, r); err != nil {
			fmt.Fprintf(stderr, "write report error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote report: %s\n", opts.ReportPath)
	}
	return 0
}
