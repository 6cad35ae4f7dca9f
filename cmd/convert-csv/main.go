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

const usage = "convert-csv [flags] input.csv output.csv"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(_ context.Context, args []string, stdout, stderr io.Writer) int {
	var opts cli.Options
	fs := cli.NewFlagSet("convert-csv", usage, stderr, &opts)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() < 2 {
		fmt.Fprintf(stdout, "Usage: %s\n", usage)
		return 1
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	env, err := cli.Setup("convert-csv", opts)
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
	headers, rows := quiz.ConvertIndex(tbl.Headers, quiz.Rows(tbl.Rows))
	if err := table.Write(outPath, headers, quiz.Maps(rows)); err != nil {
		fmt.Fprintf(stderr, "write csv error: %v\n", err)
		return 1
	}
	env.Log.Info("conversion finished", "input", inPath, "output", outPath, "rows_in", len(tbl.Rows), "rows_out", len(rows))

	fmt.Fprintf(stdout, "Input:  %s\n", inPath)
	fmt.Fprintf(stdout, "Output: %s\n", outPath)
	fmt.Fprintf(stdout, "Rows:   %d (dropped %d blank)\n", len(rows), len(tbl.Rows)-len(rows))
	fmt.Fprintf(stdout, "Cols:   %d\n", len(headers))

	if opts.ReportPath != "" {
		r := report.New("convert-csv", nil, nil)
		r.Input = inPath
		r.Output = outPath
		r.Delimiter = string(tbl.Delimiter)
		r.Columns = headers
		r.RowsRead = len(tbl.Rows)
		r.RowsWritten = len(rows)
		r.Skipped = len(tbl.Rows) - len(rows)
		if err := report.Write(opts.ReportPath, r); err != nil {
			fmt.Fprintf(stderr, "write report error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote report: %s\n", opts.ReportPath)
	}
	return 0
}
