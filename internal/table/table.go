package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// DefaultSampleBytes is how much of a file is inspected to pick a delimiter.
const DefaultSampleBytes = 8192

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a delimited file loaded into memory. Every row carries a value
// for every header.
type Table struct {
	Path      string
	Delimiter rune
	Headers   []string
	Rows      []map[string]string
}

type LoadOptions struct {
	// Encoding is "utf-8" (default) or "latin1".
	Encoding    string
	SampleBytes int
}

// DetectDelimiter returns ';' when the sample holds strictly more semicolons
// than commas, else ','.
func DetectDelimiter(sample []byte) rune {
	if bytes.Count(sample, []byte{';'}) > bytes.Count(sample, []byte{','}) {
		return ';'
	}
	return ','
}

// Load reads path, sniffing the delimiter from its leading bytes.
func Load(path string, opts LoadOptions) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}
	b, err := decode(raw, opts.Encoding)
	if err != nil {
		return Table{}, fmt.Errorf("decode %s: %w", path, err)
	}
	b = bytes.TrimPrefix(b, utf8BOM)

	n := opts.SampleBytes
	if n <= 0 {
		n = DefaultSampleBytes
	}
	sample := b
	if len(sample) > n {
		sample = sample[:n]
	}
	t, err := Parse(bytes.NewReader(b), DetectDelimiter(sample))
	if err != nil {
		return Table{}, fmt.Errorf("parse %s: %w", path, err)
	}
	t.Path = path
	return t, nil
}

// Parse reads a header line followed by records. Short records are padded
// with "" and surplus cells are dropped.
func Parse(r io.Reader, delim rune) (Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Table{Delimiter: delim}, nil
	}
	if err != nil {
		return Table{}, err
	}
	var rows []map[string]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, err
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return Table{Delimiter: delim, Headers: headers, Rows: rows}, nil
}

func decode(b []byte, enc string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", "utf-8", "utf8", "utf-8-sig":
		if off := invalidUTF8(b); off >= 0 {
			return nil, fmt.Errorf("input is not valid UTF-8 at byte %d (use -encoding latin1)", off)
		}
		return b, nil
	case "latin1", "latin-1", "iso-8859-1":
		out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), b)
		return out, err
	case "cp1252", "windows-1252":
		out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), b)
		return out, err
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
}

// invalidUTF8 returns the offset of the first byte that does not start a
// valid UTF-8 sequence, or -1.
func invalidUTF8(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for off := 0; off < len(b); {
		r, size := utf8.DecodeRune(b[off:])
		if r == utf8.RuneError && size <= 1 {
			return off
		}
		off += size
	}
	return -1
}

// Write stores rows as comma-separated UTF-8 with a header line, CRLF line
// endings and minimal quoting. Missing cells are written empty.
func Write(path string, cols []string, rows []map[string]string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := writeRows(w, cols, rows); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteRecords is Write for rows that are already in column order.
func WriteRecords(path string, cols []string, recs [][]string) error {
	rows := make([]map[string]string, len(recs))
	for i, rec := range recs {
		row := make(map[string]string, len(cols))
		for j, c := range cols {
			if j < len(rec) {
				row[c] = rec[j]
			}
		}
		rows[i] = row
	}
	return Write(path, cols, rows)
}

func writeRows(w io.Writer, cols []string, rows []map[string]string) error {
	if err := WriteRecord(w, cols, "\r\n"); err != nil {
		return err
	}
	rec := make([]string, len(cols))
	for _, r := range rows {
		for i, c := range cols {
			rec[i] = r[c]
		}
		if err := WriteRecord(w, rec, "\r\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecord writes one comma-separated line, quoting fields only when they
// contain a comma, a quote or a line break.
func WriteRecord(w io.Writer, rec []string, terminator string) error {
	for i, field := range rec {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if needsQuote(field) {
			field = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		}
		if _, err := io.WriteString(w, field); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, terminator)
	return err
}

func needsQuote(s string) bool {
	return strings.ContainsAny(s, ",\"\n\r")
}
