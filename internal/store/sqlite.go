package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"quizprep/internal/quiz"
)

// Table is the name of the import table written by WriteSQLite.
const Table = "questions"

var colTypes = map[string]string{
	"is_active":   "INTEGER",
	"is_verified": "INTEGER",
}

// WriteSQLite replaces the database at path with one `questions` table
// holding recs in order. Boolean flags are stored as 0/1.
func WriteSQLite(ctx context.Context, path string, recs []quiz.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	_ = os.Remove(path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	defs := []string{`"row_num" INTEGER PRIMARY KEY`}
	for _, c := range quiz.Columns {
		t := colTypes[c]
		if t == "" {
			t = "TEXT"
		}
		defs = append(defs, fmt.Sprintf("%s %s", quoteIdent(c), t))
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE `+quoteIdent(Table)+` (`+strings.Join(defs, ",")+`)`); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	ph := strings.TrimRight(strings.Repeat("?,", len(quiz.Columns)), ",")
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+quoteIdent(Table)+` (`+joinIdents(quiz.Columns)+`) VALUES (`+ph+`)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, rec := range recs {
		vals := rec.Values()
		args := make([]any, len(vals))
		for i, c := range quiz.Columns {
			args[i] = sqliteValue(c, vals[i])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
	}
	for _, idx := range []string{
		`CREATE INDEX IF NOT EXISTS idx_questions_language ON questions(language)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_id ON questions(id)`,
	} {
		if _, err := tx.ExecContext(ctx, idx); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ReadSQLite loads the records written by WriteSQLite, in insertion order.
func ReadSQLite(ctx context.Context, path string) ([]quiz.Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	cols, err := tableColumns(ctx, db, Table)
	if err != nil {
		return nil, err
	}
	for _, c := range quiz.Columns {
		if !contains(cols, c) {
			return nil, fmt.Errorf("column %q not found in table %q", c, Table)
		}
	}

	rows, err := db.QueryContext(ctx, `SELECT `+joinIdents(quiz.Columns)+` FROM `+quoteIdent(Table)+` ORDER BY row_num`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []quiz.Record
	for rows.Next() {
		cells := make([]sql.NullString, len(quiz.Columns))
		ptrs := make([]any, len(cells))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		vals := make([]string, len(cells))
		for i, c := range quiz.Columns {
			vals[i] = fromSQLite(c, cells[i].String)
		}
		out = append(out, quiz.RecordFromValues(vals))
	}
	return out, rows.Err()
}

func tableColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, errors.New("no columns found for table " + quoteIdent(table))
	}
	return cols, nil
}

func sqliteValue(col, v string) any {
	if colTypes[col] != "INTEGER" {
		return v
	}
	if v == "true" {
		return 1
	}
	return 0
}

func fromSQLite(col, v string) string {
	if colTypes[col] != "INTEGER" {
		return v
	}
	if v == "1" {
		return "true"
	}
	return "false"
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func joinIdents(cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = quoteIdent(c)
	}
	return strings.Join(parts, ", ")
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
