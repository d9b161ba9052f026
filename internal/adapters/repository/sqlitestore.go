package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/okian/swimtab/internal/domain/model"
	"github.com/okian/swimtab/internal/domain/types"
	"github.com/okian/swimtab/pkg/logger"
)

// SQLiteStore writes the tables into a SQLite database file. Every Save
// drops and recreates the tables inside one transaction. Absent values are
// stored as NULL.
type SQLiteStore struct {
	path   string
	logger logger.Logger
}

// NewSQLiteStore creates a store writing the database at path.
func NewSQLiteStore(path string, opts ...Option) *SQLiteStore {
	return &SQLiteStore{path: path, logger: newSettings("sqlite-store", opts).logger}
}

// Save replaces the tables in the database.
func (s *SQLiteStore) Save(ctx context.Context, t *model.Tables) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrOpenDB, err)
		}
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpenDB, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpenDB, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	for _, tb := range schema {
		n, err := replaceTable(ctx, tx, tb, t)
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrWriteTable, tb.name, err)
		}
		s.logger.Debug(ctx, "table written", logger.String("table", tb.name), logger.Int("rows", n))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrWriteTable, err)
	}
	return nil
}

func replaceTable(ctx context.Context, tx *sql.Tx, tb table, t *model.Tables) (int, error) {
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(tb.name)); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, createStatement(tb)); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, insertStatement(tb))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	rows := tb.rows(t)
	args := make([]any, len(tb.columns))
	for _, row := range rows {
		for i, cell := range row {
			args[i] = types.Nullable(cell)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

func createStatement(tb table) string {
	defs := make([]string, len(tb.columns))
	for i, c := range tb.columns {
		defs[i] = quoteIdent(c.name) + " " + c.sqlType
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(tb.name), strings.Join(defs, ", "))
}

func insertStatement(tb table) string {
	names := make([]string, len(tb.columns))
	marks := make([]string, len(tb.columns))
	for i, c := range tb.columns {
		names[i] = quoteIdent(c.name)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(tb.name), strings.Join(names, ", "), strings.Join(marks, ", "))
}

// quoteIdent quotes a SQL identifier; headers such as "descalificado?" are
// not valid bare names.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
