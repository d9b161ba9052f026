package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/swimtab/internal/domain/model"
	"github.com/okian/swimtab/internal/domain/types"
	"github.com/okian/swimtab/pkg/logger"
)

// CSVStore writes one UTF-8 CSV file per table into a directory. Absent
// values become empty cells and the header row is always written.
type CSVStore struct {
	dir    string
	logger logger.Logger
}

// NewCSVStore creates a store writing into dir.
func NewCSVStore(dir string, opts ...Option) *CSVStore {
	return &CSVStore{dir: dir, logger: newSettings("csv-store", opts).logger}
}

// Save writes every table. Each file is written to a temporary name first
// and renamed into place, so a reader never sees a half-written table.
func (s *CSVStore) Save(ctx context.Context, t *model.Tables) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTable, err)
	}
	for _, tb := range schema {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(s.dir, tb.file)
		rows := tb.rows(t)
		if err := writeCSV(path, tb.header(), rows); err != nil {
			return fmt.Errorf("%w %s: %w", ErrWriteTable, tb.name, err)
		}
		s.logger.Debug(ctx, "table written", logger.String("path", path), logger.Int("rows", len(rows)))
	}
	return nil
}

func writeCSV(path string, header []string, rows [][]types.Opt[string]) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, cell := range row {
			record[i] = types.Cell(cell)
		}
		if err = w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
