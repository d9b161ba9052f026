package testmeets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/swimtab/internal/adapters/repository"
	service "github.com/okian/swimtab/internal/app"
	"github.com/okian/swimtab/internal/domain/model"
	"github.com/okian/swimtab/pkg/logger"
)

// RunConfig drives an end-to-end check: generate, convert, verify.
type RunConfig struct {
	Fixtures Config
	WorkDir  string // Generated input and output land here; a temp dir when empty
	Workers  int    // Parse workers used by the conversion
	SQLite   bool   // Also write a SQLite database
	Keep     bool   // Keep WorkDir when it was created by Run
}

// Stats holds end-to-end timings and counts.
type Stats struct {
	Files        int
	Rows         map[string]int
	GenerateTime time.Duration
	ConvertTime  time.Duration
}

// Run generates fixtures, converts them and checks the output against the
// manifest.
func Run(ctx context.Context, cfg RunConfig) (*Stats, error) {
	log := logger.Get().Named("testmeets")

	dir := cfg.WorkDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "swimtab-check-*")
		if err != nil {
			return nil, fmt.Errorf("create work dir: %w", err)
		}
		dir = tmp
		if !cfg.Keep {
			defer os.RemoveAll(tmp)
		}
	}
	in, out := filepath.Join(dir, "input"), filepath.Join(dir, "output")

	// Step 1: generate fixtures
	start := time.Now()
	m, err := Generate(ctx, cfg.Fixtures, in)
	if err != nil {
		return nil, fmt.Errorf("fixture generation failed: %w", err)
	}
	stats := &Stats{Files: len(m.Files), GenerateTime: time.Since(start)}

	// Step 2: convert
	stores := []repository.Store{repository.NewCSVStore(out)}
	if cfg.SQLite {
		stores = append(stores, repository.NewSQLiteStore(filepath.Join(out, "swimtab.db")))
	}
	svc := service.New(
		service.WithParseWorkers(cfg.Workers),
		service.WithStores(stores...),
	)
	start = time.Now()
	sum, err := svc.Run(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("conversion failed: %w", err)
	}
	stats.ConvertTime = time.Since(start)
	stats.Rows = sum.Rows

	// Step 3: verify
	if sum.FilesFailed > 0 {
		return stats, fmt.Errorf("%w: %d generated files failed: %v", ErrMismatch, sum.FilesFailed, sum.Failed)
	}
	if err := m.Verify(sum.Rows); err != nil {
		return stats, err
	}
	if sum.Report.RelayResults != m.RelayResults || sum.Report.UnresolvedEvents != m.Orphans {
		return stats, fmt.Errorf("%w: dropped %d relay and %d unresolved results, want %d and %d", ErrMismatch,
			sum.Report.RelayResults, sum.Report.UnresolvedEvents, m.RelayResults, m.Orphans)
	}

	log.Info(ctx, "check passed",
		logger.String("dir", dir),
		logger.Int("files", stats.Files),
		logger.Int("results", stats.Rows[model.TableResults]),
		logger.Float64("generate_seconds", stats.GenerateTime.Seconds()),
		logger.Float64("convert_seconds", stats.ConvertTime.Seconds()),
	)
	return stats, nil
}
