// Package service wires discovery, parsing, transformation and output into
// a single conversion run.
package service

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/okian/swimtab/internal/adapters/lenex"
	"github.com/okian/swimtab/internal/adapters/repository"
	"github.com/okian/swimtab/internal/adapters/worker"
	"github.com/okian/swimtab/internal/domain/finalize"
	"github.com/okian/swimtab/internal/domain/meet"
	"github.com/okian/swimtab/internal/domain/model"
	"github.com/okian/swimtab/pkg/logger"
	"github.com/okian/swimtab/pkg/metrics"
)

// Summary describes a finished run.
type Summary struct {
	RunID          string
	FilesFound     int
	FilesProcessed int
	FilesFailed    int
	Failed         []string
	Rows           map[string]int
	Report         meet.Report
	Duration       time.Duration
}

// Service converts a directory of meet-result files into output tables.
type Service struct {
	logger       logger.Logger
	parseWorkers int
	patterns     []string
	stores       []repository.Store
	metricsFile  string
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithParseWorkers sets how many files are parsed concurrently.
func WithParseWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.parseWorkers = n
		}
	}
}

// WithPatterns sets the glob patterns used to discover input files.
func WithPatterns(patterns ...string) Option {
	return func(s *Service) {
		if len(patterns) > 0 {
			s.patterns = patterns
		}
	}
}

// WithStores sets the sinks the tables are saved to.
func WithStores(stores ...repository.Store) Option {
	return func(s *Service) {
		s.stores = stores
	}
}

// WithMetricsFile writes the run metrics to path after every run.
func WithMetricsFile(path string) Option {
	return func(s *Service) {
		s.metricsFile = path
	}
}

// New constructs a new Service. Without WithStores the tables are written
// as CSV into the working directory.
func New(opts ...Option) *Service {
	s := &Service{
		parseWorkers: runtime.NumCPU(),
		patterns:     lenex.DefaultPatterns,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if len(s.stores) == 0 {
		s.stores = []repository.Store{repository.NewCSVStore(".")}
	}
	return s
}

// Run converts every matching file in inputDir and saves the tables to every
// store. Files that fail to parse or transform are skipped and listed in the
// summary; they do not fail the run. An error is returned only when the
// input directory cannot be read, a store fails, or ctx is canceled.
func (s *Service) Run(ctx context.Context, inputDir string) (Summary, error) {
	start := time.Now()
	sum := Summary{RunID: uuid.NewString()}
	log := s.logger.With(logger.String("run_id", sum.RunID))

	src := lenex.NewSource(lenex.WithPatterns(s.patterns...))
	paths, err := src.Discover(ctx, inputDir)
	if err != nil {
		return sum, err
	}
	sum.FilesFound = len(paths)
	log.Info(ctx, "input discovered",
		logger.String("dir", inputDir),
		logger.Int("files", len(paths)),
		logger.Int("workers", s.parseWorkers),
	)

	pool := worker.NewPool(src.Load,
		worker.WithWorkers(s.parseWorkers),
		worker.WithLogger(log.Named("worker-pool")),
		worker.WithObserver(func(o worker.Outcome) {
			metrics.ObserveParseDuration(o.Duration.Seconds())
		}),
	)
	outcomes, err := pool.Run(ctx, paths)
	if err != nil {
		return sum, err
	}

	all := &model.Tables{}
	tr := meet.NewTransformer()
	for _, o := range outcomes {
		log.Info(ctx, "processing file", logger.String("path", o.Path))
		batch, rep, err := s.transform(tr, o)
		if err != nil {
			sum.FilesFailed++
			sum.Failed = append(sum.Failed, o.Path)
			metrics.RecordFile(metrics.StatusFailed)
			log.Warn(ctx, "file failed", logger.String("path", o.Path), logger.Error(err))
			continue
		}
		sum.FilesProcessed++
		all.Append(batch)
		metrics.RecordFile(metrics.StatusOK)
		metrics.RecordMeets(rep.Meets)
		metrics.RecordDroppedResults(metrics.ReasonUnresolvedEvent, rep.UnresolvedEvents)
		metrics.RecordDroppedResults(metrics.ReasonRelay, rep.RelayResults)
	}
	sum.Report = tr.Report()

	tables := finalize.Tables(ctx, all)
	for _, store := range s.stores {
		if err := store.Save(ctx, tables); err != nil {
			return sum, err
		}
	}
	sum.Rows = tables.Counts()
	for table, n := range sum.Rows {
		metrics.RecordRows(table, n)
	}

	sum.Duration = time.Since(start)
	metrics.SetRunDuration(sum.Duration.Seconds(), time.Now().Unix())
	if s.metricsFile != "" {
		if err := metrics.WriteTextfile(s.metricsFile, metrics.GetRegistry()); err != nil {
			log.Warn(ctx, "metrics not written", logger.String("path", s.metricsFile), logger.Error(err))
		}
	}

	log.Info(ctx, "run summary",
		logger.Int("files_found", sum.FilesFound),
		logger.Int("files_processed", sum.FilesProcessed),
		logger.Int("files_failed", sum.FilesFailed),
		logger.Int("competitions", sum.Rows[model.TableCompetitions]),
		logger.Int("clubs", sum.Rows[model.TableClubs]),
		logger.Int("athletes", sum.Rows[model.TableAthletes]),
		logger.Int("results", sum.Rows[model.TableResults]),
		logger.Int("unresolved_events", sum.Report.UnresolvedEvents),
		logger.Int("relay_results", sum.Report.RelayResults),
		logger.Float64("seconds", sum.Duration.Seconds()),
	)
	return sum, nil
}

func (s *Service) transform(tr *meet.Transformer, o worker.Outcome) (*model.Tables, meet.Report, error) {
	if o.Err != nil {
		return nil, meet.Report{}, o.Err
	}
	return tr.Transform(o.Documents...)
}
