// Package worker loads input files concurrently while keeping their order.
package worker

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/swimtab/internal/xmltree"
	"github.com/okian/swimtab/pkg/logger"
)

// LoadFunc loads every document held by the file at path.
type LoadFunc func(ctx context.Context, path string) ([]*xmltree.Element, error)

// Outcome is the result of loading one file. Err is set when the file could
// not be loaded; Documents is empty in that case.
type Outcome struct {
	Path      string
	Documents []*xmltree.Element
	Err       error
	Duration  time.Duration
}

// Pool runs a LoadFunc over many files with bounded concurrency.
type Pool struct {
	load    LoadFunc
	workers int
	observe func(Outcome)
	logger  logger.Logger
}

// NewPool creates a pool that loads files with load.
func NewPool(load LoadFunc, opts ...Option) *Pool {
	p := &Pool{
		load:    load,
		workers: runtime.NumCPU(),
		observe: func(Outcome) {},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("worker-pool")
	}
	return p
}

// Run loads every path and returns one Outcome per path, at the same index.
// A file that fails to load is reported through its Outcome and does not
// stop the others. Only a canceled ctx makes Run return an error.
func (p *Pool) Run(ctx context.Context, paths []string) ([]Outcome, error) {
	outcomes := make([]Outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			docs, err := p.load(gctx, path)
			out := Outcome{Path: path, Duration: time.Since(start)}
			if err != nil {
				out.Err = err
			} else {
				out.Documents = docs
			}
			outcomes[i] = out
			p.observe(out)
			p.logger.Debug(gctx, "file loaded",
				logger.String("path", path),
				logger.Int("documents", len(docs)),
				logger.Float64("seconds", out.Duration.Seconds()),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Loads that raced with cancellation report the context error per file.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
