package worker

import (
	"github.com/okian/swimtab/pkg/logger"
)

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithWorkers sets how many files are loaded concurrently.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithObserver sets a callback invoked after each file is loaded, from the
// worker goroutine that loaded it.
func WithObserver(fn func(Outcome)) Option {
	return func(p *Pool) {
		if fn != nil {
			p.observe = fn
		}
	}
}
