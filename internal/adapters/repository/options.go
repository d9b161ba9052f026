package repository

import "github.com/okian/swimtab/pkg/logger"

// settings holds the options shared by every store.
type settings struct {
	logger logger.Logger
}

// Option applies a configuration option to a store.
type Option func(*settings)

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func newSettings(name string, opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named(name)
	}
	return s
}
