package lenex

// Option applies a configuration option to the Source.
type Option func(*Source)

// WithPatterns sets the glob patterns matched inside the input directory.
func WithPatterns(patterns ...string) Option {
	return func(s *Source) {
		if len(patterns) > 0 {
			s.patterns = patterns
		}
	}
}
