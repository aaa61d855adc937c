package scenexml

import "log/slog"

// Option customizes a scene load.
type Option func(*config)

type config struct {
	logger         *slog.Logger
	dialect        Dialect
	sortParameters bool
}

// newConfig returns the default configuration, updated by opts.
func newConfig(opts []Option) config {
	cfg := config{
		logger:  Logger(),
		dialect: DialectAuto,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger uses l instead of the package logger for this load.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDialect skips the DOCTYPE detection and reads the
// document with the given dialect.
// DialectAuto restores the detection.
func WithDialect(d Dialect) Option {
	return func(c *config) { c.dialect = d }
}

// WithSortParameters stably sorts each color and weight sequence
// by increasing parameter, after normalization.
// By default, sequences are kept in document order.
func WithSortParameters(sort bool) Option {
	return func(c *config) { c.sortParameters = sort }
}
