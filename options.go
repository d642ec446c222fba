package bufwin

import "github.com/bft-labs/bufwin/pkg/log"

// Option configures optional behavior of a Transformer.
type Option func(*options)

// options holds the optional configuration for a Transformer.
type options struct {
	exhaustOnDone bool
	logger        log.Logger
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		exhaustOnDone: true,
		logger:        log.NewNoopLogger(),
	}
}

// WithExhaustOnDone controls the completion policy. When enabled (the
// default), a non-empty buffer at natural upstream completion is emitted
// as one final snapshot before the downstream sequence completes. When
// disabled, a trailing partial buffer is dropped.
func WithExhaustOnDone(enabled bool) Option {
	return func(o *options) {
		o.exhaustOnDone = enabled
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
