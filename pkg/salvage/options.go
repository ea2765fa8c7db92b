package salvage

import "log/slog"

// DefaultMaxLength is the largest input, in characters, Recover accepts by default.
const DefaultMaxLength = 10_000_000

// Option configures Recover and Stream.
type Option interface {
	apply(*config)
}

// config holds the settings for one recovery call
type config struct {
	maxLength int
	logger    *slog.Logger
	repair    bool
}

func newConfig(opts []Option) *config {
	cfg := &config{
		maxLength: DefaultMaxLength,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(cfg)
		}
	}
	return cfg
}

type optionFunc func(*config)

func (f optionFunc) apply(cfg *config) { f(cfg) }

// WithMaxLength sets the size guard limit in characters. Values <= 0 keep DefaultMaxLength.
//
// Example:
//
//	res, err := salvage.Recover(text, salvage.WithMaxLength(1<<20))
//	if errors.Is(err, salvage.ErrSizeLimitExceeded) {
//	    // refuse the input
//	}
func WithMaxLength(n int) Option {
	return optionFunc(func(cfg *config) {
		if n > 0 {
			cfg.maxLength = n
		}
	})
}

// MaxLength reports the size limit, in characters, that opts configure.
// Callers reading input from a stream use it to stop reading early.
func MaxLength(opts ...Option) int {
	return newConfig(opts).maxLength
}

// WithLogger routes debug logs of the recovery stages to logger.
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}

// WithRepair enables a last-resort repair pass (quotes, trailing commas,
// missing brackets and similar) when extraction and line recovery both fail.
// A repaired document is only returned if it then passes strict parsing.
func WithRepair() Option {
	return optionFunc(func(cfg *config) {
		cfg.repair = true
	})
}
