package lifecycle

import (
	"context"
	"log/slog"
	"time"
)

// Option configures the Controller.
type Option func(*config)

type config struct {
	logger       *slog.Logger
	resolve      func(context.Context) error
	resources    []Resource
	startTimeout time.Duration
	stopTimeout  time.Duration
}

func defaultConfig() *config {
	return &config{
		startTimeout: time.Minute,
		stopTimeout:  15 * time.Second,
	}
}

// WithLogger sets the logger. A nil logger discards all records.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithSettings registers the settings resolver that Start runs before
// acquiring any handle.
func WithSettings(resolve func(context.Context) error) Option {
	if resolve == nil {
		panic("WithSettings: nil resolver")
	}
	return func(c *config) { c.resolve = resolve }
}

// WithHandles appends handles in acquisition order.
// Start acquires them first to last, Stop releases them last to first.
func WithHandles(rs ...Resource) Option {
	for _, r := range rs {
		if r == nil {
			panic("WithHandles: nil handle")
		}
	}
	return func(c *config) { c.resources = append(c.resources, rs...) }
}

// WithStartTimeout bounds the whole acquisition sequence.
func WithStartTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("WithStartTimeout: duration must be > 0")
	}
	return func(c *config) { c.startTimeout = d }
}

// WithStopTimeout bounds the whole release sequence.
func WithStopTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("WithStopTimeout: duration must be > 0")
	}
	return func(c *config) { c.stopTimeout = d }
}
