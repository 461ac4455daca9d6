package engine

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for NewRegistry() and builders
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Logger     logrus.FieldLogger
	DateLayout string         // layout for millisecond timestamps on line axes
	Location   *time.Location // zone used when formatting timestamps
	StrictGeo  bool           // geo fails with ErrUnsupportedKind instead of passing through
}

// DefaultDateLayout matches an en-US short date ("1/2/2006").
const DefaultDateLayout = "1/2/2006"

// WithLogger sets the logger used for build diagnostics.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) {
		c.Logger = logger
	}
}

// WithDateLayout sets the time layout used when a line axis of millisecond
// timestamps is converted to dates.
func WithDateLayout(layout string) Option {
	return func(c *config) {
		c.DateLayout = layout
	}
}

// WithLocation sets the time zone used when formatting timestamp axes.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		c.Location = loc
	}
}

// WithStrictGeo makes the geo builder report ErrUnsupportedKind rather than
// returning its skeleton unchanged.
func WithStrictGeo(strict bool) Option {
	return func(c *config) {
		c.StrictGeo = strict
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Logger:     logrus.StandardLogger(),
		DateLayout: DefaultDateLayout,
		Location:   time.UTC,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.DateLayout == "" {
		cfg.DateLayout = DefaultDateLayout
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return cfg
}
