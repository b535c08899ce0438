package graphql

import (
	"errors"

	"github.com/dd0wney/plotgraph/pkg/validation"
)

// LimitConfig bounds the length of list fields.
type LimitConfig struct {
	DefaultLimit int // used when a query passes no limit
	MaxLimit     int
}

// DefaultLimitConfig returns the limits used by NewSchema.
func DefaultLimitConfig() *LimitConfig {
	return &LimitConfig{
		DefaultLimit: 100,
		MaxLimit:     1000,
	}
}

// Validate reports every problem with the limits at once.
func (c *LimitConfig) Validate() error {
	if c == nil {
		return errors.New("graphql: limit config is required")
	}
	return validation.NewConfigValidator("graphql").
		Positive("max_limit", c.MaxLimit).
		Positive("default_limit", c.DefaultLimit).
		When(c.MaxLimit > 0, func(cv *validation.ConfigValidator) {
			cv.RangeInt("default_limit", c.DefaultLimit, 1, c.MaxLimit)
		}).
		Validate()
}

// clamp maps a requested list length onto the configured bounds.
// A negative request means the argument was omitted.
func (c *LimitConfig) clamp(requested int) int {
	switch {
	case requested < 0:
		return c.DefaultLimit
	case requested > c.MaxLimit:
		return c.MaxLimit
	default:
		return requested
	}
}
