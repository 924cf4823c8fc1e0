package verify

import (
	"time"

	"github.com/njchilds90/answercheck/internal/logger"
)

const (
	DefaultTolerance = 1e-6
	DefaultTimeout   = 5 * time.Second
)

type Option func(*Engine)

// WithTolerance sets the relative tolerance of numeric comparisons.
// Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(e *Engine) {
		if tol > 0 {
			e.tol = tol
		}
	}
}

// WithTimeout bounds the wall-clock time of one validation. Zero disables
// the bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.timeout = d
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}
