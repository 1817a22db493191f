package engine

import (
	"fmt"
	"math"
)

const (
	DefaultPreferenceWeight = 0.6
	DefaultBudgetWeight     = 0.4
	DefaultTopN             = 3
	MaxTopN                 = 20
)

// Weights blend preference and budget scores; they must sum to 1.
type Weights struct {
	Preference float64
	Budget     float64
}

type Config struct {
	Weights     Weights
	DefaultTopN int
	MaxTopN     int
}

func DefaultConfig() Config {
	return Config{
		Weights:     Weights{Preference: DefaultPreferenceWeight, Budget: DefaultBudgetWeight},
		DefaultTopN: DefaultTopN,
		MaxTopN:     MaxTopN,
	}
}

func (c Config) Validate() error {
	w := c.Weights
	if math.IsNaN(w.Preference) || math.IsNaN(w.Budget) || w.Preference < 0 || w.Budget < 0 {
		return fmt.Errorf("%w: weights must be non-negative", ErrInvalidConfig)
	}
	if math.Abs(w.Preference+w.Budget-1) > 1e-9 {
		return fmt.Errorf("%w: weights must sum to 1, got %v", ErrInvalidConfig, w.Preference+w.Budget)
	}
	if c.DefaultTopN < 1 {
		return fmt.Errorf("%w: default top-n must be at least 1", ErrInvalidConfig)
	}
	if c.MaxTopN != 0 && c.MaxTopN < c.DefaultTopN {
		return fmt.Errorf("%w: max top-n %d below default %d", ErrInvalidConfig, c.MaxTopN, c.DefaultTopN)
	}
	return nil
}

// resolveTopN maps a requested size onto [1, MaxTopN]; non-positive means the default.
func (c Config) resolveTopN(requested int) int {
	n := requested
	if n <= 0 {
		n = c.DefaultTopN
	}
	if n <= 0 {
		n = DefaultTopN
	}
	if c.MaxTopN > 0 && n > c.MaxTopN {
		n = c.MaxTopN
	}
	return n
}
