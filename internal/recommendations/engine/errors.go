package engine

import (
	"errors"

	"beverage-backend/internal/beverages"
)

var (
	ErrInvalidMood          = beverages.ErrInvalidMood
	ErrInvalidBudget        = errors.New("budget ceiling must be greater than zero")
	ErrNoFeasibleCandidates = errors.New("no beverage matches the mood within the budget")
	ErrInvalidConfig        = errors.New("invalid engine config")
)
