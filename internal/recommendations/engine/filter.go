package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"beverage-backend/internal/beverages"
)

// Filter keeps beverages that suit mood and cost at most maxPrice, in catalog order.
func Filter(catalog []beverages.Beverage, mood beverages.Mood, maxPrice decimal.Decimal) ([]beverages.Beverage, error) {
	if !mood.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMood, mood)
	}
	if !maxPrice.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBudget, maxPrice.String())
	}
	out := make([]beverages.Beverage, 0, len(catalog))
	for _, b := range catalog {
		if b.SuitsMood(mood) && b.Price.LessThanOrEqual(maxPrice) {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoFeasibleCandidates
	}
	return out, nil
}
