package engine

import (
	"math"

	"github.com/shopspring/decimal"

	"beverage-backend/internal/beverages"
	"beverage-backend/internal/purchases"
)

var (
	mediumThreshold = decimal.RequireFromString("0.40")
	lowThreshold    = decimal.RequireFromString("0.80")
)

// ClassifyBudget bands spent/weekly: below 0.40 is HIGH, below 0.80 MEDIUM, otherwise LOW.
// Lower bounds are inclusive. A non-positive weekly budget is always LOW.
func ClassifyBudget(snap purchases.BudgetSnapshot) BudgetState {
	if !snap.WeeklyBudget.IsPositive() {
		return BudgetLow
	}
	ratio := snap.Spent.Div(snap.WeeklyBudget)
	if ratio.IsNegative() {
		ratio = decimal.Zero
	}
	switch {
	case ratio.LessThan(mediumThreshold):
		return BudgetHigh
	case ratio.LessThan(lowThreshold):
		return BudgetMedium
	default:
		return BudgetLow
	}
}

// ScoreBudget applies the price penalty for the snapshot's state to every candidate.
func ScoreBudget(candidates []beverages.Beverage, snap purchases.BudgetSnapshot) map[int64]float64 {
	return scoreForState(candidates, ClassifyBudget(snap))
}

func scoreForState(candidates []beverages.Beverage, state BudgetState) map[int64]float64 {
	scores := make(map[int64]float64, len(candidates))
	for _, b := range candidates {
		scores[b.ID] = PriceScore(state, b.Price)
	}
	return scores
}

// PriceScore is 1 for HIGH, 1/sqrt(p+1) for MEDIUM and 1/(p+1) for LOW.
// Negative prices count as free.
func PriceScore(state BudgetState, price decimal.Decimal) float64 {
	p := price.InexactFloat64()
	if p < 0 || math.IsNaN(p) {
		p = 0
	}
	switch state {
	case BudgetHigh:
		return 1
	case BudgetMedium:
		return clampUnit(1 / math.Sqrt(p+1))
	default:
		return clampUnit(1 / (p + 1))
	}
}
