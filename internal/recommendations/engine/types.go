package engine

import (
	"github.com/shopspring/decimal"

	"beverage-backend/internal/beverages"
	"beverage-backend/internal/purchases"
)

// BudgetState is the weekly spending band that selects the price penalty curve.
type BudgetState string

const (
	BudgetHigh   BudgetState = "HIGH"
	BudgetMedium BudgetState = "MEDIUM"
	BudgetLow    BudgetState = "LOW"
)

// Recommendation is one ranked candidate. All scores are in [0,1].
type Recommendation struct {
	Beverage        beverages.Beverage
	PreferenceScore float64
	BudgetScore     float64
	FinalScore      float64
	Rank            int
}

// Input is the immutable snapshot a single recommendation is computed from.
type Input struct {
	Catalog  []beverages.Beverage
	History  []purchases.Purchase
	Budget   purchases.BudgetSnapshot
	Mood     beverages.Mood
	MaxPrice decimal.Decimal
	TopN     int
}

// Result is the outcome of Recommend. Feasible is false when no beverage
// satisfied the mood and price constraints; Recommendations is then empty.
type Result struct {
	Recommendations []Recommendation
	BudgetState     BudgetState
	Candidates      int
	Feasible        bool
}
