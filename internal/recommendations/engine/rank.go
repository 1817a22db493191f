package engine

import (
	"math"
	"sort"

	"beverage-backend/internal/beverages"
)

// Rank blends the two score maps, orders by final score desc, price asc, id asc
// and keeps the first topN (after Config resolution).
func Rank(candidates []beverages.Beverage, pref, budget map[int64]float64, cfg Config, topN int) []Recommendation {
	out := make([]Recommendation, 0, len(candidates))
	for _, b := range candidates {
		p := clampUnit(pref[b.ID])
		s := clampUnit(budget[b.ID])
		out = append(out, Recommendation{
			Beverage:        b,
			PreferenceScore: p,
			BudgetScore:     s,
			FinalScore:      clampUnit(cfg.Weights.Preference*p + cfg.Weights.Budget*s),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		if !a.Beverage.Price.Equal(b.Beverage.Price) {
			return a.Beverage.Price.LessThan(b.Beverage.Price)
		}
		return a.Beverage.ID < b.Beverage.ID
	})

	if n := cfg.resolveTopN(topN); len(out) > n {
		out = out[:n]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// clampUnit maps NaN and infinities to 0 and clamps into [0,1].
func clampUnit(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
