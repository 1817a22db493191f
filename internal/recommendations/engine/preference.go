package engine

import (
	"beverage-backend/internal/beverages"
	"beverage-backend/internal/purchases"
)

// ScorePreference scores each candidate by Laplace-smoothed purchase frequency:
// (count+1)/(total+K) with K the number of distinct beverages in history.
// With no history every candidate gets 1/len(candidates).
func ScorePreference(candidates []beverages.Beverage, history []purchases.Purchase) map[int64]float64 {
	scores := make(map[int64]float64, len(candidates))
	if len(candidates) == 0 {
		return scores
	}

	if len(history) == 0 {
		uniform := 1 / float64(len(candidates))
		for _, b := range candidates {
			scores[b.ID] = uniform
		}
		return scores
	}

	counts := make(map[int64]int, len(history))
	for _, p := range history {
		counts[p.BeverageID]++
	}
	denom := float64(len(history) + len(counts))
	for _, b := range candidates {
		scores[b.ID] = clampUnit(float64(counts[b.ID]+1) / denom)
	}
	return scores
}
