package recommendations

import (
	"math"

	"beverage-backend/internal/recommendations/engine"
)

type RecommendationResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Price           string   `json:"price"`
	SuitableMoods   []string `json:"suitableMoods"`
	PreferenceScore float64  `json:"preferenceScore"`
	BudgetScore     float64  `json:"budgetScore"`
	Score           float64  `json:"score"`
	Rank            int      `json:"rank"`
}

type Response struct {
	UserID          string                   `json:"userId"`
	Mood            string                   `json:"mood"`
	Budget          string                   `json:"budget"`
	BudgetState     string                   `json:"budgetState"`
	Recommendations []RecommendationResponse `json:"recommendations"`
	Message         string                   `json:"message,omitempty"`
}

const emptyMessage = "No beverages match this mood within your budget. Try a higher budget or a different mood."

func toResponse(userID, mood, budget string, res engine.Result) Response {
	items := make([]RecommendationResponse, 0, len(res.Recommendations))
	for _, r := range res.Recommendations {
		moods := make([]string, 0, len(r.Beverage.SuitableMoods))
		for _, m := range r.Beverage.SuitableMoods {
			moods = append(moods, string(m))
		}
		items = append(items, RecommendationResponse{
			ID:              r.Beverage.ID,
			Name:            r.Beverage.Name,
			Category:        string(r.Beverage.Category),
			Price:           r.Beverage.Price.StringFixed(2),
			SuitableMoods:   moods,
			PreferenceScore: round4(r.PreferenceScore),
			BudgetScore:     round4(r.BudgetScore),
			Score:           round4(r.FinalScore),
			Rank:            r.Rank,
		})
	}
	out := Response{
		UserID:          userID,
		Mood:            mood,
		Budget:          budget,
		BudgetState:     string(res.BudgetState),
		Recommendations: items,
	}
	if !res.Feasible {
		out.Message = emptyMessage
	}
	return out
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
