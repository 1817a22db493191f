package engine

import "errors"

// Recommend runs Filter, both scorers and Rank over one immutable snapshot.
// An unsatisfiable mood/price pair is a successful result with Feasible=false.
func Recommend(in Input, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	state := ClassifyBudget(in.Budget)

	candidates, err := Filter(in.Catalog, in.Mood, in.MaxPrice)
	if errors.Is(err, ErrNoFeasibleCandidates) {
		return Result{Recommendations: []Recommendation{}, BudgetState: state}, nil
	}
	if err != nil {
		return Result{}, err
	}

	pref := ScorePreference(candidates, in.History)
	budget := scoreForState(candidates, state)
	return Result{
		Recommendations: Rank(candidates, pref, budget, cfg, in.TopN),
		BudgetState:     state,
		Candidates:      len(candidates),
		Feasible:        true,
	}, nil
}
