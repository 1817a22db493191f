package recommendations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"beverage-backend/internal/beverages"
	"beverage-backend/internal/purchases"
	"beverage-backend/internal/recommendations/engine"
	"beverage-backend/internal/shared/metrics"
	"beverage-backend/internal/shared/telemetry"
	"beverage-backend/internal/users"
)

// DefaultHistoryWindow bounds how far back purchases feed the preference scorer.
const DefaultHistoryWindow = 365 * 24 * time.Hour

// DefaultHistoryLimit caps the rows read per request. Only the newest rows are kept,
// so a user at the cap is scored on a truncated history and a warning is logged.
const DefaultHistoryLimit = 5000

type CatalogSource interface {
	List(ctx context.Context) ([]beverages.Beverage, error)
}

type HistorySource interface {
	ListByUser(ctx context.Context, userID string, since time.Time, limit int) ([]purchases.Purchase, error)
}

// BudgetSource returns users.ErrNotFound for users without a profile.
type BudgetSource interface {
	Snapshot(ctx context.Context, userID string, now time.Time) (purchases.BudgetSnapshot, error)
}

type Service struct {
	Catalog       CatalogSource
	History       HistorySource
	Budget        BudgetSource
	Config        engine.Config
	HistoryWindow time.Duration
	HistoryLimit  int
	Now           func() time.Time
}

func NewService(catalog CatalogSource, history HistorySource, budget BudgetSource, cfg engine.Config, window time.Duration) *Service {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	return &Service{
		Catalog:       catalog,
		History:       history,
		Budget:        budget,
		Config:        cfg,
		HistoryWindow: window,
		HistoryLimit:  DefaultHistoryLimit,
		Now:           time.Now,
	}
}

// Recommend validates the request, gathers one snapshot of budget, history and
// catalog for userID, and ranks the catalog with the engine.
func (s *Service) Recommend(ctx context.Context, userID, mood string, budgetCeiling decimal.Decimal, topN int) (engine.Result, error) {
	started := time.Now()
	res, err := s.recommend(ctx, userID, mood, budgetCeiling, topN)

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case !res.Feasible:
		outcome = "empty"
	}
	metrics.ObserveRecommendation(string(res.BudgetState), outcome, res.Candidates, time.Since(started))

	fields := map[string]any{
		"user_id":      userID,
		"mood":         mood,
		"budget":       budgetCeiling.String(),
		"outcome":      outcome,
		"budget_state": string(res.BudgetState),
		"candidates":   res.Candidates,
		"returned":     len(res.Recommendations),
		"duration_ms":  time.Since(started).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err
		telemetry.Warn("recommendation.failed", fields)
	} else {
		telemetry.Info("recommendation.served", fields)
	}
	return res, err
}

func (s *Service) recommend(ctx context.Context, userID, rawMood string, budgetCeiling decimal.Decimal, topN int) (engine.Result, error) {
	if s == nil || s.Catalog == nil || s.History == nil || s.Budget == nil {
		return engine.Result{}, ErrNotConfigured
	}
	mood, err := beverages.ParseMood(rawMood)
	if err != nil {
		return engine.Result{}, err
	}
	if !budgetCeiling.IsPositive() {
		return engine.Result{}, fmt.Errorf("%w: %s", engine.ErrInvalidBudget, budgetCeiling.String())
	}
	if topN < 0 {
		return engine.Result{}, ErrInvalidTopN
	}

	now := s.now()
	snap, err := s.Budget.Snapshot(ctx, userID, now)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return engine.Result{}, fmt.Errorf("%w: %s", ErrUnknownUser, userID)
		}
		return engine.Result{}, fmt.Errorf("load budget snapshot: %w", err)
	}
	since := now.Add(-s.window())
	limit := s.historyLimit()
	history, err := s.History.ListByUser(ctx, userID, since, limit)
	if err != nil {
		return engine.Result{}, fmt.Errorf("load purchase history: %w", err)
	}
	if len(history) >= limit {
		telemetry.Warn("recommendation.history.truncated", map[string]any{
			"user_id": userID,
			"limit":   limit,
			"since":   since,
			"oldest":  history[len(history)-1].PurchasedAt,
		})
	}
	history = purchasedBy(history, now)
	catalog, err := s.Catalog.List(ctx)
	if err != nil {
		return engine.Result{}, fmt.Errorf("load catalog: %w", err)
	}

	return engine.Recommend(engine.Input{
		Catalog:  catalog,
		History:  history,
		Budget:   snap,
		Mood:     mood,
		MaxPrice: budgetCeiling,
		TopN:     topN,
	}, s.Config)
}

func (s *Service) window() time.Duration {
	if s.HistoryWindow > 0 {
		return s.HistoryWindow
	}
	return DefaultHistoryWindow
}

func (s *Service) historyLimit() int {
	if s.HistoryLimit > 0 {
		return s.HistoryLimit
	}
	return DefaultHistoryLimit
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// purchasedBy drops rows written after the request started.
func purchasedBy(history []purchases.Purchase, now time.Time) []purchases.Purchase {
	out := history[:0:0]
	for _, p := range history {
		if !p.PurchasedAt.After(now) {
			out = append(out, p)
		}
	}
	return out
}
