package purchases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"beverage-backend/internal/beverages"
	"beverage-backend/internal/shared/metrics"
	"beverage-backend/internal/shared/telemetry"
)

const (
	DefaultHistoryLimit = 50
	DefaultHistoryDays  = 365
	MaxHistoryLimit     = 500
)

// CatalogLookup resolves beverages for new purchases.
type CatalogLookup interface {
	Get(ctx context.Context, id int64) (beverages.Beverage, error)
}

// BudgetLookup resolves a user's weekly budget.
type BudgetLookup interface {
	WeeklyBudget(ctx context.Context, userID string) (decimal.Decimal, error)
}

type Service struct {
	Repo    Repo
	Catalog CatalogLookup
	Budgets BudgetLookup
	Now     func() time.Time
}

func NewService(repo Repo, catalog CatalogLookup, budgets BudgetLookup) *Service {
	return &Service{Repo: repo, Catalog: catalog, Budgets: budgets, Now: time.Now}
}

// RecordInput is a purchase request. A nil Price means the catalog price.
type RecordInput struct {
	UserID     string
	BeverageID int64
	Mood       string
	Price      *decimal.Decimal
}

func (s *Service) Record(ctx context.Context, in RecordInput) (Purchase, error) {
	if s == nil || s.Repo == nil || s.Catalog == nil {
		return Purchase{}, ErrStoreNotAvailable
	}
	if strings.TrimSpace(in.UserID) == "" {
		return Purchase{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	mood, err := beverages.ParseMood(in.Mood)
	if err != nil {
		return Purchase{}, err
	}
	bev, err := s.Catalog.Get(ctx, in.BeverageID)
	if err != nil {
		if errors.Is(err, beverages.ErrNotFound) {
			return Purchase{}, ErrBeverageNotFound
		}
		return Purchase{}, fmt.Errorf("lookup beverage %d: %w", in.BeverageID, err)
	}
	price := bev.Price
	if in.Price != nil {
		if in.Price.IsNegative() {
			return Purchase{}, ErrInvalidPrice
		}
		price = in.Price.Round(2)
	}

	p := Purchase{
		ID:           uuid.NewString(),
		UserID:       in.UserID,
		BeverageID:   bev.ID,
		BeverageName: bev.Name,
		Category:     bev.Category,
		Mood:         mood,
		Price:        price,
		PurchasedAt:  s.now(),
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return Purchase{}, fmt.Errorf("store purchase: %w", err)
	}
	metrics.IncPurchasesRecorded()
	telemetry.Info("purchase.recorded", map[string]any{
		"user_id":     p.UserID,
		"beverage_id": p.BeverageID,
		"mood":        string(p.Mood),
		"price":       p.Price.StringFixed(2),
	})
	return p, nil
}

// Import stores an already-built purchase as-is; the seeder uses it for backdated history.
func (s *Service) Import(ctx context.Context, p Purchase) error {
	if s == nil || s.Repo == nil {
		return ErrStoreNotAvailable
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.UserID == "" || p.BeverageID <= 0 || !p.Mood.Valid() {
		return fmt.Errorf("%w: user, beverage and mood are required", ErrInvalidInput)
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return s.Repo.Create(ctx, p)
}

// History lists purchases from the last days, newest first.
func (s *Service) History(ctx context.Context, userID string, days, limit int) ([]Purchase, error) {
	if days <= 0 {
		days = DefaultHistoryDays
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	since := s.now().AddDate(0, 0, -days)
	return s.ListByUser(ctx, userID, since, limit)
}

func (s *Service) ListByUser(ctx context.Context, userID string, since time.Time, limit int) ([]Purchase, error) {
	if s == nil || s.Repo == nil {
		return nil, ErrStoreNotAvailable
	}
	return s.Repo.ListByUser(ctx, userID, since, limit)
}

// Snapshot reports the user's spending from the start of the week containing now up to now.
func (s *Service) Snapshot(ctx context.Context, userID string, now time.Time) (BudgetSnapshot, error) {
	if s == nil || s.Repo == nil || s.Budgets == nil {
		return BudgetSnapshot{}, ErrStoreNotAvailable
	}
	budget, err := s.Budgets.WeeklyBudget(ctx, userID)
	if err != nil {
		return BudgetSnapshot{}, err
	}
	start, end := WeekWindow(now)
	// Rows stamped after now belong to writes that started later.
	upTo := end
	if cutoff := now.Add(time.Nanosecond); cutoff.Before(upTo) {
		upTo = cutoff
	}
	spent, err := s.Repo.SumBetween(ctx, userID, start, upTo)
	if err != nil {
		return BudgetSnapshot{}, fmt.Errorf("sum weekly spend: %w", err)
	}
	return BudgetSnapshot{
		UserID:       userID,
		WeeklyBudget: budget,
		Spent:        spent,
		Remaining:    budget.Sub(spent),
		WeekStart:    start,
		WeekEnd:      end,
	}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
