package purchases

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrBeverageNotFound  = errors.New("beverage not found")
	ErrInvalidInput      = errors.New("invalid purchase")
	ErrStoreNotAvailable = errors.New("purchase store not configured")
)

type Repo interface {
	Create(ctx context.Context, p Purchase) error
	// ListByUser returns purchases at or after since, newest first. limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID string, since time.Time, limit int) ([]Purchase, error)
	// SumBetween totals prices of purchases in [from, to).
	SumBetween(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error)
}
