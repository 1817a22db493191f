package purchases

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string][]Purchase
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string][]Purchase)}
}

func (r *MemoryRepo) Create(ctx context.Context, p Purchase) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[p.UserID] = append(r.byUser[p.UserID], p)
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, since time.Time, limit int) ([]Purchase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Purchase, 0, len(r.byUser[userID]))
	for _, p := range r.byUser[userID] {
		if !p.PurchasedAt.Before(since) {
			out = append(out, p)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PurchasedAt.Equal(out[j].PurchasedAt) {
			return out[i].PurchasedAt.After(out[j].PurchasedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) SumBetween(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := decimal.Zero
	for _, p := range r.byUser[userID] {
		if !p.PurchasedAt.Before(from) && p.PurchasedAt.Before(to) {
			total = total.Add(p.Price)
		}
	}
	return total, nil
}
