package beverages

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu        sync.RWMutex
	beverages []Beverage
}

// NewMemoryRepo holds the given catalog; nil means the default menu.
func NewMemoryRepo(catalog []Beverage) *MemoryRepo {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	sorted := cloneAll(catalog)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &MemoryRepo{beverages: sorted}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Beverage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.beverages), nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Beverage, error) {
	if err := ctx.Err(); err != nil {
		return Beverage{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return findByID(r.beverages, id)
}

func findByID(list []Beverage, id int64) (Beverage, error) {
	for _, b := range list {
		if b.ID == id {
			return clone(b), nil
		}
	}
	return Beverage{}, ErrNotFound
}

func clone(b Beverage) Beverage {
	moods := make([]Mood, len(b.SuitableMoods))
	copy(moods, b.SuitableMoods)
	b.SuitableMoods = moods
	return b
}

func cloneAll(list []Beverage) []Beverage {
	out := make([]Beverage, len(list))
	for i, b := range list {
		out[i] = clone(b)
	}
	return out
}
