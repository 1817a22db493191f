package seeding

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"beverage-backend/internal/beverages"
	"beverage-backend/internal/purchases"
)

const (
	historyDays         = 60
	preferredMoodChance = 0.8
)

// Generator produces synthetic purchase histories. Output is fully determined
// by Rand's seed, the catalog and now.
type Generator struct {
	Catalog []beverages.Beverage
	Rand    *rand.Rand
}

func NewGenerator(catalog []beverages.Beverage, seed int64) *Generator {
	return &Generator{Catalog: catalog, Rand: rand.New(rand.NewSource(seed))}
}

// Generate returns profile.Params().PurchaseCount purchases spread over the
// last 60 days, oldest first.
func (g *Generator) Generate(userID string, profile Profile, now time.Time) ([]purchases.Purchase, error) {
	if len(g.Catalog) == 0 {
		return nil, errors.New("seeding: empty catalog")
	}
	params := profile.Params()
	pool := preferredPool(g.Catalog, params)

	out := make([]purchases.Purchase, 0, params.PurchaseCount)
	for i := 0; i < params.PurchaseCount; i++ {
		var bev beverages.Beverage
		if len(pool) > 0 && g.Rand.Float64() < params.Consistency {
			bev = pool[g.Rand.Intn(len(pool))]
		} else {
			bev = g.Catalog[g.Rand.Intn(len(g.Catalog))]
		}

		var mood beverages.Mood
		if len(params.PreferredMoods) > 0 && g.Rand.Float64() < preferredMoodChance {
			mood = params.PreferredMoods[g.Rand.Intn(len(params.PreferredMoods))]
		} else {
			mood = beverages.Moods[g.Rand.Intn(len(beverages.Moods))]
		}

		daysAgo := g.Rand.Intn(historyDays + 1)
		minutes := g.Rand.Intn(12 * 60)
		at := now.UTC().AddDate(0, 0, -daysAgo).Add(-time.Duration(minutes) * time.Minute)

		id, err := uuid.NewRandomFromReader(g.Rand)
		if err != nil {
			return nil, err
		}
		out = append(out, purchases.Purchase{
			ID:           id.String(),
			UserID:       userID,
			BeverageID:   bev.ID,
			BeverageName: bev.Name,
			Category:     bev.Category,
			Mood:         mood,
			Price:        bev.Price,
			PurchasedAt:  at,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PurchasedAt.Before(out[j].PurchasedAt) })
	return out, nil
}

// preferredPool resolves the profile's named drinks, falling back to its
// categories (under MaxPrice) when the catalog has none of them.
func preferredPool(catalog []beverages.Beverage, params Params) []beverages.Beverage {
	names := make(map[string]struct{}, len(params.PreferredDrinks))
	for _, n := range params.PreferredDrinks {
		names[n] = struct{}{}
	}
	var pool []beverages.Beverage
	for _, b := range catalog {
		if _, ok := names[b.Name]; ok {
			pool = append(pool, b)
		}
	}
	if len(pool) > 0 {
		return pool
	}

	cats := make(map[beverages.Category]struct{}, len(params.PreferredCategories))
	for _, c := range params.PreferredCategories {
		cats[c] = struct{}{}
	}
	for _, b := range catalog {
		if _, ok := cats[b.Category]; !ok {
			continue
		}
		if !params.MaxPrice.IsZero() && b.Price.GreaterThan(params.MaxPrice) {
			continue
		}
		pool = append(pool, b)
	}
	return pool
}
