package seeding

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"beverage-backend/internal/beverages"
	"beverage-backend/internal/purchases"
	"beverage-backend/internal/recommendations/engine"
	"beverage-backend/internal/users"
)

var seedNow = time.Date(2024, 3, 13, 18, 0, 0, 0, time.UTC)

func TestParseProfile(t *testing.T) {
	for _, p := range Profiles {
		got, err := ParseProfile(" " + string(p) + " ")
		if err != nil || got != p {
			t.Fatalf("ParseProfile(%q) = %q, %v", p, got, err)
		}
	}
	if _, err := ParseProfile("night_owl"); err == nil {
		t.Fatalf("expected unknown profile error")
	}
	if Profile("night_owl").Params().PurchaseCount != Balanced.Params().PurchaseCount {
		t.Fatalf("unknown profile should fall back to balanced params")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	catalog := beverages.DefaultCatalog()
	a, err := NewGenerator(catalog, 42).Generate("u1", SweetTooth, seedNow)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := NewGenerator(catalog, 42).Generate("u1", SweetTooth, seedNow)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed should produce identical histories")
	}
	c, _ := NewGenerator(catalog, 43).Generate("u1", SweetTooth, seedNow)
	if reflect.DeepEqual(a, c) {
		t.Fatalf("different seeds should differ")
	}
}

func TestGenerateRespectsProfile(t *testing.T) {
	catalog := beverages.DefaultCatalog()
	for _, profile := range Profiles {
		t.Run(string(profile), func(t *testing.T) {
			params := profile.Params()
			history, err := NewGenerator(catalog, 1).Generate("u1", profile, seedNow)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if len(history) != params.PurchaseCount {
				t.Fatalf("expected %d purchases, got %d", params.PurchaseCount, len(history))
			}
			preferred := map[string]bool{}
			for _, n := range params.PreferredDrinks {
				preferred[n] = true
			}
			hits := 0
			oldest := seedNow.AddDate(0, 0, -historyDays).Add(-12 * time.Hour)
			for i, p := range history {
				if preferred[p.BeverageName] {
					hits++
				}
				if p.PurchasedAt.After(seedNow) || p.PurchasedAt.Before(oldest) {
					t.Fatalf("purchase %d outside window: %s", i, p.PurchasedAt)
				}
				if i > 0 && p.PurchasedAt.Before(history[i-1].PurchasedAt) {
					t.Fatalf("history not sorted oldest first")
				}
				if !p.Mood.Valid() || p.UserID != "u1" || p.ID == "" {
					t.Fatalf("malformed purchase %+v", p)
				}
			}
			// Loose bound: consistency minus a generous margin for sampling noise.
			if float64(hits) < (params.Consistency-0.25)*float64(len(history)) {
				t.Fatalf("only %d/%d purchases from preferred drinks", hits, len(history))
			}
		})
	}
}

func TestPreferredPoolFallsBackToCategories(t *testing.T) {
	catalog := []beverages.Beverage{
		{ID: 1, Name: "House Drip", Category: beverages.CategoryCoffee, Price: decimal.RequireFromString("2.00")},
		{ID: 2, Name: "Big Drip", Category: beverages.CategoryCoffee, Price: decimal.RequireFromString("4.50")},
		{ID: 3, Name: "Matcha", Category: beverages.CategoryTea, Price: decimal.RequireFromString("4.00")},
	}
	pool := preferredPool(catalog, BudgetConscious.Params())
	if len(pool) != 1 || pool[0].ID != 1 {
		t.Fatalf("expected only the cheap coffee under MaxPrice, got %+v", pool)
	}
}

func TestSeederCreatesUsersAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	userSvc := users.NewService(users.NewMemoryRepo(), decimal.Zero)
	purchaseRepo := purchases.NewMemoryRepo()
	catalogSvc := beverages.NewService(beverages.NewMemoryRepo(nil))
	purchaseSvc := purchases.NewService(purchaseRepo, catalogSvc, userSvc)

	seeder := &Seeder{Users: userSvc, Purchases: purchaseSvc, Generator: NewGenerator(beverages.DefaultCatalog(), 42)}
	report, err := seeder.Run(ctx, seedNow)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report) != len(SampleUsers) {
		t.Fatalf("expected %d users, got %d", len(SampleUsers), len(report))
	}

	alice := report[0]
	if alice.User.Username != "alice_budget" || !alice.User.WeeklyBudget.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("unexpected alice %+v", alice.User)
	}
	history, err := purchaseSvc.ListByUser(ctx, alice.User.ID, time.Time{}, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(history) != BudgetConscious.Params().PurchaseCount {
		t.Fatalf("expected %d purchases for alice, got %d", BudgetConscious.Params().PurchaseCount, len(history))
	}

	again, err := seeder.Run(ctx, seedNow)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	for _, u := range again {
		if !u.Skipped {
			t.Fatalf("expected %s to be skipped on re-seed", u.User.Username)
		}
	}
	history, _ = purchaseSvc.ListByUser(ctx, alice.User.ID, time.Time{}, 0)
	if len(history) != BudgetConscious.Params().PurchaseCount {
		t.Fatalf("re-seed must not duplicate history, got %d", len(history))
	}
}

func TestSeededTeaDrinkerGetsTeaRecommendation(t *testing.T) {
	catalog := beverages.DefaultCatalog()
	history, err := NewGenerator(catalog, 42).Generate("eve", TeaEnthusiast, seedNow)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	res, err := engine.Recommend(engine.Input{
		Catalog:  catalog,
		History:  history,
		Budget:   purchases.BudgetSnapshot{WeeklyBudget: decimal.NewFromInt(35)},
		Mood:     beverages.MoodStressed,
		MaxPrice: decimal.RequireFromString("6.00"),
	}, engine.DefaultConfig())
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if got := res.Recommendations[0].Beverage.Category; got != beverages.CategoryTea {
		t.Fatalf("expected a tea first for the tea enthusiast, got %s", res.Recommendations[0].Beverage.Name)
	}
}
