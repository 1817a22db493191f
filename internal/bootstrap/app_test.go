package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"beverage-backend/internal/beverages"
	"beverage-backend/internal/purchases"
	"beverage-backend/internal/recommendations/engine"
	"beverage-backend/internal/shared/config"
	localstore "beverage-backend/internal/shared/storage/object/local"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
	}
}

func TestBuildDevUsesMemoryRepositories(t *testing.T) {
	app, err := Build(testConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.DB != nil || app.Router == nil {
		t.Fatalf("expected memory app with router")
	}
	if _, ok := app.PurchasesRepo.(*purchases.MemoryRepo); !ok {
		t.Fatalf("expected memory purchases repo, got %T", app.PurchasesRepo)
	}
	list, err := app.BeveragesService.List(context.Background())
	if err != nil || len(list) != len(beverages.DefaultCatalog()) {
		t.Fatalf("expected default catalog, got %d items (%v)", len(list), err)
	}
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "production"
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error without DATABASE_URL in production")
	}
}

func TestBuildRejectsBadWeights(t *testing.T) {
	cfg := testConfig(t)
	cfg.PreferenceWeight = 0.7
	cfg.BudgetWeight = 0.7
	_, err := Build(cfg)
	if !errors.Is(err, engine.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestBuildRejectsBadDefaultBudget(t *testing.T) {
	cfg := testConfig(t)
	cfg.DefaultWeeklyBudget = "-5"
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error for negative default budget")
	}
}

func TestBuildReadsCatalogFromObjectStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.CatalogSource = "object"
	cfg.CatalogObjectKey = "catalog/beverages.json"

	catalog := beverages.DefaultCatalog()[:3]
	store := localstore.New(cfg.LocalStoreDir)
	if _, err := beverages.WriteSnapshot(context.Background(), store, cfg.CatalogObjectKey, catalog, time.Now()); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	app, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	list, err := app.BeveragesService.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 || list[0].Name != catalog[0].Name {
		t.Fatalf("expected the 3-item snapshot, got %d", len(list))
	}
}
