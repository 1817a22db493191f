package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("PURCHASES_STORE", "")
	t.Setenv("RECOMMEND_HISTORY_DAYS", "")
	t.Setenv("RECOMMEND_TOP_N", "")

	cfg := Load()
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.CatalogSource != "db" {
		t.Fatalf("expected catalog source db, got %q", cfg.CatalogSource)
	}
	if cfg.PurchasesStore != "postgres" {
		t.Fatalf("expected purchases store postgres, got %q", cfg.PurchasesStore)
	}
	if cfg.HistoryWindow != 365*24*time.Hour {
		t.Fatalf("expected 365 day window, got %s", cfg.HistoryWindow)
	}
	if cfg.PreferenceWeight != 0.6 || cfg.BudgetWeight != 0.4 {
		t.Fatalf("unexpected weights %v/%v", cfg.PreferenceWeight, cfg.BudgetWeight)
	}
	if cfg.DefaultTopN != 3 {
		t.Fatalf("expected top n 3, got %d", cfg.DefaultTopN)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("DATABASE_URL", "postgres://localhost/db")
	t.Setenv("CATALOG_SOURCE", "S3")
	t.Setenv("PURCHASES_STORE", "dynamo")
	t.Setenv("RECOMMEND_HISTORY_DAYS", "30")
	t.Setenv("RECOMMEND_WEIGHT_PREFERENCE", "0.7")
	t.Setenv("RECOMMEND_WEIGHT_BUDGET", "0.3")
	t.Setenv("RECOMMEND_TOP_N", "not-a-number")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production, got %q", cfg.Env)
	}
	if cfg.CatalogSource != "object" {
		t.Fatalf("expected object catalog source, got %q", cfg.CatalogSource)
	}
	if cfg.PurchasesStore != "dynamodb" {
		t.Fatalf("expected dynamodb store, got %q", cfg.PurchasesStore)
	}
	if cfg.HistoryWindow != 30*24*time.Hour {
		t.Fatalf("expected 30 day window, got %s", cfg.HistoryWindow)
	}
	if cfg.PreferenceWeight != 0.7 || cfg.BudgetWeight != 0.3 {
		t.Fatalf("unexpected weights %v/%v", cfg.PreferenceWeight, cfg.BudgetWeight)
	}
	if cfg.DefaultTopN != 3 {
		t.Fatalf("expected fallback top n 3, got %d", cfg.DefaultTopN)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadEnvFilesDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("BEV_TEST_A=from-file\nBEV_TEST_B=\"quoted\"\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("BEV_TEST_A", "from-env")
	t.Setenv("BEV_TEST_B", "")
	os.Unsetenv("BEV_TEST_B")

	loadEnvFiles(filepath.Join(dir, "missing.env"), path)

	if got := os.Getenv("BEV_TEST_A"); got != "from-env" {
		t.Fatalf("expected env value to win, got %q", got)
	}
	if got := os.Getenv("BEV_TEST_B"); got != "quoted" {
		t.Fatalf("expected quoted value from file, got %q", got)
	}
	os.Unsetenv("BEV_TEST_B")
}
