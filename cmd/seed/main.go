package main

// Seed sample users and synthetic purchase history:
//   go run ./cmd/seed -seed 42
//   go run ./cmd/seed -export-catalog     # also write the catalog snapshot to the object store
//   go run ./cmd/seed -tokens             # print dev JWTs for the sample users (needs JWT_SECRET)

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"beverage-backend/internal/beverages"
	"beverage-backend/internal/bootstrap"
	"beverage-backend/internal/seeding"
	"beverage-backend/internal/shared/auth"
	"beverage-backend/internal/shared/config"
	"beverage-backend/internal/shared/telemetry"
)

func main() {
	seed := flag.Int64("seed", 42, "random seed for the history generator")
	exportCatalog := flag.Bool("export-catalog", false, "write the catalog snapshot to CATALOG_OBJECT_KEY")
	printTokens := flag.Bool("tokens", false, "print a dev JWT for each sample user")
	flag.Parse()

	cfg := config.Load()
	telemetry.Configure(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	app, err := bootstrap.BuildContext(ctx, cfg)
	if err != nil {
		log.Printf("bootstrap error: %v", err)
		os.Exit(1)
	}
	if app.DB != nil {
		defer app.DB.Close()
	} else if cfg.PurchasesStore != "dynamodb" {
		log.Printf("seed: no database configured; seeding in-memory stores only")
	}

	now := time.Now().UTC()
	catalog, err := app.BeveragesService.List(ctx)
	if err != nil {
		log.Printf("seed: catalog unavailable (%v); using built-in menu", err)
		catalog = beverages.DefaultCatalog()
	}

	if *exportCatalog {
		n, err := beverages.WriteSnapshot(ctx, app.Store, cfg.CatalogObjectKey, catalog, now)
		if err != nil {
			log.Printf("failed to export catalog: %v", err)
			os.Exit(1)
		}
		log.Printf("exported %d beverages to %s (%d bytes)", len(catalog), cfg.CatalogObjectKey, n)
	}

	seeder := &seeding.Seeder{
		Users:     app.UsersService,
		Purchases: app.PurchasesService,
		Generator: seeding.NewGenerator(catalog, *seed),
	}
	report, err := seeder.Run(ctx, now)
	if err != nil {
		log.Printf("seed failed: %v", err)
		os.Exit(1)
	}

	for _, r := range report {
		status := fmt.Sprintf("%d purchases", r.Purchases)
		if r.Skipped {
			status = "already present"
		}
		fmt.Printf("%-16s %-38s %-18s %s\n", r.User.Username, r.User.ID, r.Profile, status)
		if *printTokens {
			token, err := auth.SignJWT(auth.Claims{
				Username:         r.User.Username,
				Email:            r.User.Email,
				RegisteredClaims: jwt.RegisteredClaims{Subject: r.User.ID},
			})
			if err != nil {
				log.Printf("sign token for %s: %v", r.User.Username, err)
				continue
			}
			fmt.Printf("  token: %s\n", token)
		}
	}
}
