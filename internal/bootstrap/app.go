package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"beverage-backend/internal/beverages"
	"beverage-backend/internal/purchases"
	"beverage-backend/internal/recommendations"
	"beverage-backend/internal/recommendations/engine"
	"beverage-backend/internal/shared/config"
	"beverage-backend/internal/shared/server"
	"beverage-backend/internal/shared/server/middleware"
	"beverage-backend/internal/shared/storage/db"
	"beverage-backend/internal/shared/storage/dynamo"
	"beverage-backend/internal/shared/storage/object"
	localstore "beverage-backend/internal/shared/storage/object/local"
	s3store "beverage-backend/internal/shared/storage/object/s3"
	"beverage-backend/internal/users"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	DB           *sql.DB
	Store        object.ObjectStore
	Dynamo       *dynamodb.Client
	EngineConfig engine.Config

	UsersRepo     users.Repo
	BeveragesRepo beverages.Repo
	PurchasesRepo purchases.Repo

	UsersService           *users.Service
	BeveragesService       *beverages.Service
	PurchasesService       *purchases.Service
	RecommendationsService *recommendations.Service

	UsersHandler           *users.Handler
	BeveragesHandler       *beverages.Handler
	PurchasesHandler       *purchases.Handler
	RecommendationsHandler *recommendations.Handler
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	return BuildContext(context.Background(), cfg)
}

func BuildContext(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	engineCfg, err := buildEngineConfig(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:       cfg,
		DB:           sqlDB,
		Store:        store,
		EngineConfig: engineCfg,
	}

	if err := buildServices(ctx, app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                app.Config,
		DB:                    app.DB,
		BeverageHandler:       app.BeveragesHandler,
		PurchaseHandler:       app.PurchasesHandler,
		RecommendationHandler: app.RecommendationsHandler,
		UserHandler:           app.UsersHandler,
		RateLimiter:           middleware.NewRateLimiter(nil),
	})

	return app, nil
}

func buildEngineConfig(cfg config.Config) (engine.Config, error) {
	engineCfg := engine.DefaultConfig()
	if cfg.PreferenceWeight != 0 || cfg.BudgetWeight != 0 {
		engineCfg.Weights = engine.Weights{Preference: cfg.PreferenceWeight, Budget: cfg.BudgetWeight}
	}
	if cfg.DefaultTopN > 0 {
		engineCfg.DefaultTopN = cfg.DefaultTopN
	}
	if err := engineCfg.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("recommendation config: %w", err)
	}
	return engineCfg, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	// Lambda cold starts skip migrations; cmd/migrate runs them at deploy time.
	if !db.IsLambdaRuntime() {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(ctx context.Context, app *App) error {
	defaultBudget := users.DefaultWeeklyBudget
	if raw := strings.TrimSpace(app.Config.DefaultWeeklyBudget); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || !parsed.IsPositive() {
			return fmt.Errorf("DEFAULT_WEEKLY_BUDGET must be a positive decimal, got %q", raw)
		}
		defaultBudget = parsed
	}

	var userRepo users.Repo
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
	}

	beverageRepo, err := buildCatalog(app)
	if err != nil {
		return err
	}

	purchaseRepo, err := buildPurchases(ctx, app)
	if err != nil {
		return err
	}

	userSvc := users.NewService(userRepo, defaultBudget)
	beverageSvc := beverages.NewService(beverageRepo)
	purchaseSvc := purchases.NewService(purchaseRepo, beverageSvc, userSvc)
	recommendSvc := recommendations.NewService(beverageSvc, purchaseSvc, purchaseSvc, app.EngineConfig, app.Config.HistoryWindow)

	app.UsersRepo = userRepo
	app.BeveragesRepo = beverageRepo
	app.PurchasesRepo = purchaseRepo
	app.UsersService = userSvc
	app.BeveragesService = beverageSvc
	app.PurchasesService = purchaseSvc
	app.RecommendationsService = recommendSvc
	app.UsersHandler = users.NewHandler(userSvc)
	app.BeveragesHandler = beverages.NewHandler(beverageSvc)
	app.PurchasesHandler = purchases.NewHandler(purchaseSvc)
	app.RecommendationsHandler = recommendations.NewHandler(recommendSvc)

	if app.RecommendationsHandler == nil || app.PurchasesHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}

func buildCatalog(app *App) (beverages.Repo, error) {
	switch app.Config.CatalogSource {
	case "object":
		if app.Store == nil {
			return nil, errors.New("CATALOG_SOURCE=object requires an object store")
		}
		return beverages.NewObjectRepo(app.Store, app.Config.CatalogObjectKey), nil
	case "memory":
		return beverages.NewMemoryRepo(nil), nil
	default:
		if app.DB == nil {
			return beverages.NewMemoryRepo(nil), nil
		}
		return &beverages.PGRepo{DB: app.DB}, nil
	}
}

func buildPurchases(ctx context.Context, app *App) (purchases.Repo, error) {
	switch app.Config.PurchasesStore {
	case "dynamodb":
		client, err := dynamo.NewClient(ctx, app.Config.AWSRegion, app.Config.DynamoDBEndpoint)
		if err != nil {
			return nil, fmt.Errorf("dynamodb client: %w", err)
		}
		app.Dynamo = client
		return purchases.NewDynamoRepo(client, app.Config.PurchasesTable), nil
	case "memory":
		return purchases.NewMemoryRepo(), nil
	default:
		if app.DB == nil {
			return purchases.NewMemoryRepo(), nil
		}
		return &purchases.PGRepo{DB: app.DB}, nil
	}
}
