package server

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"beverage-backend/internal/shared/config"
	"beverage-backend/internal/shared/metrics"
	"beverage-backend/internal/shared/server/middleware"
	"beverage-backend/internal/shared/server/respond"
	"beverage-backend/internal/shared/storage/db"
)

const (
	apiPrefix     = "/api/v1"
	healthPath    = apiPrefix + "/health"
	metricsPath   = "/metrics"
	healthTimeout = 2 * time.Second
)

// RouteRegistrar is implemented by every feature handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the handlers mounted under /api/v1.
type RouterDeps struct {
	Config                config.Config
	DB                    *sql.DB
	BeverageHandler       RouteRegistrar
	PurchaseHandler       RouteRegistrar
	RecommendationHandler RouteRegistrar
	UserHandler           RouteRegistrar
	RateLimiter           *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	cfg := deps.Config
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(healthPath, metricsPath),
		middleware.RateLimit(rateLimitConfig(cfg, deps.RateLimiter)),
	)

	r.GET(metricsPath, metrics.Handler())

	api := r.Group(apiPrefix)
	api.GET("/health", healthHandler(deps.DB))
	for _, h := range []RouteRegistrar{
		deps.UserHandler,
		deps.BeverageHandler,
		deps.PurchaseHandler,
		deps.RecommendationHandler,
	} {
		if h != nil {
			h.RegisterRoutes(api)
		}
	}

	return r
}

func healthHandler(sqlDB *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sqlDB == nil {
			respond.OK(c, gin.H{"ok": true, "database": "memory"})
			return
		}
		if err := db.Ping(c.Request.Context(), sqlDB, healthTimeout); err != nil {
			respond.Error(c, http.StatusServiceUnavailable, "unavailable", "database unreachable", nil)
			return
		}
		respond.OK(c, gin.H{"ok": true, "database": "postgres"})
	}
}

// Recommendation reads get a larger bucket than writes and profile calls.
func rateLimitConfig(cfg config.Config, limiter *middleware.RateLimiter) middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		Limiter:      limiter,
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method != http.MethodGet {
				return "DEFAULT"
			}
			switch c.FullPath() {
			case apiPrefix + "/recommendations", apiPrefix + "/users/:id/recommendations":
				return "RECOMMEND"
			case healthPath, metricsPath:
				return "UNLIMITED"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT":   {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			"RECOMMEND": {Rate: cfg.RateLimitRPS * 2, Burst: cfg.RateLimitBurst * 2},
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
