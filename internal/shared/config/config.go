package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	DatabaseURL     string
	Env             string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	CatalogSource    string
	CatalogObjectKey string

	PurchasesStore   string
	PurchasesTable   string
	DynamoDBEndpoint string

	HistoryWindow       time.Duration
	PreferenceWeight    float64
	BudgetWeight        float64
	DefaultTopN         int
	DefaultWeeklyBudget string

	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:     dbURL,
		Env:             env,

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),

		CatalogSource:    normalizeCatalogSource(getEnv("CATALOG_SOURCE", "db")),
		CatalogObjectKey: getEnv("CATALOG_OBJECT_KEY", "catalog/beverages.json"),

		PurchasesStore:   normalizePurchasesStore(getEnv("PURCHASES_STORE", "postgres")),
		PurchasesTable:   getEnv("PURCHASES_TABLE", "purchases"),
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),

		HistoryWindow:       time.Duration(getEnvInt("RECOMMEND_HISTORY_DAYS", 365)) * 24 * time.Hour,
		PreferenceWeight:    getEnvFloat("RECOMMEND_WEIGHT_PREFERENCE", 0.6),
		BudgetWeight:        getEnvFloat("RECOMMEND_WEIGHT_BUDGET", 0.4),
		DefaultTopN:         getEnvInt("RECOMMEND_TOP_N", 3),
		DefaultWeeklyBudget: getEnv("DEFAULT_WEEKLY_BUDGET", "25.00"),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: %s invalid int %q, using %d", key, raw, def)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config: %s invalid float %q, using %g", key, raw, def)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeCatalogSource(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "object", "s3":
		return "object"
	case "memory":
		return "memory"
	default:
		return "db"
	}
}

func normalizePurchasesStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dynamodb", "dynamo":
		return "dynamodb"
	case "memory":
		return "memory"
	default:
		return "postgres"
	}
}
