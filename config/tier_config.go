package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// Commerce platform (admin API)
	CommerceBaseURL    string
	CommerceAPIKey     string
	CommerceTimeout    time.Duration
	CommercePageSize   int
	CommerceMaxRetries int

	// Database (run history)
	DatabaseURL string

	// Redis (region cache, rate limiting)
	RedisURL       string
	RegionCacheTTL time.Duration

	// JWT (admin auth)
	JWTSecret string

	// Classifier
	// LegacyDefaultTier re-enables the old catch-all that silently maps
	// unmatched products to SUIT_BASIC. Off by default: unmatched products
	// are reported as unclassified instead.
	LegacyDefaultTier bool

	// Preview
	PreviewSampleSize int

	// AI tier suggester (optional, preview only)
	OpenAIAPIKey  string
	LLMModel      string
	LLMTimeoutSec int

	// CORS
	AllowedOrigins []string
}

func Load() (*Config, error) {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		CommerceBaseURL:    getEnv("COMMERCE_BASE_URL", ""),
		CommerceAPIKey:     getEnv("COMMERCE_API_KEY", ""),
		CommerceTimeout:    time.Duration(getEnvInt("COMMERCE_TIMEOUT_SEC", 60)) * time.Second,
		CommercePageSize:   getEnvInt("COMMERCE_PAGE_SIZE", 100),
		CommerceMaxRetries: getEnvInt("COMMERCE_MAX_RETRIES", 3),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:       getEnv("REDIS_URL", ""),
		RegionCacheTTL: time.Duration(getEnvInt("REGION_CACHE_TTL_MIN", 10)) * time.Minute,

		JWTSecret: getEnv("JWT_SECRET", ""),

		LegacyDefaultTier: getEnvBool("CLASSIFIER_LEGACY_DEFAULT", false),

		PreviewSampleSize: getEnvInt("PREVIEW_SAMPLE_SIZE", 20),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		LLMModel:      getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeoutSec: getEnvInt("LLM_TIMEOUT_SEC", 30),

		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
