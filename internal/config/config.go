// Package config provides configuration management for PolySeek.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	// Polymarket settings
	PolymarketBaseURL string

	// Reddit settings
	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string

	// AI provider settings (OpenAI-compatible)
	AIAPIKey  string
	AIBaseURL string
	AIModel   string

	// Redis settings
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Pipeline settings
	MarketTimeout time.Duration
	EnrichTimeout time.Duration
	PostLimit     int

	// Server settings
	HTTPAddr string
	Debug    bool
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		// Polymarket
		PolymarketBaseURL: getEnv("POLYMARKET_BASE_URL", "https://gamma-api.polymarket.com"),

		// Reddit
		RedditClientID:     getEnv("REDDIT_CLIENT_ID", ""),
		RedditClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
		RedditUserAgent:    getEnv("REDDIT_USER_AGENT", "PolySeek/1.0"),

		// AI provider
		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIBaseURL: getEnv("AI_BASE_URL", "https://api.perplexity.ai"),
		AIModel:   getEnv("AI_MODEL", "sonar-pro"),

		// Redis
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		// Pipeline
		MarketTimeout: getEnvDuration("MARKET_TIMEOUT", 10*time.Second),
		EnrichTimeout: getEnvDuration("ENRICH_TIMEOUT", 20*time.Second),
		PostLimit:     getEnvInt("POST_LIMIT", 10),

		// Server
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Debug:    getEnvBool("DEBUG", false),
	}

	return cfg, nil
}

// Validate checks if required configuration is present.
func (c *Config) Validate() error {
	if c.AIAPIKey == "" {
		log.Warn().Msg("AI_API_KEY not set, reports will use fallback analysis only")
	}
	if c.RedditClientID == "" || c.RedditClientSecret == "" {
		log.Warn().Msg("Reddit credentials not set, social enrichment will be disabled")
	}
	if c.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR not set, caching disabled")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
