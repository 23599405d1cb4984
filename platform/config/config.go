// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRPCRateRPS() float64
	GetRPCRateBurst() int
}

// CacheConfig provides settings for the Redis search cache.
type CacheConfig interface {
	GetRedisURL() string
	GetSearchCacheTTL() time.Duration
	IsCacheEnabled() bool
}

// ConversationAPIConfig provides settings for the external conversation API.
type ConversationAPIConfig interface {
	GetConversationAPIURL() string
	GetConversationAccountID() string
	GetConversationAPIToken() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                   string
	HTTPAddr              string
	DatabaseURL           string
	RedisURL              string
	SearchCacheTTL        time.Duration
	CORSAllowAll          bool
	CORSOrigins           []string
	CORSAllowCreds        bool
	RPCRateRPS            float64
	RPCRateBurst          int
	ConversationAPIURL    string
	ConversationAccountID string
	ConversationAPIToken  string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }
func (c *Config) GetRPCRateRPS() float64   { return c.RPCRateRPS }
func (c *Config) GetRPCRateBurst() int     { return c.RPCRateBurst }

// CacheConfig implementation
func (c *Config) GetRedisURL() string              { return c.RedisURL }
func (c *Config) GetSearchCacheTTL() time.Duration { return c.SearchCacheTTL }
func (c *Config) IsCacheEnabled() bool             { return c.RedisURL != "" }

// ConversationAPIConfig implementation
func (c *Config) GetConversationAPIURL() string    { return c.ConversationAPIURL }
func (c *Config) GetConversationAccountID() string { return c.ConversationAccountID }
func (c *Config) GetConversationAPIToken() string  { return c.ConversationAPIToken }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		RedisURL:              getEnv("REDIS_URL", ""),
		SearchCacheTTL:        mustDuration(getEnv("SEARCH_CACHE_TTL", "60s")),
		CORSAllowAll:          corsAllowAll,
		CORSOrigins:           corsOrigins,
		CORSAllowCreds:        strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RPCRateRPS:            mustFloat(getEnv("RPC_RATE_RPS", "10")),
		RPCRateBurst:          mustInt(getEnv("RPC_RATE_BURST", "20")),
		ConversationAPIURL:    strings.TrimRight(getEnv("CONVERSATION_API_URL", ""), "/"),
		ConversationAccountID: getEnv("CONVERSATION_ACCOUNT_ID", ""),
		ConversationAPIToken:  getEnv("CONVERSATION_API_TOKEN", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.ConversationAPIURL != "" && cfg.ConversationAccountID == "" {
		return nil, fmt.Errorf("CONVERSATION_ACCOUNT_ID is required when CONVERSATION_API_URL is set")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.RPCRateRPS <= 0 || cfg.RPCRateBurst < 1 {
		return nil, fmt.Errorf("RPC_RATE_RPS and RPC_RATE_BURST must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
