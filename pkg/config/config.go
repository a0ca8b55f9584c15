package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Places   PlacesConfig
	Search   SearchConfig
	OTEL     OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// PlacesConfig holds places provider configuration.
// Mode selects how the search engine reaches the places API: "direct"
// calls the Google Maps Web Service with the server-held key, "proxy"
// goes through a same-origin /api proxy, "mock" uses canned data.
type PlacesConfig struct {
	Mode     string
	APIKey   string
	ProxyURL string
	Timeout  time.Duration
}

// SearchConfig holds tunables for the hospital search pipeline
type SearchConfig struct {
	RateLimit             int
	RateWindow            time.Duration
	EnrichmentConcurrency int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: splitAndTrim(getEnv("ALLOWED_ORIGINS", "*")),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "vet_night_map"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Places: PlacesConfig{
			Mode:     getEnv("PLACES_MODE", "mock"),
			APIKey:   getEnv("GOOGLE_MAPS_API_KEY", ""),
			ProxyURL: getEnv("PLACES_PROXY_URL", ""),
			Timeout:  time.Duration(getEnvAsInt("PLACES_TIMEOUT_SECONDS", 8)) * time.Second,
		},
		Search: SearchConfig{
			RateLimit:             getEnvAsInt("API_RATE_LIMIT", 100),
			RateWindow:            time.Duration(getEnvAsInt("API_RATE_WINDOW_MINUTES", 15)) * time.Minute,
			EnrichmentConcurrency: getEnvAsInt("ENRICHMENT_CONCURRENCY", 5),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "vet-night-map"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	switch cfg.Places.Mode {
	case "direct", "proxy", "mock":
	default:
		return nil, fmt.Errorf("invalid PLACES_MODE %q (want direct, proxy or mock)", cfg.Places.Mode)
	}
	if cfg.Places.Mode == "proxy" && cfg.Places.ProxyURL == "" {
		return nil, fmt.Errorf("PLACES_PROXY_URL is required when PLACES_MODE=proxy")
	}

	return cfg, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
