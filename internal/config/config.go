// Package config collects every environment knob in one struct so main does
// not read os.Getenv all over the place.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Store backends selectable via STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	HTTPAddr     string
	StoreBackend string
	DatabaseURL  string
	RedisAddr    string

	JWTSecret string

	OpenAIAPIKey string
	VideoAPIURL  string
	VideoAPIKey  string

	// AllowedOrigins is empty for same-origin-only deployments.
	AllowedOrigins []string
}

// Load reads the environment. Backend-specific settings are only required
// for the backend actually selected.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		StoreBackend: strings.ToLower(getenv("STORE_BACKEND", BackendMemory)),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		VideoAPIURL:  os.Getenv("VIDEO_API_URL"),
		VideoAPIKey:  os.Getenv("VIDEO_API_KEY"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("STORE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
