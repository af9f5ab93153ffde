// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// DBMaxConns caps the pgx pool size.
	DBMaxConns int32 `env:"DB_MAX_CONNS" envDefault:"5"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	// RedisURL enables the trip read cache when set, e.g. redis://localhost:6379/0.
	RedisURL string `env:"REDIS_URL"`

	// TripCacheTTL is how long a cached trip stays valid.
	TripCacheTTL time.Duration `env:"TRIP_CACHE_TTL" envDefault:"5m"`

	// MaxBodyBytes limits the size of any request body.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}

// Load reads configuration from environment variables and returns a Config.
// The error names every required variable that is missing or empty.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)
	if cfg.DBMaxConns < 1 {
		return Config{}, fmt.Errorf("config: DB_MAX_CONNS must be positive, got %d", cfg.DBMaxConns)
	}
	if cfg.MaxBodyBytes < 1 {
		return Config{}, fmt.Errorf("config: MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	return cfg, nil
}

// trimAll trims every entry and drops the empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
