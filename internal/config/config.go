// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/navedit/internal/cache"
	"github.com/olegiv/navedit/internal/client"
	"github.com/olegiv/navedit/internal/editor"
	"github.com/olegiv/navedit/internal/scheduler"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"NAVEDIT_DB_PATH" envDefault:"./data/navedit.db"`
	ServerHost string `env:"NAVEDIT_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"NAVEDIT_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"NAVEDIT_ENV" envDefault:"development"`
	LogLevel   string `env:"NAVEDIT_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string        `env:"NAVEDIT_REDIS_URL"` // Optional Redis URL for a shared tree cache
	CachePrefix  string        `env:"NAVEDIT_CACHE_PREFIX" envDefault:"navedit:"`
	CacheTTL     time.Duration `env:"NAVEDIT_CACHE_TTL" envDefault:"1h"`
	CacheMaxSize int           `env:"NAVEDIT_CACHE_MAX_SIZE" envDefault:"1000"`

	// Maintenance jobs; "off" disables a job
	CompactionSchedule string        `env:"NAVEDIT_COMPACTION_SCHEDULE" envDefault:"@hourly"`
	CleanupSchedule    string        `env:"NAVEDIT_CLEANUP_SCHEDULE" envDefault:"@daily"`
	EventRetention     time.Duration `env:"NAVEDIT_EVENT_RETENTION" envDefault:"720h"`

	// API protection
	APIRateLimit   float64       `env:"NAVEDIT_API_RATE_LIMIT" envDefault:"50"` // requests per second per client IP
	APIRateBurst   int           `env:"NAVEDIT_API_RATE_BURST" envDefault:"100"`
	RequestTimeout time.Duration `env:"NAVEDIT_REQUEST_TIMEOUT" envDefault:"30s"`

	// Seeding configuration
	DoSeed bool `env:"NAVEDIT_DO_SEED" envDefault:"false"` // Seed a demo tree into an empty database
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	return parseLevel(c.LogLevel)
}

// CacheConfig returns the tree cache backend settings.
func (c Config) CacheConfig() cache.Config {
	cfg := cache.DefaultConfig()
	cfg.RedisURL = c.RedisURL
	cfg.Prefix = c.CachePrefix
	cfg.DefaultTTL = c.CacheTTL
	cfg.MaxSize = c.CacheMaxSize
	return cfg
}

// SchedulerConfig returns the maintenance job settings.
func (c Config) SchedulerConfig() scheduler.Config {
	return scheduler.Config{
		CompactionSchedule: schedule(c.CompactionSchedule),
		CleanupSchedule:    schedule(c.CleanupSchedule),
		EventRetention:     c.EventRetention,
	}
}

func schedule(s string) string {
	if s == "off" {
		return ""
	}
	return s
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("NAVEDIT_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}
	if cfg.APIRateLimit <= 0 || cfg.APIRateBurst <= 0 {
		return nil, fmt.Errorf("NAVEDIT_API_RATE_LIMIT and NAVEDIT_API_RATE_BURST must be positive")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("NAVEDIT_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("NAVEDIT_CACHE_TTL must be positive, got %s", cfg.CacheTTL)
	}

	return cfg, nil
}

// ClientConfig holds the navctl configuration.
type ClientConfig struct {
	Remote   client.Config `envPrefix:"NAVEDIT_CLIENT_"`
	Editor   editor.Config `envPrefix:"NAVEDIT_CLIENT_"`
	LogLevel string        `env:"NAVEDIT_CLIENT_LOG_LEVEL" envDefault:"warn"`
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c ClientConfig) SlogLevel() slog.Level {
	return parseLevel(c.LogLevel)
}

// LoadClient parses the client environment variables.
func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing client config: %w", err)
	}

	if cfg.Remote.WritesPerSec <= 0 || cfg.Remote.Burst <= 0 {
		return nil, fmt.Errorf("NAVEDIT_CLIENT_WRITES_PER_SEC and NAVEDIT_CLIENT_BURST must be positive")
	}
	if cfg.Remote.MaxResponseBytes <= 0 {
		return nil, fmt.Errorf("NAVEDIT_CLIENT_MAX_RESPONSE_BYTES must be positive")
	}

	return cfg, nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
