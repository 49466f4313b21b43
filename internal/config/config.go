// Package config reads runtime settings from HOLLOW_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/aretw0/hollow/internal/logging"
)

// Save backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config holds the settings shared by every hollow command.
// Command-line flags are bound on top of these values.
type Config struct {
	ContentDir string `env:"HOLLOW_CONTENT_DIR"`

	SaveBackend string `env:"HOLLOW_SAVE_BACKEND" envDefault:"file"`
	SaveKey     string `env:"HOLLOW_SAVE_KEY"     envDefault:"edens-hollow/save"`
	SaveDir     string `env:"HOLLOW_SAVE_DIR"     envDefault:".hollow/saves"`
	SQLitePath  string `env:"HOLLOW_SQLITE_PATH"  envDefault:".hollow/saves.db"`
	Autosave    bool   `env:"HOLLOW_AUTOSAVE"     envDefault:"true"`

	RedisAddr     string        `env:"HOLLOW_REDIS_ADDR"   envDefault:"localhost:6379"`
	RedisPassword string        `env:"HOLLOW_REDIS_PASSWORD"`
	RedisDB       int           `env:"HOLLOW_REDIS_DB"`
	RedisPrefix   string        `env:"HOLLOW_REDIS_PREFIX" envDefault:"hollow:save:"`
	RedisTTL      time.Duration `env:"HOLLOW_REDIS_TTL"`
	RedisLock     bool          `env:"HOLLOW_REDIS_LOCK"`

	EncryptionKey  string   `env:"HOLLOW_ENCRYPTION_KEY"`
	FallbackKeys   []string `env:"HOLLOW_ENCRYPTION_FALLBACK_KEYS" envSeparator:","`
	AllowPlaintext bool     `env:"HOLLOW_ENCRYPTION_ALLOW_PLAINTEXT"`

	NotificationCapacity int           `env:"HOLLOW_NOTIFICATION_CAPACITY"`
	TickInterval         time.Duration `env:"HOLLOW_TICK_INTERVAL" envDefault:"1s"`

	HTTPAddr    string `env:"HOLLOW_HTTP_ADDR"    envDefault:"localhost:8080"`
	MetricsAddr string `env:"HOLLOW_METRICS_ADDR"`

	LogLevel string `env:"HOLLOW_LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"HOLLOW_LOG_JSON"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks values that env parsing cannot.
func (c Config) Validate() error {
	switch c.SaveBackend {
	case BackendMemory, BackendFile, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("unknown save backend %q (want memory, file, redis or sqlite)", c.SaveBackend)
	}
	if c.SaveKey == "" {
		return fmt.Errorf("save key must not be empty")
	}
	if c.NotificationCapacity < 0 {
		return fmt.Errorf("notification capacity must not be negative")
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("tick interval must not be negative")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() slog.Level {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}
