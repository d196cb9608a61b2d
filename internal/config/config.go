// internal/config/config.go
//
// Process configuration, read from the environment after an optional .env
// file has been loaded.

package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config is shared by every subcommand.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Word lists. Empty means the embedded defaults.
	AnswersFile string `env:"WORDS_ANSWERS_FILE"`
	AllowedFile string `env:"WORDS_ALLOWED_FILE"`

	// CacheDSN is the sqlite file holding the first-guess cache.
	// "off" disables the cache.
	CacheDSN string `env:"CACHE_DSN" envDefault:"./data/fibble.db"`

	JWTSecret    string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TicketTTL    time.Duration `env:"TICKET_TTL" envDefault:"24h"`
	DailySalt    string        `env:"DAILY_SALT" envDefault:"fibble"`
	ScanWorkers  int           `env:"SCAN_WORKERS"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
}

// Load reads .env files (missing files are ignored) and parses the
// environment. Variables already set win over .env entries.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)
	return Parse()
}

// Parse reads the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ScanWorkers <= 0 {
		cfg.ScanWorkers = runtime.GOMAXPROCS(0)
	}
	return cfg, nil
}

// CacheEnabled reports whether a first-guess cache should be opened.
func (c Config) CacheEnabled() bool { return c.CacheDSN != "" && c.CacheDSN != "off" }

// Level returns the zerolog level named by LogLevel, defaulting to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
