package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Prefix is prepended to every environment variable name
const Prefix = "QUIZBINGO_"

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Config is the server configuration, read from QUIZBINGO_* variables
type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	StorageType string `env:"STORAGE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"data/quizbingo.db"`

	QuizFile string `env:"QUIZ_FILE" envDefault:"data/quizzes.json"`

	BoardSize    int           `env:"BOARD_SIZE" envDefault:"5"`
	RowPoints    []int         `env:"ROW_POINTS" envDefault:"10,20,30,50,100"`
	TeamNames    []string      `env:"TEAM_NAMES" envDefault:"Team A,Team B,Team C,Team D"`
	RevealDelay  time.Duration `env:"REVEAL_DELAY" envDefault:"1s"`
	ReachDisplay time.Duration `env:"REACH_DISPLAY" envDefault:"1500ms"`
	Countdown    time.Duration `env:"COUNTDOWN" envDefault:"5m"`

	HostPassword string `env:"HOST_PASSWORD"`
}

// Load reads the configuration from the environment. Variables in dotenvFile
// are loaded first when the file exists; they never override variables that
// are already set.
func Load(dotenvFile string) (*Config, error) {
	if dotenvFile != "" {
		if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", dotenvFile, err)
		}
	}

	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: Prefix})
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the environment parser cannot
func (c *Config) Validate() error {
	switch c.StorageType {
	case StorageMemory, StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("invalid storage type %q: must be memory, redis or sqlite", c.StorageType)
	}
	if c.BoardSize < 2 {
		return fmt.Errorf("board size must be at least 2, got %d", c.BoardSize)
	}
	if len(c.RowPoints) != c.BoardSize {
		return fmt.Errorf("need %d row points, got %d", c.BoardSize, len(c.RowPoints))
	}
	for _, p := range c.RowPoints {
		if p < 0 {
			return fmt.Errorf("row points must not be negative, got %d", p)
		}
	}
	if len(c.TeamNames) == 0 {
		return errors.New("at least one team is required")
	}
	if c.RevealDelay < 0 || c.ReachDisplay < 0 {
		return errors.New("reveal delay and reach display must not be negative")
	}
	if c.Countdown <= 0 {
		return errors.New("countdown must be positive")
	}
	return nil
}
