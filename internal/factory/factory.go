package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/quizbingo/internal/dependencies/clock"
	"github.com/mcoot/quizbingo/internal/dependencies/random"
	"github.com/mcoot/quizbingo/internal/dependencies/scheduler"
	"github.com/mcoot/quizbingo/internal/services/countdown"
	"github.com/mcoot/quizbingo/internal/services/game"
	"github.com/mcoot/quizbingo/internal/services/host"
	"github.com/mcoot/quizbingo/internal/services/quizbank"
	"github.com/mcoot/quizbingo/internal/sse"
	"github.com/mcoot/quizbingo/internal/storage"
	"github.com/mcoot/quizbingo/internal/storage/memory"
	redisstorage "github.com/mcoot/quizbingo/internal/storage/redis"
	sqlitestorage "github.com/mcoot/quizbingo/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage     storage.Storage
	StorageType string

	// External dependencies
	Clock     clock.Clock
	Random    random.Random
	Scheduler scheduler.Scheduler

	// Services
	QuizBank    *quizbank.Service
	Engine      *game.Engine
	Countdown   *countdown.Service
	HostService *host.Service
	Hub         *sse.Hub
	Broadcaster *sse.Broadcaster

	logger       *slog.Logger
	closeStorage func() error
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// Game holds the board and pacing settings
	// If zero value, defaults to game.DefaultConfig()
	Game game.Config
	// CountdownDuration is the turn timer length (optional)
	CountdownDuration time.Duration
	// Host holds host authentication settings (optional)
	Host host.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var store storage.Storage
	closeStorage := func() error { return nil }

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closeStorage = redisStore.Close
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.New(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
		closeStorage = sqliteStore.Close
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}

	gameCfg := cfg.Game
	if gameCfg.BoardSize == 0 {
		gameCfg = game.DefaultConfig()
	}

	app, err := newWithDependencies(store, clock.New(), random.New(), scheduler.New(), gameCfg, cfg.CountdownDuration, cfg.Host, logger)
	if err != nil {
		_ = closeStorage()
		return nil, err
	}
	app.StorageType = storageType
	app.closeStorage = closeStorage
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	sched scheduler.Scheduler,
	gameCfg game.Config,
	countdownDuration time.Duration,
	hostCfg host.Config,
	logger *slog.Logger,
) (*App, error) {
	quizBank := quizbank.New(store, rnd, logger)

	engine, err := game.NewEngine(gameCfg, store, quizBank, clk, sched, logger)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	hostService, err := host.New(clk, hostCfg)
	if err != nil {
		return nil, fmt.Errorf("creating host service: %w", err)
	}

	timer := countdown.New(countdownDuration, clk, sched, logger)

	hub := sse.NewHub(logger)
	broadcaster := sse.NewBroadcaster(hub, engine.Lines(), timer.State().Duration, logger)
	engine.Subscribe(broadcaster.HandleGameEvent)
	timer.Subscribe(broadcaster.HandleTimerEvent)

	return &App{
		Storage:      store,
		StorageType:  StorageTypeMemory,
		Clock:        clk,
		Random:       rnd,
		Scheduler:    sched,
		QuizBank:     quizBank,
		Engine:       engine,
		Countdown:    timer,
		HostService:  hostService,
		Hub:          hub,
		Broadcaster:  broadcaster,
		logger:       logger,
		closeStorage: func() error { return nil },
	}, nil
}

// Init loads the quiz pool and restores or creates the session. With a quiz
// file the pool is read from it and saved to storage; otherwise the pool
// saved by an earlier run is used. It fails when the pool cannot fill the
// board.
func (a *App) Init(ctx context.Context, quizFile string) error {
	if quizFile != "" {
		if err := a.QuizBank.LoadFromFile(ctx, quizFile); err != nil {
			return fmt.Errorf("loading quizzes: %w", err)
		}
	} else if err := a.QuizBank.LoadFromStorage(ctx); err != nil {
		return fmt.Errorf("loading quizzes from storage: %w", err)
	}

	a.logger.Info("quiz bank loaded", slog.Int("quizzes", a.QuizBank.Count()))

	if err := a.Engine.Load(ctx); err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	return nil
}

// Close stops the SSE hub and releases the storage backend
func (a *App) Close() error {
	a.Hub.Close()
	return a.closeStorage()
}
