package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/quizbingo/internal/api"
	"github.com/mcoot/quizbingo/internal/config"
	"github.com/mcoot/quizbingo/internal/factory"
	"github.com/mcoot/quizbingo/internal/services/game"
	"github.com/mcoot/quizbingo/internal/services/host"
	redisstorage "github.com/mcoot/quizbingo/internal/storage/redis"
)

// hostSessionSweep is how often expired host sessions are dropped
const hostSessionSweep = 10 * time.Minute

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
		SQLitePath:  cfg.SQLitePath,
		Game: game.Config{
			TeamNames:    cfg.TeamNames,
			BoardSize:    cfg.BoardSize,
			RowPoints:    cfg.RowPoints,
			RevealDelay:  cfg.RevealDelay,
			ReachDisplay: cfg.ReachDisplay,
		},
		CountdownDuration: cfg.Countdown,
		Host: host.Config{
			Password: cfg.HostPassword,
		},
	}
	if cfg.StorageType == config.StorageRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(ctx, factoryCfg)
	if err != nil {
		return fmt.Errorf("creating application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	if err := app.Init(ctx, cfg.QuizFile); err != nil {
		return err
	}

	if !app.HostService.Enabled() {
		logger.Warn("no host password set, anyone can reset the session")
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		StorageType: app.StorageType,
		Engine:      app.Engine,
		Countdown:   app.Countdown,
		QuizBank:    app.QuizBank,
		HostService: app.HostService,
		Hub:         app.Hub,
		Broadcaster: app.Broadcaster,
	})

	serverCfg := api.DefaultServerConfig()
	serverCfg.Addr = cfg.HTTPAddr
	server := api.NewServer(router, serverCfg, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Hub.Run()
		return nil
	})

	g.Go(server.Start)

	g.Go(func() error {
		ticker := time.NewTicker(hostSessionSweep)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				app.HostService.CleanExpiredSessions()
			case <-gctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received")
		app.Countdown.Stop()
		app.Hub.Close()
		return server.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("server stopped")
	return nil
}
