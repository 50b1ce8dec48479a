package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/lox/headsup/internal/config"
	"github.com/lox/headsup/internal/match"
	"github.com/lox/headsup/internal/server"
)

// ServeCmd runs the HTTP and websocket server
type ServeCmd struct {
	Config   string `kong:"default='headsup.hcl',env='HEADSUP_CONFIG',help='HCL configuration file'"`
	Addr     string `kong:"env='HEADSUP_ADDR',help='Listen address (overrides config)'"`
	LogLevel string `kong:"env='HEADSUP_LOG_LEVEL',help='Log level (overrides config)'"`
	Redis    string `kong:"env='REDIS_ADDR',help='Redis address; switches the store to redis'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := c.load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Server.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	retention, err := cfg.CompletedRetention()
	if err != nil {
		return err
	}
	sweepEvery, err := cfg.SweepInterval()
	if err != nil {
		return err
	}
	manager := match.NewManager(match.Options{
		Store:         store,
		Logger:        logger,
		Retention:     retention,
		SweepInterval: sweepEvery,
	})
	sweeper := manager.StartSweeper(ctx)

	logger.Info("Match defaults",
		"store", cfg.Store.Backend,
		"chips", cfg.Match.StartingChips,
		"blinds", fmt.Sprintf("%d/%d", cfg.Match.SmallBlind, cfg.Match.BigBlind),
		"max_hands", cfg.Match.MaxHands,
		"retention", retention)

	srv := server.NewServer(cfg.Server.Address, manager, cfg.MatchDefaults(), logger)
	err = srv.Start(ctx)
	stop()
	if werr := sweeper.Wait(); werr != nil && !errors.Is(werr, context.Canceled) && err == nil {
		err = werr
	}
	return err
}

// load reads the config file and applies flag overrides on top.
func (c *ServeCmd) load() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}
	if c.Redis != "" {
		cfg.Store.Backend = "redis"
		cfg.Store.RedisAddr = c.Redis
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openStore(ctx context.Context, cfg *config.Config) (match.Store, func(), error) {
	switch cfg.Store.Backend {
	case "memory":
		return match.NewMemoryStore(), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Store.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.Store.RedisAddr, err)
		}
		return match.NewRedisStore(client, cfg.Store.RedisPrefix), func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
