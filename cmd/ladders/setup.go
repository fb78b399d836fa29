package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ladders/internal/config"
	"github.com/vovakirdan/tui-ladders/internal/dice"
	"github.com/vovakirdan/tui-ladders/internal/logging"
	"github.com/vovakirdan/tui-ladders/internal/storage"
	"github.com/vovakirdan/tui-ladders/internal/storage/redis"
)

// loadConfig reads the game config and applies the global flag overrides.
func loadConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

func newLogger(cfg config.GameConfig, prefix string) (*log.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(prefix, level), nil
}

// diceSeed returns the --seed value, or a fresh random seed.
func diceSeed() (int64, error) {
	if flagSeed != 0 {
		return flagSeed, nil
	}
	return dice.NewSeed()
}

// backends are the stores a command works with.
type backends struct {
	store *storage.Store        // Results, and saves unless redis is configured
	saves storage.SnapshotStore // Nil when no store could be opened
	redis *redis.Store
}

// openBackends opens the SQLite store and, when configured, the redis save store.
func openBackends(ctx context.Context, cfg config.GameConfig) (*backends, error) {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	b := &backends{store: store, saves: store}

	if cfg.Storage.RedisAddr != "" {
		opts := []redis.Option{redis.WithTTL(cfg.Storage.RedisTTL)}
		if cfg.Storage.RedisPrefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Storage.RedisPrefix))
		}
		rs := redis.New(cfg.Storage.RedisAddr, cfg.Storage.RedisPassword, 0, opts...)
		if err := rs.Ping(ctx); err != nil {
			rs.Close()
			store.Close()
			return nil, fmt.Errorf("saves: %w", err)
		}
		b.redis = rs
		b.saves = rs
	}
	return b, nil
}

func (b *backends) Close() {
	if b.redis != nil {
		b.redis.Close()
	}
	b.store.Close()
}
