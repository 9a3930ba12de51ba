package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/cycle-advisor/internal/domain/cycle"
	"github.com/yanqian/cycle-advisor/internal/infra/config"
	"github.com/yanqian/cycle-advisor/internal/infra/content"
	"github.com/yanqian/cycle-advisor/internal/infra/ratelimit"
	httpiface "github.com/yanqian/cycle-advisor/internal/interface/http"
)

const contentLoadTimeout = 10 * time.Second

func provideCycleConfig(cfg *config.Config, logger *slog.Logger) cycle.Config {
	loc, err := time.LoadLocation(cfg.Cycle.Timezone)
	if err != nil {
		logger.Error("unknown timezone, falling back to UTC", "timezone", cfg.Cycle.Timezone, "error", err)
		loc = time.UTC
	}
	return cycle.Config{
		DefaultCycleLength: cfg.Cycle.DefaultCycleLength,
		DefaultMensesDays:  cfg.Cycle.DefaultMensesDays,
		Locale:             cfg.Cycle.Locale,
		Timezone:           loc,
	}
}

// provideLibrary loads the advice library once at startup. A broken library is fatal.
func provideLibrary(cfg *config.Config, logger *slog.Logger) (*cycle.Library, error) {
	ctx, cancel := context.WithTimeout(context.Background(), contentLoadTimeout)
	defer cancel()

	var source cycle.ContentSource
	switch cfg.Content.Source {
	case config.SourceFile:
		source = content.File{Path: cfg.Content.Path}
	case config.SourceS3:
		store, err := content.NewObjectStore(content.ObjectStoreConfig{
			Endpoint:  cfg.Content.S3.Endpoint,
			AccessKey: cfg.Content.S3.AccessKey,
			SecretKey: cfg.Content.S3.SecretKey,
			Bucket:    cfg.Content.S3.Bucket,
			Region:    cfg.Content.S3.Region,
			Key:       cfg.Content.S3.Key,
		}, logger)
		if err != nil {
			return nil, err
		}
		source = store
	case config.SourcePostgres:
		pool, err := content.Connect(ctx, cfg.Content.Postgres.DSN, cfg.Content.Postgres.MaxConns)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		source = content.NewPostgres(pool, logger)
	default:
		source = content.Embedded{}
	}

	lib, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s content: %w", cfg.Content.Source, err)
	}
	logger.Info("advice library loaded", "source", cfg.Content.Source, "version", lib.Version)
	return lib, nil
}

// provideRateLimiter prefers the shared Valkey limiter and falls back to the in-process one.
func provideRateLimiter(cfg *config.Config, logger *slog.Logger) (httpiface.Limiter, func()) {
	rl := cfg.HTTP.RateLimit
	memory := ratelimit.NewMemoryLimiter(rl)
	if !rl.Valkey.Enabled {
		return memory, func() {}
	}

	opt, err := buildValkeyOptions(rl.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory limiter", "error", err)
		return memory, func() {}
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory limiter", "error", err)
		return memory, func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory limiter", "error", err)
		client.Close()
		return memory, func() {}
	}
	logger.Info("valkey rate limiter enabled", "addr", rl.Valkey.Addr)
	limiter := ratelimit.NewValkeyLimiter(client, rl.Valkey.Prefix, rl.RequestsPerMinute)
	return limiter, limiter.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
