package main

import (
	"context"
	"log"
	"math/rand"

	"github.com/sngm3741/talentflow/api/internal/config"
	"github.com/sngm3741/talentflow/api/internal/infrastructure/kv"
	"github.com/sngm3741/talentflow/api/internal/infrastructure/storage"
	"github.com/sngm3741/talentflow/api/internal/logging"
	"github.com/sngm3741/talentflow/api/internal/metrics"
	"github.com/sngm3741/talentflow/api/internal/server"
	"github.com/sngm3741/talentflow/api/internal/talent/application"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load env file: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Storage.MongoConnectTimeout)
	defer cancel()

	backend, err := kv.Open(ctx, cfg.Storage.KV())
	if err != nil {
		logger.Fatal("open storage backend", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	store := storage.New(backend,
		storage.WithLogger(logger.Named("storage")),
		storage.WithSeedOnEmpty(cfg.Storage.SeedOnEmpty),
	)
	if err := store.Open(ctx); err != nil {
		logger.Fatal("open storage", zap.Error(err))
	}

	var rng *rand.Rand
	if cfg.Writes.RandomSeed != 0 {
		rng = rand.New(rand.NewSource(cfg.Writes.RandomSeed))
	}
	policy := application.NewRandomWritePolicy(application.WritePolicyConfig{
		MinDelay:       cfg.Writes.MinDelay,
		MaxDelay:       cfg.Writes.MaxDelay,
		MinFailureRate: cfg.Writes.MinFailureRate,
		MaxFailureRate: cfg.Writes.MaxFailureRate,
	}, rng)

	logger.Info("starting talentflow api",
		zap.String("addr", cfg.Addr),
		zap.String("backend", cfg.Storage.Backend),
		zap.Bool("auth", cfg.AuthEnabled()),
	)

	app := server.New(cfg, store, policy, metrics.NewMetrics(), logger)
	if err := app.Run(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
