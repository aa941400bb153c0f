package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/sngm3741/talentflow/api/internal/config"
	"github.com/sngm3741/talentflow/api/internal/infrastructure/kv"
	"github.com/sngm3741/talentflow/api/internal/infrastructure/storage"
	"github.com/sngm3741/talentflow/api/internal/logging"
	"go.uber.org/zap"
)

type seedOptions struct {
	envName string
	reset   bool
	empty   bool
}

func main() {
	opts := parseFlags()

	if err := config.LoadDotEnv(".env", fmt.Sprintf(".env.%s", opts.envName)); err != nil {
		log.Fatalf("load env files: %v", err)
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

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	backend, err := kv.Open(ctx, cfg.Storage.KV())
	if err != nil {
		logger.Fatal("open storage backend", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	store := storage.New(backend, storage.WithLogger(logger), storage.WithSeedOnEmpty(!opts.reset))
	defer func() {
		_ = store.Close(context.Background())
	}()

	// Open seeds an empty backend on its own; -reset replaces whatever is there.
	if err := store.Open(ctx); err != nil {
		logger.Fatal("open storage", zap.Error(err))
	}
	if opts.reset {
		if err := store.Reset(ctx, !opts.empty); err != nil {
			logger.Fatal("reset storage", zap.Error(err))
		}
	}

	stats := store.Stats(ctx)
	logger.Info("seed finished",
		zap.String("backend", cfg.Storage.Backend),
		zap.Int("jobs", stats.Jobs),
		zap.Int("candidates", stats.Candidates),
		zap.Int("assessments", stats.Assessments),
		zap.Int("responses", stats.Responses),
	)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envName, "env", "local", "env file suffix to load (.env.<name>)")
	flag.BoolVar(&opts.reset, "reset", false, "clear existing collections before seeding")
	flag.BoolVar(&opts.empty, "empty", false, "with -reset, leave the collections empty")
	flag.Parse()

	if opts.empty && !opts.reset {
		log.Fatal("-empty requires -reset")
	}
	return opts
}
