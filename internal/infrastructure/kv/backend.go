// Package kv holds the byte-document backends the storage module persists into.
package kv

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Backend persists opaque documents under string keys.
// Get reports ok=false when the key has never been written.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close(ctx context.Context) error
}

const (
	KindMemory = "memory"
	KindFile   = "file"
	KindMongo  = "mongo"
	KindRedis  = "redis"
)

// Config selects and parameterises a backend.
type Config struct {
	Kind string

	Dir string

	MongoURI            string
	MongoDatabase       string
	MongoCollection     string
	MongoConnectTimeout time.Duration

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisNamespace string
}

// Open builds the backend named by cfg.Kind.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case "", KindMemory:
		return NewMemory(), nil
	case KindFile:
		return NewFile(cfg.Dir)
	case KindMongo:
		return OpenMongo(ctx, cfg)
	case KindRedis:
		return OpenRedis(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Kind)
	}
}
