package kv

import (
	"context"
	"errors"
	"fmt"

	re "github.com/redis/go-redis/v9"
)

// Redis stores documents as plain string values under <namespace>:<key>.
type Redis struct {
	client    *re.Client
	namespace string
}

func OpenRedis(ctx context.Context, cfg Config) (*Redis, error) {
	client := re.NewClient(&re.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedis(client, cfg.RedisNamespace), nil
}

func NewRedis(client *re.Client, namespace string) *Redis {
	if namespace == "" {
		namespace = "talentflow"
	}
	return &Redis{client: client, namespace: namespace}
}

func (r *Redis) withNamespace(key string) string {
	return fmt.Sprintf("%s:%s", r.namespace, key)
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, r.withNamespace(key)).Bytes()
	if errors.Is(err, re.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.withNamespace(key), value, 0).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.withNamespace(key)).Err()
}

func (r *Redis) Close(context.Context) error {
	return r.client.Close()
}
