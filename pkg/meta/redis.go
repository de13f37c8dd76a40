package meta

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces the per-term hashes.
	Prefix string
}

// DefaultRedisConfig returns a local Redis configuration.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:   "localhost:6379",
		Prefix: "termmeta:",
	}
}

// Redis stores each term's metadata as one hash.
type Redis struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects and pings the server.
func OpenRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("meta: ping redis %s: %w", cfg.Addr, err)
	}
	return NewRedis(client, cfg.Prefix), nil
}

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) hash(termID int64) string {
	return r.prefix + "term:" + strconv.FormatInt(termID, 10)
}

func (r *Redis) Get(ctx context.Context, termID int64, key string) (string, bool, error) {
	value, err := r.client.HGet(ctx, r.hash(termID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("meta: get term %d key %q: %w", termID, key, err)
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, termID int64, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if err := r.client.HSet(ctx, r.hash(termID), key, value).Err(); err != nil {
		return fmt.Errorf("meta: set term %d key %q: %w", termID, key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, termID int64, key string) error {
	if err := r.client.HDel(ctx, r.hash(termID), key).Err(); err != nil {
		return fmt.Errorf("meta: delete term %d key %q: %w", termID, key, err)
	}
	return nil
}

func (r *Redis) All(ctx context.Context, termID int64) (map[string]string, error) {
	values, err := r.client.HGetAll(ctx, r.hash(termID)).Result()
	if err != nil {
		return nil, fmt.Errorf("meta: list term %d: %w", termID, err)
	}
	return values, nil
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
