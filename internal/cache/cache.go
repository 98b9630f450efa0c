package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"terminal-terrace/ai-magazine/packages/database"
)

const keyPrefix = "magazine:"

// Store 固定 TTL 的 JSON 缓存，Redis 不可用时直接回源
type Store struct {
	rdb *database.RedisClient
	ttl time.Duration
}

// New rdb 可以为 nil
func New(rdb *database.RedisClient, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Remember 命中则解码到 dest，否则调用 load 并写回缓存
func Remember[T any](ctx context.Context, s *Store, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if s == nil || s.rdb == nil {
		return load(ctx)
	}

	var cached T
	err := s.rdb.GetJSON(ctx, keyPrefix+key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, database.ErrCacheMiss) {
		slog.Warn("读取缓存失败", "key", key, "error", err)
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	if err := s.rdb.SetJSON(ctx, keyPrefix+key, value, s.ttl); err != nil {
		slog.Warn("写入缓存失败", "key", key, "error", err)
	}
	return value, nil
}

// Forget 删除缓存，写操作之后调用
func (s *Store) Forget(ctx context.Context, keys ...string) {
	if s == nil || s.rdb == nil || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = keyPrefix + k
	}
	if err := s.rdb.Del(ctx, full...).Err(); err != nil {
		slog.Warn("删除缓存失败", "keys", keys, "error", err)
	}
}
