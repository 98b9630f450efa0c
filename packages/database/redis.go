package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss GetJSON 未命中
var ErrCacheMiss = errors.New("cache miss")

type RedisConfig struct {
	ServiceName  string // 作为 CLIENT SETNAME
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxConnAge   time.Duration
	OpTimeout    time.Duration // 单次读写超时
}

// RedisClient 在 go-redis 客户端上附加 JSON 读写
type RedisClient struct {
	*redis.Client
}

// InitRedis ping 失败时关闭客户端并返回错误，调用方可降级为无缓存
func InitRedis(config *RedisConfig) (*RedisClient, error) {
	if config == nil {
		return nil, fmt.Errorf("配置不能为空")
	}
	setRedisDefaults(config)

	opts := redisOptions(config)
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("连接 Redis 失败: %w", err)
	}

	slog.Info("Redis 连接成功", "service", config.ServiceName, "addr", opts.Addr, "db", opts.DB)
	return &RedisClient{Client: client}, nil
}

func redisOptions(c *RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:            net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		ClientName:      c.ServiceName,
		Password:        c.Password,
		DB:              c.DB,
		PoolSize:        c.PoolSize,
		MinIdleConns:    c.MinIdleConns,
		ConnMaxLifetime: c.MaxConnAge,
		ReadTimeout:     c.OpTimeout,
		WriteTimeout:    c.OpTimeout,
	}
}

// GetJSON 未命中返回 ErrCacheMiss
func (c *RedisClient) GetJSON(ctx context.Context, key string, dest any) error {
	raw, err := c.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return ErrCacheMiss
	case err != nil:
		return err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("解析缓存 %s 失败: %w", key, err)
	}
	return nil
}

func (c *RedisClient) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, raw, ttl).Err()
}

func setRedisDefaults(c *RedisConfig) {
	if c.ServiceName == "" {
		c.ServiceName = "unknown-service"
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 6379
	}
	if c.PoolSize == 0 {
		c.PoolSize = 10
	}
	if c.MinIdleConns == 0 {
		c.MinIdleConns = 2
	}
	if c.MaxConnAge == 0 {
		c.MaxConnAge = time.Hour
	}
	if c.OpTimeout == 0 {
		c.OpTimeout = time.Second
	}
}
