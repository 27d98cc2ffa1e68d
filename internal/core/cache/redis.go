package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore Redis 快取，過期交由 Redis TTL 處理
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
}

// NewRedisStore 建立連線並以 PING 確認可用
func NewRedisStore(ctx context.Context, cfg config.CacheConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 快取已連線",
		zap.String("addr", cfg.Redis.Addr),
		zap.Int("db", cfg.Redis.DB),
		zap.Duration("ttl", cfg.TTL),
	)
	return NewRedisStoreWithClient(client, cfg.Redis.KeyPrefix, cfg.TTL), nil
}

// NewRedisStoreWithClient 使用既有 client 建立
func NewRedisStoreWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Get 獲取緩存
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.misses.Add(1)
			common.LogCacheMiss("redis")
			return nil, ErrMiss
		}
		s.errors.Add(1)
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}
	s.hits.Add(1)
	common.LogCacheHit("redis")
	return data, nil
}

// Set 設置緩存
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		s.errors.Add(1)
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Stats 統計；Size 為目前資料庫的鍵數
func (s *RedisStore) Stats() Stats {
	hits, misses := s.hits.Load(), s.misses.Load()
	st := Stats{
		Backend:  config.CacheBackendRedis,
		Hits:     hits,
		Misses:   misses,
		Errors:   s.errors.Load(),
		HitRatio: hitRatio(hits, misses),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if n, err := s.client.DBSize(ctx).Result(); err == nil {
		st.Size = int(n)
	}
	return st
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
