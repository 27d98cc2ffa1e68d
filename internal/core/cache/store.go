// Package cache 比對結果快取：記憶體 (Manager) 與 Redis (RedisStore) 兩種後端
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"
)

var (
	// ErrMiss 快取未命中或已過期
	ErrMiss = errors.New("cache miss")
	// ErrFull 快取已滿且無法淘汰
	ErrFull = errors.New("cache full")
)

// Store 快取後端
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Stats() Stats
	Close() error
}

// Stats 快取統計
type Stats struct {
	Backend   string  `json:"backend"`
	Size      int     `json:"size"`
	MaxSize   int     `json:"max_size,omitempty"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Errors    int64   `json:"errors"`
	HitRatio  float64 `json:"hit_ratio"`
}

func hitRatio(hits, misses int64) float64 {
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses)
}

// Key 由類型與請求片段產生快取鍵
func Key(kind string, parts ...string) string {
	return fmt.Sprintf("%s:%s", kind, common.HashString(strings.Join(parts, "\x1f")))
}

// NewStore 依設定建立快取，停用時回傳 nil
func NewStore(ctx context.Context, cfg config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}
	switch cfg.Backend {
	case config.CacheBackendRedis:
		return NewRedisStore(ctx, cfg)
	default:
		return NewManager(cfg)
	}
}
