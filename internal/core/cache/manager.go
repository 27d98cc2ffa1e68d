package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Manager 記憶體快取，依 TTL 過期並以最少使用淘汰
type Manager struct {
	maxSize int
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	store map[string]cacheEntry
	stats cacheStats

	janitor *cron.Cron
}

// cacheEntry 緩存條目
type cacheEntry struct {
	value       []byte
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// cacheStats 緩存統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
	errors    int64
}

// NewManager 創建記憶體快取並依排程清理過期項目
func NewManager(cfg config.CacheConfig) (*Manager, error) {
	m := &Manager{
		maxSize: cfg.MaxSize,
		ttl:     cfg.TTL,
		now:     time.Now,
		store:   make(map[string]cacheEntry),
	}

	if cfg.CleanupSchedule != "" {
		m.janitor = cron.New()
		if _, err := m.janitor.AddFunc(cfg.CleanupSchedule, func() { m.Cleanup() }); err != nil {
			return nil, fmt.Errorf("invalid cleanup schedule: %w", err)
		}
		m.janitor.Start()
	}

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.MaxSize),
		zap.Duration("存活時間", cfg.TTL),
		zap.String("清理排程", cfg.CleanupSchedule),
	)
	return m, nil
}

// Get 獲取緩存值，過期項目會一併刪除
func (m *Manager) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[key]
	if !exists {
		m.stats.misses++
		common.LogCacheMiss("memory")
		return nil, ErrMiss
	}

	now := m.now()
	if now.After(entry.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		common.LogDebug("快取已過期", zap.String("鍵", key))
		return nil, ErrMiss
	}

	entry.lastAccess = now
	entry.accessCount++
	m.store[key] = entry
	m.stats.hits++
	common.LogCacheHit("memory")
	return entry.value, nil
}

// Set 設置緩存值，容量不足時先清理過期再淘汰最少使用項目
func (m *Manager) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.store[key]; !exists && len(m.store) >= m.maxSize {
		evicted := m.cleanupLocked()
		common.LogDebug("快取清理執行", zap.Int("清理數量", evicted))

		if len(m.store) >= m.maxSize {
			m.evictLRU()
		}
		if len(m.store) >= m.maxSize {
			m.stats.errors++
			common.LogWarn("快取已滿", zap.Int("目前容量", len(m.store)))
			return ErrFull
		}
	}

	now := m.now()
	m.store[key] = cacheEntry{
		value:      value,
		expiresAt:  now.Add(m.ttl),
		createdAt:  now,
		lastAccess: now,
	}
	common.LogDebug("快取已儲存", zap.String("鍵", key))
	return nil
}

// Cleanup 清理過期的緩存，回傳清理數量
func (m *Manager) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleanupLocked()
}

func (m *Manager) cleanupLocked() int {
	now := m.now()
	count := 0
	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}

	if count > 0 {
		common.LogInfo("Cleaned up expired cache entries",
			zap.Int("count", count),
			zap.Int64("total_evictions", m.stats.evictions),
			zap.Int("remaining_size", len(m.store)),
		)
	}
	return count
}

// evictLRU 淘汰存取次數最少、其次最久未存取的項目
func (m *Manager) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogDebug("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}

// Stats 獲取緩存統計信息
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Backend:   config.CacheBackendMemory,
		Size:      len(m.store),
		MaxSize:   m.maxSize,
		Hits:      m.stats.hits,
		Misses:    m.stats.misses,
		Evictions: m.stats.evictions,
		Errors:    m.stats.errors,
		HitRatio:  hitRatio(m.stats.hits, m.stats.misses),
	}
}

// Close 停止清理排程並清空快取
func (m *Manager) Close() error {
	if m.janitor != nil {
		<-m.janitor.Stop().Done()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = make(map[string]cacheEntry)
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
