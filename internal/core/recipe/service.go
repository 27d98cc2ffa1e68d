// Package recipe 組合解析、比對、替代與辨識的應用服務
package recipe

import (
	"context"
	"errors"

	"recipe-matcher/internal/core/cache"
	"recipe-matcher/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrNoIngredients 輸入中沒有可用的食材
var ErrNoIngredients = errors.New("no ingredients detected")

// Service 服務基礎結構，cache 可為 nil
type Service struct {
	cache cache.Store
}

// NewService 創建服務基礎結構
func NewService(store cache.Store) *Service {
	return &Service{cache: store}
}

// getFromCache 從緩存讀取並解碼，未命中或未啟用時回傳 false
func (s *Service) getFromCache(ctx context.Context, key string, v interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			common.LogWarn("讀取快取失敗", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := common.ParseJSONBytes(data, v); err != nil {
		common.LogWarn("快取內容無法解析", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// setToCache 將數據編碼後存入緩存，失敗只記錄不中斷
func (s *Service) setToCache(ctx context.Context, key string, v interface{}) {
	if s.cache == nil {
		return
	}
	data, err := common.ToJSON(v)
	if err != nil {
		common.LogWarn("快取內容無法編碼", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, []byte(data)); err != nil {
		common.LogWarn("寫入快取失敗", zap.String("key", key), zap.Error(err))
	}
}

// CacheStats 快取統計，未啟用時回傳 nil
func (s *Service) CacheStats() *cache.Stats {
	if s.cache == nil {
		return nil
	}
	st := s.cache.Stats()
	return &st
}
