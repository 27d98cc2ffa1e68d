package health

import (
	"errors"
	"net/http"
	"runtime"
	"time"

	"recipe-matcher/internal/core/cache"
	"recipe-matcher/internal/core/recipe"
	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Version     string                 `json:"version"`
	Runtime     map[string]interface{} `json:"runtime"`
	CatalogSize int                    `json:"catalog_size"`
	Recognizer  string                 `json:"recognizer"`
	Cache       *cache.Stats           `json:"cache,omitempty"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	cfg, ok := contextValue[*config.Config](c, "config")
	if !ok {
		return
	}
	catalogSvc, ok := contextValue[*recipe.CatalogService](c, "catalog_service")
	if !ok {
		return
	}
	matchSvc, ok := contextValue[*recipe.MatchService](c, "match_service")
	if !ok {
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		CatalogSize: catalogSvc.Len(),
		Recognizer:  c.GetString("recognizer"),
		Cache:       matchSvc.CacheStats(),
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，目錄為空時回傳 503
func ReadinessCheck(c *gin.Context) {
	catalogSvc, ok := contextValue[*recipe.CatalogService](c, "catalog_service")
	if !ok {
		return
	}
	if catalogSvc.Len() == 0 {
		err := common.ErrServiceUnavailable.WithErr(errors.New("catalog is empty"))
		c.JSON(err.Status, err.ToResponse(true))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// contextValue 從上下文取出注入的服務，缺少時直接回應 500
func contextValue[T any](c *gin.Context, key string) (T, bool) {
	var zero T
	v, exists := c.Get(key)
	if !exists {
		common.LogError("Value not found in context", zap.String("key", key))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": key + " not found",
		})
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		common.LogError("Invalid value type in context", zap.String("key", key))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "invalid " + key + " type",
		})
		return zero, false
	}
	return t, true
}
