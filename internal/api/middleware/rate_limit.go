package middleware

import (
	"fmt"
	"sync"
	"time"

	"recipe-matcher/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter 令牌桶限流器
type RateLimiter struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	rate     float64
	lastTime time.Time
	now      func() time.Time
}

// NewRateLimiter 創建新的限流器，每個 window 補滿 requests 個令牌
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:   float64(requests),
		capacity: float64(requests),
		rate:     float64(requests) / window.Seconds(),
		lastTime: time.Now(),
		now:      time.Now,
	}
}

// Allow 檢查是否允許請求
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	elapsed := now.Sub(rl.lastTime).Seconds()
	rl.lastTime = now

	// 按經過時間補充令牌
	rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.rate)

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// RateLimit 限流中間件
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(requests, window)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(common.ErrTooManyRequests.Status, common.ErrTooManyRequests.ToResponse(false))
			return
		}

		c.Next()
	}
}
