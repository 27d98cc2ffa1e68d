package middleware

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"time"

	"recipe-matcher/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultDedupWindow = time.Second

// Deduplicator 以方法、路徑與請求體雜湊辨識短時間內的重複請求
type Deduplicator struct {
	window time.Duration
	now    func() time.Time

	mu          sync.Mutex
	requests    map[string]time.Time
	lastCleanup time.Time
}

// NewDeduplicator window 不大於 0 時使用一秒
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = defaultDedupWindow
	}
	return &Deduplicator{
		window:   window,
		now:      time.Now,
		requests: make(map[string]time.Time),
	}
}

// seen 記錄指紋，window 內重複出現時回傳 true
func (d *Deduplicator) seen(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if now.Sub(d.lastCleanup) > 10*d.window {
		for k, t := range d.requests {
			if now.Sub(t) > d.window {
				delete(d.requests, k)
			}
		}
		d.lastCleanup = now
	}

	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// Handler 請求去重中間件，只處理 POST
func (d *Deduplicator) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		fingerprint := c.Request.Method + ":" + c.Request.URL.Path
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("Failed to read request body", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.ErrRequestTooLarge.ToResponse(false))
				return
			}
			fingerprint += ":" + common.HashString(string(body))

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		if d.seen(fingerprint) {
			common.LogWarn("Duplicate request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(common.ErrDuplicateRequest.Status, common.ErrDuplicateRequest.ToResponse(false))
			return
		}

		c.Next()
	}
}

// Deduplication 以指定時間窗建立去重中間件
func Deduplication(window time.Duration) gin.HandlerFunc {
	return NewDeduplicator(window).Handler()
}
