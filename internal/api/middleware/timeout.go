package middleware

import (
	"context"
	"errors"
	"time"

	"recipe-matcher/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Timeout 為請求加上期限；處理器未回應且期限已過時回傳 504
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeout),
			)
			c.AbortWithStatusJSON(common.ErrGatewayTimeout.Status, common.ErrGatewayTimeout.ToResponse(false))
		}
	}
}

// Inject 將服務與設定注入請求上下文
func Inject(values map[string]interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		for k, v := range values {
			c.Set(k, v)
		}
		c.Next()
	}
}
