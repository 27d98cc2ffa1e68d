package recipe

import (
	"context"
	"errors"
	"strings"

	"recipe-matcher/internal/core/catalog"
	recipeService "recipe-matcher/internal/core/recipe"
	"recipe-matcher/internal/core/recognition"
	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// toCustomError 將服務層錯誤對應到 API 錯誤
func toCustomError(err error) *common.CustomError {
	var custom *common.CustomError
	switch {
	case errors.As(err, &custom):
		return custom
	case errors.Is(err, recipeService.ErrNoIngredients):
		return common.ErrNoIngredients.WithErr(err)
	case errors.Is(err, catalog.ErrNotFound):
		return common.ErrNotFound.WithErr(err)
	case errors.Is(err, recognition.ErrImageTooLarge):
		return common.ErrInvalidImageSize.WithErr(err)
	case errors.Is(err, recognition.ErrInvalidImage):
		return common.ErrInvalidImageFormat.WithErr(err)
	case common.IsValidationError(err):
		return common.ErrInvalidRequest.WithErr(err)
	case errors.Is(err, context.DeadlineExceeded):
		return common.ErrGatewayTimeout.WithErr(err)
	case errors.Is(err, context.Canceled):
		return common.ErrRequestTimeout.WithErr(err)
	default:
		return common.ErrInternalError.WithErr(err)
	}
}

// respondError 記錄並回傳錯誤，debug 模式附上原始錯誤
func respondError(c *gin.Context, err error) {
	e := toCustomError(err)

	fields := []zap.Field{
		zap.Error(err),
		zap.String("code", e.Code),
		zap.String("request_id", requestid.Get(c)),
		zap.String("path", c.Request.URL.Path),
	}
	if e.Status >= 500 {
		common.LogError("Request failed", fields...)
	} else {
		common.LogWarn("Request rejected", fields...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(e.Status, e.ToResponse(debugMode(c)))
}

// bindError 請求格式錯誤
func bindError(c *gin.Context, err error) {
	respondError(c, common.ErrInvalidRequest.WithErr(err))
}

func debugMode(c *gin.Context) bool {
	v, ok := c.Get("config")
	if !ok {
		return false
	}
	cfg, ok := v.(*config.Config)
	return ok && cfg.App.Debug
}

// getImageType 獲取圖片類型（用於日誌記錄）
func getImageType(image string) string {
	if image == "" {
		return "empty"
	}
	if strings.HasPrefix(image, "data:image/") {
		parts := strings.SplitN(image, ";base64,", 2)
		if len(parts) == 2 {
			return "base64_data_uri_" + strings.TrimPrefix(parts[0], "data:image/")
		}
		return "invalid_data_uri"
	}
	return "base64"
}
