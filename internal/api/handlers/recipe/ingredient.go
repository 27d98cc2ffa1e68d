package recipe

import (
	"net/http"

	recipeService "recipe-matcher/internal/core/recipe"
	"recipe-matcher/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleParse 從自由文字解析食材
func (h *Handler) HandleParse(c *gin.Context) {
	var req recipeService.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.ingredientService.Parse(c.Request.Context(), req.Text, req.Details))
}

// HandleValidate 將食材分為有效與無效
func (h *Handler) HandleValidate(c *gin.Context) {
	var req recipeService.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.ingredientService.Validate(req.Ingredients))
}

// HandleSubstitutes 查詢食材替代建議
func (h *Handler) HandleSubstitutes(c *gin.Context) {
	resp, err := h.ingredientService.Substitutes(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleAnalysis 依現有食材提供採購建議
func (h *Handler) HandleAnalysis(c *gin.Context) {
	var req recipeService.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.matchService.Analyze(c.Request.Context(), req.Ingredients)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleRecognize 辨識照片中的食材，可選擇接著比對食譜
func (h *Handler) HandleRecognize(c *gin.Context) {
	requestID := requestid.Get(c)

	var req recipeService.RecognizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	common.LogInfo("開始處理影像辨識請求",
		zap.String("request_id", requestID),
		zap.String("image_type", getImageType(req.Image)),
		zap.String("image_prefix", common.ImagePrefix(req.Image)),
		zap.Int("image_length", len(req.Image)),
		zap.Bool("match", req.Match),
	)

	resp, err := h.ingredientService.Recognize(c.Request.Context(), req.Image, req.Match, req.Options)
	if err != nil {
		respondError(c, err)
		return
	}

	common.LogInfo("影像辨識請求完成",
		zap.String("request_id", requestID),
		zap.Int("ingredients_count", len(resp.Ingredients)),
		zap.Bool("mock", resp.Mock),
	)
	c.JSON(http.StatusOK, resp)
}

// HandleBulkSubstitutes 批次查詢食材的直接替代
func (h *Handler) HandleBulkSubstitutes(c *gin.Context) {
	var req recipeService.BulkSubstitutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.ingredientService.BulkSubstitutes(req.Ingredients)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleSubstitutable 列出有替代選項的原料
func (h *Handler) HandleSubstitutable(c *gin.Context) {
	c.JSON(http.StatusOK, h.ingredientService.Substitutable())
}

// HandleCategories 分類食材清單
func (h *Handler) HandleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogService.Ingredients(c.Request.Context()))
}
