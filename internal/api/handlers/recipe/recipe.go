package recipe

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"recipe-matcher/internal/core/catalog"
	recipeService "recipe-matcher/internal/core/recipe"
	"recipe-matcher/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜與食材處理程序
type Handler struct {
	matchService      *recipeService.MatchService
	catalogService    *recipeService.CatalogService
	ingredientService *recipeService.IngredientService
}

// NewHandler 創建新的處理程序
func NewHandler(matchService *recipeService.MatchService, catalogService *recipeService.CatalogService, ingredientService *recipeService.IngredientService) *Handler {
	return &Handler{
		matchService:      matchService,
		catalogService:    catalogService,
		ingredientService: ingredientService,
	}
}

// HandleMatch 依食材清單比對食譜
func (h *Handler) HandleMatch(c *gin.Context) {
	var req recipeService.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	common.LogInfo("開始處理食譜比對請求",
		zap.String("request_id", requestid.Get(c)),
		zap.Int("ingredients", len(req.Ingredients)),
	)

	resp, err := h.matchService.Match(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleMatchText 解析自由文字後比對食譜
func (h *Handler) HandleMatchText(c *gin.Context) {
	var req recipeService.MatchTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.matchService.MatchText(c.Request.Context(), req.Text, req.Options)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleList 列出食譜，支援 diet、cuisine、difficulty、max_time、q 篩選
func (h *Handler) HandleList(c *gin.Context) {
	filter := catalog.Filter{
		Diet:       c.Query("diet"),
		Cuisine:    c.Query("cuisine"),
		Difficulty: c.Query("difficulty"),
		Query:      c.Query("q"),
	}
	if raw := c.Query("max_time"); raw != "" {
		maxTime, err := strconv.Atoi(raw)
		if err != nil || maxTime < 0 {
			respondError(c, common.NewValidationError("max_time must be a non-negative integer"))
			return
		}
		filter.MaxTime = maxTime
	}

	c.JSON(http.StatusOK, h.catalogService.List(c.Request.Context(), filter))
}

// recipeID 解析路徑中的食譜 ID
func recipeID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondError(c, common.NewValidationError("recipe id must be a positive integer"))
		return 0, false
	}
	return id, true
}

// HandleGet 取得單一食譜
func (h *Handler) HandleGet(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	r, err := h.catalogService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// HandleNutrition 食譜營養摘要，可用 servings 指定份數
func (h *Handler) HandleNutrition(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var servings float64
	if raw := c.Query("servings"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			respondError(c, common.NewValidationError("servings must be a positive number"))
			return
		}
		servings = v
	}

	resp, err := h.catalogService.Nutrition(c.Request.Context(), id, servings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleCompareNutrition 與 with 指定的食譜比較每份營養
func (h *Handler) HandleCompareNutrition(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	other, err := strconv.Atoi(c.Query("with"))
	if err != nil || other <= 0 {
		respondError(c, common.NewValidationError("with must be a positive recipe id"))
		return
	}

	resp, err := h.catalogService.CompareNutrition(c.Request.Context(), id, other)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleMinimalMissing 依現有食材找出只缺少少量食材的食譜，have 可重複或以逗號分隔
func (h *Handler) HandleMinimalMissing(c *gin.Context) {
	var have []string
	for _, v := range c.QueryArray("have") {
		have = append(have, strings.Split(v, ",")...)
	}

	maxMissing := recipeService.DefaultMaxMissing
	if raw := c.Query("max"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			respondError(c, common.NewValidationError("max must be a non-negative integer"))
			return
		}
		maxMissing = v
	}

	resp, err := h.catalogService.MinimalMissing(c.Request.Context(), have, maxMissing)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleRandom 隨機推薦一道食譜
func (h *Handler) HandleRandom(c *gin.Context) {
	r, err := h.catalogService.Random(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
