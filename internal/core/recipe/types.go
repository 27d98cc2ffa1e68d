package recipe

import (
	"recipe-matcher/internal/core/catalog"
	"recipe-matcher/internal/core/ingredient"
	"recipe-matcher/internal/core/matcher"
	"recipe-matcher/internal/core/nutrition"
	"recipe-matcher/internal/core/recognition"
	"recipe-matcher/internal/core/substitution"
)

// MatchOptions 比對選項，未提供的欄位使用服務預設值
type MatchOptions struct {
	Threshold            *float64 `json:"threshold,omitempty"`
	IncludeSubstitutions *bool    `json:"include_substitutions,omitempty"`
	MaxResults           *int     `json:"max_results,omitempty"`
	SortBy               string   `json:"sort_by,omitempty"`
	DietaryRestrictions  []string `json:"dietary_restrictions,omitempty"`
	MaxCookingTime       int      `json:"max_cooking_time,omitempty"`
	DifficultyLevels     []string `json:"difficulty_levels,omitempty"`
}

// MatchRequest 依食材清單比對食譜
type MatchRequest struct {
	Ingredients []string      `json:"ingredients" binding:"required"`
	Options     *MatchOptions `json:"options,omitempty"`
}

// MatchTextRequest 依自由文字比對食譜
type MatchTextRequest struct {
	Text    string        `json:"text"`
	Options *MatchOptions `json:"options,omitempty"`
}

// MatchResponse 比對結果
type MatchResponse struct {
	Ingredients         []string         `json:"ingredients"`
	RejectedIngredients []string         `json:"rejected_ingredients"`
	Options             matcher.Options  `json:"options"`
	Results             []matcher.Result `json:"results"`
	Total               int              `json:"total"`
	Cached              bool             `json:"cached"`
}

// AnalysisRequest 採購分析請求
type AnalysisRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
}

// AnalysisResponse 採購分析結果
type AnalysisResponse struct {
	Ingredients []string `json:"ingredients"`
	matcher.Analysis
}

// ParseRequest 解析自由文字
type ParseRequest struct {
	Text    string `json:"text"`
	Details bool   `json:"details"`
}

// ParseResponse 解析結果；Details 只在要求時提供
type ParseResponse struct {
	Ingredients []string            `json:"ingredients"`
	Details     []ingredient.Detail `json:"details,omitempty"`
	Count       int                 `json:"count"`
}

// ValidateRequest 驗證食材
type ValidateRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
}

// ValidateResponse 驗證結果
type ValidateResponse struct {
	Valid   []string `json:"valid"`
	Invalid []string `json:"invalid"`
}

// SubstitutesResponse 替代建議
type SubstitutesResponse struct {
	substitution.Suggestions
	Possible []string `json:"possible"`
}

// RecognizeRequest 影像辨識請求
type RecognizeRequest struct {
	Image   string        `json:"image" binding:"required"`
	Match   bool          `json:"match"`
	Options *MatchOptions `json:"options,omitempty"`
}

// RecognizeResponse 影像辨識結果，Match 只在要求比對時提供
type RecognizeResponse struct {
	recognition.Detection
	Provider string         `json:"provider"`
	Match    *MatchResponse `json:"match,omitempty"`
}

// RecipeListResponse 食譜清單
type RecipeListResponse struct {
	Recipes []catalog.Recipe `json:"recipes"`
	Total   int              `json:"total"`
}

// NutritionResponse 食譜營養摘要
type NutritionResponse struct {
	RecipeID     int               `json:"recipe_id"`
	Name         string            `json:"name"`
	Servings     float64           `json:"servings"`
	PerServing   nutrition.Summary `json:"per_serving"`
	Total        nutrition.Facts   `json:"total"`
	PerServingKJ float64           `json:"per_serving_kj"`
	TotalKJ      float64           `json:"total_kj"`
}

// BulkSubstitutesRequest 批次查詢直接替代
type BulkSubstitutesRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
}

// BulkSubstitutesResponse 每個食材的直接替代；Unknown 為表中沒有替代的食材
type BulkSubstitutesResponse struct {
	Substitutions map[string][]string `json:"substitutions"`
	Unknown       []string            `json:"unknown"`
}

// SubstitutableResponse 替代表中所有可被替代的原料
type SubstitutableResponse struct {
	Ingredients []string `json:"ingredients"`
	Total       int      `json:"total"`
}

// IngredientCatalogResponse 分類食材清單與目錄中用到的所有食材
type IngredientCatalogResponse struct {
	Categories  map[string][]string `json:"categories"`
	Ingredients []string            `json:"ingredients"`
	Total       int                 `json:"total"`
}

// MinimalMissingResponse 只缺少少量食材的食譜
type MinimalMissingResponse struct {
	Available  []string          `json:"available"`
	MaxMissing int               `json:"max_missing"`
	Recipes    []catalog.Partial `json:"recipes"`
	Total      int               `json:"total"`
}

// RecipeRef 食譜簡要資訊
type RecipeRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// NutritionCompareResponse 兩道食譜每份營養的差異（以 From 為基準）
type NutritionCompareResponse struct {
	From       RecipeRef                       `json:"from"`
	To         RecipeRef                       `json:"to"`
	Comparison map[string]nutrition.Comparison `json:"comparison"`
}
