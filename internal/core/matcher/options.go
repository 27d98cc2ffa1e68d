package matcher

import "strings"

// SortKey 排序依據
type SortKey string

const (
	SortByMatchScore      SortKey = "match_score"
	SortByCookingTime     SortKey = "cooking_time"
	SortByMatchPercentage SortKey = "match_percentage"
	SortByCalories        SortKey = "calories"
	SortByIngredientCount SortKey = "ingredient_count"
)

const (
	DefaultThreshold  = 0.3
	DefaultMaxResults = 20
	// analysisThreshold 採購分析使用較寬鬆的門檻
	analysisThreshold = 0.1
)

// Options 比對選項，請以 DefaultOptions 取得預設值再調整
type Options struct {
	Threshold            float64  `json:"threshold"`
	IncludeSubstitutions bool     `json:"include_substitutions"`
	MaxResults           int      `json:"max_results"`
	SortBy               SortKey  `json:"sort_by"`
	DietaryRestrictions  []string `json:"dietary_restrictions"`
	// MaxCookingTime 為 0 表示不限制
	MaxCookingTime   int      `json:"max_cooking_time"`
	DifficultyLevels []string `json:"difficulty_levels"`
}

// DefaultOptions 預設比對選項
func DefaultOptions() Options {
	return Options{
		Threshold:            DefaultThreshold,
		IncludeSubstitutions: true,
		MaxResults:           DefaultMaxResults,
		SortBy:               SortByMatchScore,
	}
}

var sortAliases = map[string]SortKey{
	"match_score":      SortByMatchScore,
	"matchscore":       SortByMatchScore,
	"cooking_time":     SortByCookingTime,
	"cookingtime":      SortByCookingTime,
	"match_percentage": SortByMatchPercentage,
	"matchpercentage":  SortByMatchPercentage,
	"calories":         SortByCalories,
	"ingredient_count": SortByIngredientCount,
	"ingredientcount":  SortByIngredientCount,
}

// ParseSortKey 解析排序鍵（接受 snake_case 與 camelCase），無法辨識時回傳 match_score 與 false
func ParseSortKey(s string) (SortKey, bool) {
	key, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return SortByMatchScore, false
	}
	return key, true
}
