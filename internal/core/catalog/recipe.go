// Package catalog 唯讀的食譜資料集，載入時驗證一次
package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"recipe-matcher/internal/core/nutrition"
)

// 難度等級
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const maxRating = 5

var (
	// ErrNotFound 找不到指定食譜
	ErrNotFound = errors.New("recipe not found")
	// ErrInvalidRecipe 食譜資料不合法
	ErrInvalidRecipe = errors.New("invalid recipe")
)

// Recipe 食譜
type Recipe struct {
	ID           int             `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Ingredients  []string        `json:"ingredients" yaml:"ingredients"`
	Instructions []string        `json:"instructions" yaml:"instructions"`
	CookingTime  int             `json:"cooking_time" yaml:"cooking_time"`
	PrepTime     int             `json:"prep_time" yaml:"prep_time"`
	TotalTime    int             `json:"total_time" yaml:"total_time"`
	Difficulty   string          `json:"difficulty" yaml:"difficulty"`
	Servings     int             `json:"servings" yaml:"servings"`
	Dietary      []string        `json:"dietary" yaml:"dietary"`
	Tags         []string        `json:"tags" yaml:"tags"`
	Nutrition    nutrition.Facts `json:"nutrition" yaml:"nutrition"`
	Cuisine      string          `json:"cuisine" yaml:"cuisine"`
	Image        string          `json:"image,omitempty" yaml:"image,omitempty"`
	Equipment    []string        `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Rating       float64         `json:"rating" yaml:"rating"`
	RatingCount  int             `json:"rating_count" yaml:"rating_count"`
	Tips         []string        `json:"tips,omitempty" yaml:"tips,omitempty"`
}

// HasDiet 是否標示指定飲食類型
func (r Recipe) HasDiet(diet string) bool {
	diet = strings.ToLower(strings.TrimSpace(diet))
	for _, d := range r.Dietary {
		if d == diet {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}

// normalize 統一大小寫並補上 total_time
func normalize(r Recipe) Recipe {
	r.Name = strings.TrimSpace(r.Name)
	r.Ingredients = lowerAll(r.Ingredients)
	r.Dietary = lowerAll(r.Dietary)
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	if r.TotalTime == 0 {
		r.TotalTime = r.CookingTime + r.PrepTime
	}
	return r
}

// validate 回傳該筆食譜所有問題的聯合錯誤
func validate(r Recipe) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if r.ID <= 0 {
		add("id must be positive")
	}
	if r.Name == "" {
		add("name is required")
	}
	if len(r.Ingredients) == 0 {
		add("at least one ingredient is required")
	}
	for i, ing := range r.Ingredients {
		if ing == "" {
			add("ingredient %d is empty", i)
		}
	}
	switch r.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		add("unknown difficulty %q", r.Difficulty)
	}
	if r.Servings <= 0 {
		add("servings must be positive")
	}
	if r.CookingTime < 0 || r.PrepTime < 0 || r.TotalTime < 0 {
		add("times cannot be negative")
	}
	if err := nutrition.Validate(r.Nutrition); err != nil {
		errs = append(errs, err)
	}
	if math.IsNaN(r.Rating) || r.Rating < 0 || r.Rating > maxRating {
		add("rating must be within 0-%d", maxRating)
	}
	if r.RatingCount < 0 {
		add("rating_count cannot be negative")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w %d (%q): %w", ErrInvalidRecipe, r.ID, r.Name, errors.Join(errs...))
}
