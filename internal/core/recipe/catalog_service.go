package recipe

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"recipe-matcher/internal/core/catalog"
	"recipe-matcher/internal/core/nutrition"
	"recipe-matcher/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultMaxMissing 未指定時允許缺少的食材數
const DefaultMaxMissing = 2

// CatalogService 食譜目錄查詢服務
type CatalogService struct {
	catalog *catalog.Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCatalogService 創建食譜目錄服務
func NewCatalogService(cat *catalog.Catalog) *CatalogService {
	return NewCatalogServiceWithSeed(cat, time.Now().UnixNano())
}

// NewCatalogServiceWithSeed 以固定種子建立，隨機推薦結果可重現
func NewCatalogServiceWithSeed(cat *catalog.Catalog, seed int64) *CatalogService {
	return &CatalogService{catalog: cat, rng: rand.New(rand.NewSource(seed))}
}

// Len 目錄中的食譜數
func (s *CatalogService) Len() int {
	return s.catalog.Len()
}

// List 依條件篩選食譜，條件皆為空時回傳全部
func (s *CatalogService) List(ctx context.Context, f catalog.Filter) *RecipeListResponse {
	recipes := s.catalog.Find(f)
	common.LogDebug("食譜查詢",
		zap.String("diet", f.Diet),
		zap.String("cuisine", f.Cuisine),
		zap.String("difficulty", f.Difficulty),
		zap.Int("max_time", f.MaxTime),
		zap.String("q", f.Query),
		zap.Int("count", len(recipes)),
	)
	return &RecipeListResponse{Recipes: recipes, Total: len(recipes)}
}

// Get 依 ID 取得食譜
func (s *CatalogService) Get(ctx context.Context, id int) (catalog.Recipe, error) {
	return s.catalog.ByID(id)
}

// Nutrition 每份營養摘要與指定份數的總量；servings 不大於 0 時使用食譜份數
func (s *CatalogService) Nutrition(ctx context.Context, id int, servings float64) (*NutritionResponse, error) {
	if math.IsNaN(servings) || math.IsInf(servings, 0) {
		return nil, common.NewValidationError("servings must be a finite number")
	}
	r, err := s.catalog.ByID(id)
	if err != nil {
		return nil, err
	}
	if servings <= 0 {
		servings = float64(r.Servings)
	}
	total := nutrition.Scale(r.Nutrition, 1, servings)
	return &NutritionResponse{
		RecipeID:     r.ID,
		Name:         r.Name,
		Servings:     servings,
		PerServing:   nutrition.Summarize(r.Nutrition, 1),
		Total:        total,
		PerServingKJ: nutrition.Convert(r.Nutrition.Calories, "cal", "kj"),
		TotalKJ:      nutrition.Convert(total.Calories, "cal", "kj"),
	}, nil
}

// CompareNutrition 比較兩道食譜的每份營養
func (s *CatalogService) CompareNutrition(ctx context.Context, fromID, toID int) (*NutritionCompareResponse, error) {
	from, err := s.catalog.ByID(fromID)
	if err != nil {
		return nil, err
	}
	to, err := s.catalog.ByID(toID)
	if err != nil {
		return nil, err
	}
	return &NutritionCompareResponse{
		From:       RecipeRef{ID: from.ID, Name: from.Name},
		To:         RecipeRef{ID: to.ID, Name: to.Name},
		Comparison: nutrition.Compare(from.Nutrition, to.Nutrition),
	}, nil
}

// Ingredients 分類食材清單與目錄中出現過的食材
func (s *CatalogService) Ingredients(ctx context.Context) *IngredientCatalogResponse {
	all := s.catalog.AllIngredients()
	return &IngredientCatalogResponse{
		Categories:  catalog.IngredientCategories(),
		Ingredients: all,
		Total:       len(all),
	}
}

// MinimalMissing 只缺少 maxMissing 個以內食材的食譜，依缺少數排序
func (s *CatalogService) MinimalMissing(ctx context.Context, available []string, maxMissing int) (*MinimalMissingResponse, error) {
	have := common.NormalizeList(available)
	if len(have) == 0 {
		return nil, ErrNoIngredients
	}
	if maxMissing < 0 {
		return nil, common.NewValidationError("max must not be negative")
	}

	recipes := s.catalog.WithMinimalMissing(have, maxMissing)
	common.LogDebug("缺少食材查詢",
		zap.Int("available", len(have)),
		zap.Int("max_missing", maxMissing),
		zap.Int("count", len(recipes)),
	)
	return &MinimalMissingResponse{
		Available:  have,
		MaxMissing: maxMissing,
		Recipes:    recipes,
		Total:      len(recipes),
	}, nil
}

// Random 隨機推薦一道食譜
func (s *CatalogService) Random(ctx context.Context) (catalog.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Random(s.rng)
}
