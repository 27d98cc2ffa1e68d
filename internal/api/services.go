package api

import (
	"fmt"

	"recipe-matcher/internal/core/cache"
	"recipe-matcher/internal/core/catalog"
	"recipe-matcher/internal/core/matcher"
	recipeService "recipe-matcher/internal/core/recipe"
	"recipe-matcher/internal/core/recognition"
	"recipe-matcher/internal/core/substitution"
	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"go.uber.org/zap"
)

// Services 路由使用的應用服務
type Services struct {
	Catalog    *recipeService.CatalogService
	Match      *recipeService.MatchService
	Ingredient *recipeService.IngredientService
	Recognizer recognition.Recognizer
}

// LoadCatalog 依設定載入食譜目錄，未指定路徑時使用內建目錄
func LoadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.Path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", cfg.Path, err)
	}
	return cat, nil
}

// NewServices 初始化所有應用服務，store 可為 nil
func NewServices(cfg *config.Config, store cache.Store) (*Services, error) {
	cat, err := LoadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	graph := substitution.Default()
	base := recipeService.NewService(store)
	matchSvc := recipeService.NewMatchService(base, cat, matcher.New(graph), cfg.Matcher)
	recognizer := recognition.NewRecognizer(cfg.Recognition)
	images := recognition.NewImageProcessor(cfg.Image.MaxSizeBytes)

	common.LogInfo("Services initialized",
		zap.Int("catalog_size", cat.Len()),
		zap.Int("substitution_entries", graph.Len()),
		zap.String("recognizer", recognizer.Name()),
		zap.Bool("cache_enabled", store != nil),
	)

	return &Services{
		Catalog:    recipeService.NewCatalogService(cat),
		Match:      matchSvc,
		Ingredient: recipeService.NewIngredientService(graph, recognizer, images, matchSvc),
		Recognizer: recognizer,
	}, nil
}
