package recipe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-matcher/internal/core/cache"
	"recipe-matcher/internal/core/catalog"
	"recipe-matcher/internal/core/ingredient"
	"recipe-matcher/internal/core/matcher"
	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"go.uber.org/zap"
)

// MatchService 食譜比對服務
type MatchService struct {
	*Service
	catalog  *catalog.Catalog
	matcher  *matcher.Matcher
	defaults config.MatcherConfig
}

// NewMatchService 創建食譜比對服務
func NewMatchService(base *Service, cat *catalog.Catalog, m *matcher.Matcher, defaults config.MatcherConfig) *MatchService {
	if base == nil {
		base = NewService(nil)
	}
	if m == nil {
		m = matcher.New(nil)
	}
	if defaults.Threshold == 0 && defaults.MaxResults == 0 {
		defaults = config.MatcherConfig{Threshold: matcher.DefaultThreshold, MaxResults: matcher.DefaultMaxResults}
	}
	return &MatchService{Service: base, catalog: cat, matcher: m, defaults: defaults}
}

// Options 以服務預設值補齊請求選項
func (s *MatchService) Options(in *MatchOptions) matcher.Options {
	opts := matcher.DefaultOptions()
	opts.Threshold = s.defaults.Threshold
	opts.MaxResults = s.defaults.MaxResults
	if in == nil {
		return opts
	}

	if in.Threshold != nil {
		opts.Threshold = *in.Threshold
	}
	if in.IncludeSubstitutions != nil {
		opts.IncludeSubstitutions = *in.IncludeSubstitutions
	}
	if in.MaxResults != nil {
		opts.MaxResults = *in.MaxResults
	}
	if in.SortBy != "" {
		key, ok := matcher.ParseSortKey(in.SortBy)
		if !ok {
			common.LogDebug("Unknown sort key, using match score", zap.String("sort_by", in.SortBy))
		}
		opts.SortBy = key
	}
	opts.DietaryRestrictions = common.NormalizeList(in.DietaryRestrictions)
	opts.MaxCookingTime = in.MaxCookingTime
	opts.DifficultyLevels = common.NormalizeList(in.DifficultyLevels)
	return opts
}

// ValidateOptions 檢查選項範圍
func ValidateOptions(in *MatchOptions) error {
	if in == nil {
		return nil
	}
	if in.Threshold != nil && (*in.Threshold < 0 || *in.Threshold > 1) {
		return common.NewValidationError("threshold must be between 0 and 1")
	}
	if in.MaxResults != nil && *in.MaxResults < 1 {
		return common.NewValidationError("max_results must be at least 1")
	}
	if in.MaxCookingTime < 0 {
		return common.NewValidationError("max_cooking_time must not be negative")
	}
	return nil
}

// splitIngredients 正規化並去重；空白略過，無效字串另列
func splitIngredients(in []string) (valid, rejected []string) {
	valid, rejected = []string{}, []string{}
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if !ingredient.Validate(trimmed) {
			rejected = append(rejected, trimmed)
			continue
		}
		name := ingredient.Normalize(trimmed)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		valid = append(valid, name)
	}
	return valid, rejected
}

// Match 比對現有食材與食譜目錄
func (s *MatchService) Match(ctx context.Context, req MatchRequest) (*MatchResponse, error) {
	if err := ValidateOptions(req.Options); err != nil {
		return nil, err
	}
	start := time.Now()

	valid, rejected := splitIngredients(req.Ingredients)
	opts := s.Options(req.Options)

	optsKey, err := common.ToJSON(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}
	key := cache.Key("match", strings.Join(valid, "\n"), optsKey)

	var resp MatchResponse
	if s.getFromCache(ctx, key, &resp) {
		resp.RejectedIngredients = rejected
		resp.Cached = true
		return &resp, nil
	}

	results := s.matcher.Match(valid, s.catalog.All(), opts)
	resp = MatchResponse{
		Ingredients:         valid,
		RejectedIngredients: rejected,
		Options:             opts,
		Results:             results,
		Total:               len(results),
	}
	s.setToCache(ctx, key, resp)

	common.LogInfo("食譜比對完成",
		zap.Int("ingredients", len(valid)),
		zap.Int("rejected", len(rejected)),
		zap.Int("results", len(results)),
		zap.String("sort_by", string(opts.SortBy)),
		zap.Duration("duration", time.Since(start)),
	)
	return &resp, nil
}

// MatchText 先解析自由文字再比對；解析不出食材時回傳 ErrNoIngredients
func (s *MatchService) MatchText(ctx context.Context, text string, opts *MatchOptions) (*MatchResponse, error) {
	parsed := ingredient.Parse(text)
	if len(parsed) == 0 {
		return nil, ErrNoIngredients
	}
	return s.Match(ctx, MatchRequest{Ingredients: parsed, Options: opts})
}

// Analyze 推估最值得採購的食材
func (s *MatchService) Analyze(ctx context.Context, ingredients []string) (*AnalysisResponse, error) {
	valid, _ := splitIngredients(ingredients)
	if len(valid) == 0 {
		return nil, ErrNoIngredients
	}

	key := cache.Key("analysis", strings.Join(valid, "\n"))
	var resp AnalysisResponse
	if s.getFromCache(ctx, key, &resp) {
		return &resp, nil
	}

	resp = AnalysisResponse{
		Ingredients: valid,
		Analysis:    s.matcher.Analyze(valid, s.catalog.All()),
	}
	s.setToCache(ctx, key, resp)

	common.LogInfo("採購分析完成",
		zap.Int("ingredients", len(valid)),
		zap.Strings("suggested_purchases", resp.SuggestedPurchases),
		zap.Int("possible_recipes", resp.TotalPossibleRecipes),
	)
	return &resp, nil
}
