package recipe

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"math"
	"testing"
	"time"

	"recipe-matcher/internal/core/cache"
	"recipe-matcher/internal/core/catalog"
	"recipe-matcher/internal/core/matcher"
	"recipe-matcher/internal/core/nutrition"
	"recipe-matcher/internal/core/recognition"
	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	mk := func(id int, name, difficulty string, cook int, diet []string, ings ...string) catalog.Recipe {
		return catalog.Recipe{
			ID:          id,
			Name:        name,
			Ingredients: ings,
			CookingTime: cook,
			Difficulty:  difficulty,
			Servings:    2,
			Dietary:     diet,
			Cuisine:     "test",
			Nutrition:   nutrition.Facts{Calories: 200, Protein: 10, Carbs: 30, Fat: 5},
		}
	}
	cat, err := catalog.New([]catalog.Recipe{
		mk(1, "Rice Bowl", "easy", 10, nil, "rice", "egg", "soy sauce"),
		mk(2, "Chicken Salad", "easy", 5, nil, "chicken", "lettuce", "tomato"),
		mk(3, "Tofu Stir Fry", "medium", 20, []string{"vegan"}, "tofu", "broccoli", "rice"),
	})
	require.NoError(t, err)
	return cat
}

func newMatchService(t *testing.T, store cache.Store) *MatchService {
	t.Helper()
	return NewMatchService(NewService(store), testCatalog(t), matcher.New(nil), config.MatcherConfig{Threshold: 0.3, MaxResults: 20})
}

func memoryStore(t *testing.T) cache.Store {
	t.Helper()
	m, err := cache.NewManager(config.CacheConfig{Enabled: true, MaxSize: 100, TTL: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestMatchServiceMatch(t *testing.T) {
	s := newMatchService(t, nil)

	resp, err := s.Match(context.Background(), MatchRequest{
		Ingredients: []string{" Rice ", "egg", "soy sauce", "123", "", "rice"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"rice", "egg", "soy sauce"}, resp.Ingredients)
	assert.Equal(t, []string{"123"}, resp.RejectedIngredients)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, 1, resp.Results[0].ID)
	assert.Equal(t, 100, resp.Results[0].MatchPercentage)
	assert.Equal(t, len(resp.Results), resp.Total)
	assert.False(t, resp.Cached)
}

func TestMatchServiceEmptyInput(t *testing.T) {
	s := newMatchService(t, nil)

	resp, err := s.Match(context.Background(), MatchRequest{Ingredients: []string{"  "}})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.Total)
}

func TestMatchServiceUsesCache(t *testing.T) {
	store := memoryStore(t)
	s := newMatchService(t, store)
	ctx := context.Background()
	req := MatchRequest{Ingredients: []string{"rice", "egg"}}

	first, err := s.Match(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := s.Match(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Total, second.Total)
	require.Len(t, second.Results, len(first.Results))
	for i := range first.Results {
		assert.Equal(t, first.Results[i].ID, second.Results[i].ID)
		assert.Equal(t, first.Results[i].MatchPercentage, second.Results[i].MatchPercentage)
	}

	st := s.CacheStats()
	require.NotNil(t, st)
	assert.Equal(t, int64(1), st.Hits)
}

func TestMatchServiceOptions(t *testing.T) {
	s := newMatchService(t, nil)

	opts := s.Options(nil)
	assert.Equal(t, 0.3, opts.Threshold)
	assert.True(t, opts.IncludeSubstitutions)
	assert.Equal(t, matcher.SortByMatchScore, opts.SortBy)

	opts = s.Options(&MatchOptions{
		Threshold:            floatPtr(0),
		IncludeSubstitutions: boolPtr(false),
		MaxResults:           intPtr(1),
		SortBy:               "cookingTime",
		DietaryRestrictions:  []string{" Vegan "},
		DifficultyLevels:     []string{"MEDIUM"},
	})
	assert.Equal(t, 0.0, opts.Threshold)
	assert.False(t, opts.IncludeSubstitutions)
	assert.Equal(t, 1, opts.MaxResults)
	assert.Equal(t, matcher.SortByCookingTime, opts.SortBy)
	assert.Equal(t, []string{"vegan"}, opts.DietaryRestrictions)
	assert.Equal(t, []string{"medium"}, opts.DifficultyLevels)

	assert.Equal(t, matcher.SortByMatchScore, s.Options(&MatchOptions{SortBy: "popularity"}).SortBy)
}

func TestMatchServiceFilters(t *testing.T) {
	s := newMatchService(t, nil)

	resp, err := s.Match(context.Background(), MatchRequest{
		Ingredients: []string{"rice", "tofu", "broccoli", "egg"},
		Options:     &MatchOptions{Threshold: floatPtr(0), DietaryRestrictions: []string{"vegan"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 3, resp.Results[0].ID)
}

func TestValidateOptions(t *testing.T) {
	s := newMatchService(t, nil)
	ctx := context.Background()

	tests := []*MatchOptions{
		{Threshold: floatPtr(1.5)},
		{Threshold: floatPtr(-0.1)},
		{MaxResults: intPtr(-1)},
		{MaxResults: intPtr(0)},
		{MaxCookingTime: -5},
	}
	for _, opts := range tests {
		_, err := s.Match(ctx, MatchRequest{Ingredients: []string{"rice"}, Options: opts})
		assert.True(t, common.IsValidationError(err))
	}
	assert.NoError(t, ValidateOptions(nil))
}

func TestMatchText(t *testing.T) {
	s := newMatchService(t, nil)
	ctx := context.Background()

	_, err := s.MatchText(ctx, "", nil)
	assert.ErrorIs(t, err, ErrNoIngredients)

	_, err = s.MatchText(ctx, "- bullet only\n1.", nil)
	assert.ErrorIs(t, err, ErrNoIngredients)

	resp, err := s.MatchText(ctx, "2 cups rice\n1 large egg, beaten\n2 tbsp soy sauce", nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"rice", "egg", "soy sauce"}, resp.Ingredients)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, 1, resp.Results[0].ID)
}

func TestAnalyze(t *testing.T) {
	s := newMatchService(t, memoryStore(t))
	ctx := context.Background()

	_, err := s.Analyze(ctx, []string{"", "42"})
	assert.ErrorIs(t, err, ErrNoIngredients)

	resp, err := s.Analyze(ctx, []string{"rice", "egg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rice", "egg"}, resp.Ingredients)
	assert.Contains(t, resp.SuggestedPurchases, "soy sauce")
	assert.Positive(t, resp.TotalPossibleRecipes)

	again, err := s.Analyze(ctx, []string{"rice", "egg"})
	require.NoError(t, err)
	assert.Equal(t, resp.SuggestedPurchases, again.SuggestedPurchases)
}

func newIngredientService(t *testing.T) *IngredientService {
	t.Helper()
	return NewIngredientService(nil, recognition.NewMockRecognizer(3), recognition.NewImageProcessor(1<<20), newMatchService(t, nil))
}

func TestIngredientServiceParse(t *testing.T) {
	s := newIngredientService(t)
	ctx := context.Background()

	plain := s.Parse(ctx, "2 cups flour\n1 large onion, chopped", false)
	assert.Equal(t, []string{"flour", "onion"}, plain.Ingredients)
	assert.Nil(t, plain.Details)
	assert.Equal(t, 2, plain.Count)

	detailed := s.Parse(ctx, "2 cups flour\n1 large onion, chopped", true)
	assert.Equal(t, plain.Ingredients, detailed.Ingredients)
	require.Len(t, detailed.Details, 2)
	assert.Equal(t, "grains", detailed.Details[0].Category)

	empty := s.Parse(ctx, "", false)
	assert.Empty(t, empty.Ingredients)
	assert.Equal(t, 0, empty.Count)
}

func TestIngredientServiceValidate(t *testing.T) {
	s := newIngredientService(t)
	resp := s.Validate([]string{"Tomato", "x", "and", "  Red Onion "})
	assert.Equal(t, []string{"tomato", "red onion"}, resp.Valid)
	assert.Equal(t, []string{"x", "and"}, resp.Invalid)
}

func TestIngredientServiceSubstitutes(t *testing.T) {
	s := newIngredientService(t)

	resp, err := s.Substitutes("  Butter ")
	require.NoError(t, err)
	assert.Equal(t, "butter", resp.Ingredient)
	assert.NotEmpty(t, resp.Substitutions)

	tofu, err := s.Substitutes("tofu")
	require.NoError(t, err)
	assert.Contains(t, tofu.Possible, "chicken")

	_, err = s.Substitutes("   ")
	assert.True(t, common.IsValidationError(err))
}

func TestIngredientServiceRecognize(t *testing.T) {
	s := newIngredientService(t)
	ctx := context.Background()

	resp, err := s.Recognize(ctx, pngDataURI(t), false, nil)
	require.NoError(t, err)
	assert.Equal(t, recognition.ProviderMock, resp.Provider)
	assert.True(t, resp.Mock)
	assert.NotEmpty(t, resp.Ingredients)
	assert.Nil(t, resp.Match)

	resp, err = s.Recognize(ctx, pngDataURI(t), true, &MatchOptions{Threshold: floatPtr(0)})
	require.NoError(t, err)
	require.NotNil(t, resp.Match)
	assert.Equal(t, 3, resp.Match.Total)

	_, err = s.Recognize(ctx, "not an image", false, nil)
	assert.ErrorIs(t, err, recognition.ErrInvalidImage)
}

func TestCatalogService(t *testing.T) {
	s := NewCatalogService(testCatalog(t))
	ctx := context.Background()

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 3, s.List(ctx, catalog.Filter{}).Total)
	assert.Equal(t, 1, s.List(ctx, catalog.Filter{Diet: "vegan"}).Total)

	r, err := s.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Chicken Salad", r.Name)

	_, err = s.Get(ctx, 99)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	n, err := s.Nutrition(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, n.Servings)
	assert.Equal(t, 200.0, n.PerServing.Values.Calories)
	assert.Equal(t, 400.0, n.Total.Calories)

	n, err = s.Nutrition(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 600.0, n.Total.Calories)

	_, err = s.Nutrition(ctx, 42, 1)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCatalogServiceRejectsNonFiniteServings(t *testing.T) {
	s := NewCatalogService(testCatalog(t))
	ctx := context.Background()

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := s.Nutrition(ctx, 1, v)
		assert.True(t, common.IsValidationError(err), "servings %v", v)
	}
}

func TestCatalogServiceNutritionKilojoules(t *testing.T) {
	s := NewCatalogService(testCatalog(t))

	n, err := s.Nutrition(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 836.8, n.PerServingKJ, 1e-9)
	assert.InDelta(t, 1673.6, n.TotalKJ, 1e-9)
}

func TestCatalogServiceCompareNutrition(t *testing.T) {
	s := NewCatalogService(testCatalog(t))
	ctx := context.Background()

	resp, err := s.CompareNutrition(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "Rice Bowl", resp.From.Name)
	assert.Equal(t, "Tofu Stir Fry", resp.To.Name)
	require.Contains(t, resp.Comparison, "calories")
	assert.Equal(t, 0.0, resp.Comparison["calories"].Difference)

	_, err = s.CompareNutrition(ctx, 1, 99)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCatalogServiceIngredients(t *testing.T) {
	resp := NewCatalogService(testCatalog(t)).Ingredients(context.Background())
	assert.Equal(t, len(resp.Ingredients), resp.Total)
	assert.Contains(t, resp.Ingredients, "soy sauce")
	assert.IsIncreasing(t, resp.Ingredients)
	assert.Contains(t, resp.Categories, "proteins")
}

func TestCatalogServiceMinimalMissing(t *testing.T) {
	s := NewCatalogService(testCatalog(t))
	ctx := context.Background()

	resp, err := s.MinimalMissing(ctx, []string{" Rice", "egg", ""}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"rice", "egg"}, resp.Available)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.Recipes[0].ID)
	assert.Equal(t, []string{"soy sauce"}, resp.Recipes[0].Missing)

	_, err = s.MinimalMissing(ctx, []string{" "}, 1)
	assert.ErrorIs(t, err, ErrNoIngredients)

	_, err = s.MinimalMissing(ctx, []string{"rice"}, -1)
	assert.True(t, common.IsValidationError(err))
}

func TestCatalogServiceRandom(t *testing.T) {
	s := NewCatalogServiceWithSeed(testCatalog(t), 42)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		r, err := s.Random(ctx)
		require.NoError(t, err)
		assert.Contains(t, []int{1, 2, 3}, r.ID)
	}

	a, err := NewCatalogServiceWithSeed(testCatalog(t), 7).Random(ctx)
	require.NoError(t, err)
	b, err := NewCatalogServiceWithSeed(testCatalog(t), 7).Random(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
}

func TestIngredientServiceBulkSubstitutes(t *testing.T) {
	s := newIngredientService(t)

	resp, err := s.BulkSubstitutes([]string{"Butter", "saffron", "butter", " "})
	require.NoError(t, err)
	assert.Len(t, resp.Substitutions, 2)
	assert.Contains(t, resp.Substitutions["butter"], "margarine")
	assert.Empty(t, resp.Substitutions["saffron"])
	assert.Equal(t, []string{"saffron"}, resp.Unknown)

	_, err = s.BulkSubstitutes([]string{"", "  "})
	assert.True(t, common.IsValidationError(err))
}

func TestIngredientServiceSubstitutable(t *testing.T) {
	resp := newIngredientService(t).Substitutable()
	require.NotEmpty(t, resp.Ingredients)
	assert.Equal(t, "chicken", resp.Ingredients[0])
	assert.Equal(t, len(resp.Ingredients), resp.Total)
}
