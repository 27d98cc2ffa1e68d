package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-matcher/internal/core/catalog"
)

func TestAnalyze(t *testing.T) {
	m := New(nil)
	all := catalog.Default().All()
	user := []string{
		"carrot", "celery", "onion", "potato", "vegetable broth",
		"tomato", "herbs", "garlic", "olive oil", "bay leaf",
	}

	a := m.Analyze(user, all)

	require.NotEmpty(t, a.BestMatches)
	assert.Equal(t, 7, a.BestMatches[0].ID)
	assert.Equal(t, len(a.BestMatches), a.HighConfidenceMatches)
	assert.LessOrEqual(t, a.HighConfidenceMatches, 3)

	opts := DefaultOptions()
	opts.Threshold = 0.1
	assert.Equal(t, len(m.Match(user, all, opts)), a.TotalPossibleRecipes)

	assert.LessOrEqual(t, len(a.SuggestedPurchases), 5)
	for _, p := range a.SuggestedPurchases {
		assert.NotContains(t, user, p)
	}
}

func TestAnalyzeRanksByFrequency(t *testing.T) {
	m := New(nil)
	rs := []catalog.Recipe{
		recipe(1, "easy", "rice", "salt", "pepper"),
		recipe(2, "easy", "rice", "salt"),
		recipe(3, "easy", "rice", "pepper", "salt"),
	}

	a := m.Analyze([]string{"rice"}, rs)
	assert.Equal(t, []string{"salt", "pepper"}, a.SuggestedPurchases)
	assert.Equal(t, 3, a.TotalPossibleRecipes)
	assert.Empty(t, a.BestMatches)
}

func TestAnalyzeEmpty(t *testing.T) {
	a := New(nil).Analyze(nil, catalog.Default().All())
	assert.Empty(t, a.SuggestedPurchases)
	assert.Empty(t, a.BestMatches)
	assert.Zero(t, a.TotalPossibleRecipes)
}
