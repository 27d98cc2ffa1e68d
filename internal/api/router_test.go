package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recipe-matcher/internal/core/cache"
	"recipe-matcher/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testConfig() *config.Config {
	return &config.Config{
		App:         config.AppConfig{Env: "test", Debug: true, Version: "test"},
		Server:      config.ServerConfig{RequestTimeout: 5 * time.Second, MaxBodyBytes: 1 << 20},
		Matcher:     config.MatcherConfig{Threshold: 0.3, MaxResults: 20},
		Image:       config.ImageConfig{MaxSizeBytes: 1 << 20},
		Recognition: config.RecognitionConfig{Provider: "mock"},
		DedupWindow: time.Minute,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, store cache.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := SetupRouter(cfg, store)
	require.NoError(t, err)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 3))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	w := do(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.Bytes()
	assert.Equal(t, "ok", gjson.GetBytes(body, "status").String())
	assert.Equal(t, int64(7), gjson.GetBytes(body, "catalog_size").Int())
	assert.Equal(t, "mock", gjson.GetBytes(body, "recognizer").String())
	assert.False(t, gjson.GetBytes(body, "cache").Exists())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/live", "").Code)
}

func TestHealthReportsCache(t *testing.T) {
	store, err := cache.NewManager(config.CacheConfig{Enabled: true, MaxSize: 10, TTL: time.Minute})
	require.NoError(t, err)
	defer store.Close()

	router := newTestRouter(t, testConfig(), store)
	w := do(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "memory", gjson.GetBytes(w.Body.Bytes(), "cache.backend").String())
}

func TestMatchRoute(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	w := do(router, http.MethodPost, "/api/v1/recipes/match",
		`{"ingredients":["spaghetti","eggs","parmesan cheese","bacon","black pepper","garlic","42"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := w.Body.Bytes()
	assert.Equal(t, int64(1), gjson.GetBytes(body, "results.0.id").Int())
	assert.Equal(t, int64(100), gjson.GetBytes(body, "results.0.match_percentage").Int())
	assert.Equal(t, "Classic Spaghetti Carbonara", gjson.GetBytes(body, "results.0.name").String())
	assert.Equal(t, `["42"]`, gjson.GetBytes(body, "rejected_ingredients").Raw)
	assert.True(t, gjson.GetBytes(body, "results.0.missing_ingredients").IsArray())
}

func TestMatchRouteOptions(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	w := do(router, http.MethodPost, "/api/v1/recipes/match",
		`{"ingredients":["rice","garlic"],"options":{"threshold":0,"dietary_restrictions":["vegan"],"sort_by":"cookingTime"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Results []struct {
			ID          int      `json:"id"`
			CookingTime int      `json:"cooking_time"`
			Dietary     []string `json:"dietary"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Results)
	for i, r := range resp.Results {
		assert.Contains(t, r.Dietary, "vegan")
		if i > 0 {
			assert.LessOrEqual(t, resp.Results[i-1].CookingTime, r.CookingTime)
		}
	}

	w = do(router, http.MethodPost, "/api/v1/recipes/match", `{"ingredients":["rice"],"options":{"threshold":2}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", gjson.GetBytes(w.Body.Bytes(), "code").String())

	w = do(router, http.MethodPost, "/api/v1/recipes/match", `{"ingredients":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchRouteMaxResults(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	w := do(router, http.MethodPost, "/api/v1/recipes/match",
		`{"ingredients":["garlic"],"options":{"max_results":0,"threshold":0}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", gjson.GetBytes(w.Body.Bytes(), "code").String())

	w = do(router, http.MethodPost, "/api/v1/recipes/match",
		`{"ingredients":["garlic"],"options":{"max_results":2,"threshold":0}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(2), gjson.GetBytes(w.Body.Bytes(), "total").Int())
	assert.Len(t, gjson.GetBytes(w.Body.Bytes(), "results").Array(), 2)
}

func TestMatchTextRoute(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	w := do(router, http.MethodPost, "/api/v1/recipes/match-text", `{"text":"- just a bullet\n1."}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "NO_INGREDIENTS", gjson.GetBytes(w.Body.Bytes(), "code").String())

	w = do(router, http.MethodPost, "/api/v1/recipes/match-text",
		`{"text":"200g spaghetti\n2 eggs\n1 cup parmesan cheese\nbacon\nblack pepper\n2 cloves garlic"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(1), gjson.GetBytes(w.Body.Bytes(), "results.0.id").Int())
}

func TestIngredientRoutes(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	w := do(router, http.MethodPost, "/api/v1/ingredients/parse",
		`{"text":"2 cups flour\n1 large onion, chopped\n3 cloves garlic, minced"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `["flour","garlic","onion"]`, gjson.GetBytes(w.Body.Bytes(), "ingredients").Raw)
	assert.False(t, gjson.GetBytes(w.Body.Bytes(), "details").Exists())

	w = do(router, http.MethodPost, "/api/v1/ingredients/parse", `{"text":"1 tomato","details":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "vegetables", gjson.GetBytes(w.Body.Bytes(), "details.0.category").String())

	w = do(router, http.MethodPost, "/api/v1/ingredients/validate", `{"ingredients":["Tomato","x"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `["tomato"]`, gjson.GetBytes(w.Body.Bytes(), "valid").Raw)
	assert.Equal(t, `["x"]`, gjson.GetBytes(w.Body.Bytes(), "invalid").Raw)

	w = do(router, http.MethodGet, "/api/v1/ingredients/butter/substitutes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "butter", gjson.GetBytes(w.Body.Bytes(), "ingredient").String())
	assert.True(t, gjson.GetBytes(w.Body.Bytes(), "substitutions.0.quality").Exists())

	w = do(router, http.MethodPost, "/api/v1/ingredients/analysis", `{"ingredients":["spaghetti","eggs"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gjson.GetBytes(w.Body.Bytes(), "suggested_purchases").IsArray())

	w = do(router, http.MethodPost, "/api/v1/ingredients/analysis", `{"ingredients":[]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRecognizeRoute(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)
	body := `{"image":"` + pngDataURI(t) + `","match":true,"options":{"threshold":0}}`

	w := do(router, http.MethodPost, "/api/v1/ingredients/recognize", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := w.Body.Bytes()
	assert.True(t, gjson.GetBytes(resp, "mock").Bool())
	assert.Equal(t, "mock", gjson.GetBytes(resp, "provider").String())
	assert.NotEmpty(t, gjson.GetBytes(resp, "ingredients").Array())
	assert.Equal(t, int64(7), gjson.GetBytes(resp, "match.total").Int())

	w = do(router, http.MethodPost, "/api/v1/ingredients/recognize", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "DUPLICATE_REQUEST", gjson.GetBytes(w.Body.Bytes(), "code").String())

	w = do(router, http.MethodPost, "/api/v1/ingredients/recognize", `{"image":"data:image/png;base64,aGVsbG8="}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_IMAGE_FORMAT", gjson.GetBytes(w.Body.Bytes(), "code").String())
}

func TestRecipeRoutes(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	w := do(router, http.MethodGet, "/api/v1/recipes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), gjson.GetBytes(w.Body.Bytes(), "total").Int())

	w = do(router, http.MethodGet, "/api/v1/recipes?diet=vegan", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), gjson.GetBytes(w.Body.Bytes(), "total").Int())

	w = do(router, http.MethodGet, "/api/v1/recipes?max_time=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/v1/recipes/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Classic Spaghetti Carbonara", gjson.GetBytes(w.Body.Bytes(), "name").String())

	w = do(router, http.MethodGet, "/api/v1/recipes/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", gjson.GetBytes(w.Body.Bytes(), "code").String())

	w = do(router, http.MethodGet, "/api/v1/recipes/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/v1/recipes/1/nutrition?servings=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 900.0, gjson.GetBytes(w.Body.Bytes(), "total.calories").Float())
	assert.Equal(t, 450.0, gjson.GetBytes(w.Body.Bytes(), "per_serving.values.calories").Float())

	for _, servings := range []string{"-1", "0", "NaN", "Inf", "-Inf", "abc"} {
		w = do(router, http.MethodGet, "/api/v1/recipes/1/nutrition?servings="+servings, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, servings)
		assert.Equal(t, "INVALID_REQUEST", gjson.GetBytes(w.Body.Bytes(), "code").String(), servings)
	}
}

func TestBodySizeLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.MaxBodyBytes = 32
	router := newTestRouter(t, cfg, nil)

	w := do(router, http.MethodPost, "/api/v1/ingredients/parse", `{"text":"`+strings.Repeat("a", 100)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 2, Window: time.Hour}
	router := newTestRouter(t, cfg, nil)

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/live", "").Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/live", "").Code)
	w := do(router, http.MethodGet, "/live", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestNoRoute(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/nope", "").Code)
}

func TestSetupRouterBadCatalog(t *testing.T) {
	cfg := testConfig()
	cfg.Catalog.Path = "testdata/does-not-exist.yaml"
	_, err := SetupRouter(cfg, nil)
	assert.Error(t, err)
}

func TestRecipeDiscoveryRoutes(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	w := do(router, http.MethodGet, "/api/v1/recipes/random", "")
	require.Equal(t, http.StatusOK, w.Code)
	id := gjson.GetBytes(w.Body.Bytes(), "id").Int()
	assert.True(t, id >= 1 && id <= 7, "id %d", id)

	w = do(router, http.MethodGet,
		"/api/v1/recipes/minimal-missing?have=bread,avocado,lemon%20juice&have=salt,pepper,olive%20oil&max=1", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.Bytes()
	assert.Equal(t, int64(1), gjson.GetBytes(body, "max_missing").Int())
	assert.Equal(t, int64(5), gjson.GetBytes(body, "recipes.0.id").Int())
	assert.Equal(t, `["red pepper flakes"]`, gjson.GetBytes(body, "recipes.0.missing_ingredients").Raw)

	w = do(router, http.MethodGet, "/api/v1/recipes/minimal-missing", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(router, http.MethodGet, "/api/v1/recipes/minimal-missing?have=rice&max=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/v1/recipes/1/nutrition/compare?with=2", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(2), gjson.GetBytes(w.Body.Bytes(), "to.id").Int())
	assert.True(t, gjson.GetBytes(w.Body.Bytes(), "comparison.calories.difference").Exists())

	w = do(router, http.MethodGet, "/api/v1/recipes/1/nutrition/compare?with=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/v1/recipes/1/nutrition/compare?with=99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodGet, "/api/v1/recipes/1/nutrition?servings=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 3765.6, gjson.GetBytes(w.Body.Bytes(), "total_kj").Float(), 1e-6)
}

func TestIngredientLookupRoutes(t *testing.T) {
	router := newTestRouter(t, testConfig(), nil)

	w := do(router, http.MethodGet, "/api/v1/ingredients/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.Bytes()
	assert.True(t, gjson.GetBytes(body, "categories.proteins").IsArray())
	assert.Equal(t, gjson.GetBytes(body, "ingredients.#").Int(), gjson.GetBytes(body, "total").Int())

	w = do(router, http.MethodGet, "/api/v1/ingredients/substitutes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "chicken", gjson.GetBytes(w.Body.Bytes(), "ingredients.0").String())

	w = do(router, http.MethodPost, "/api/v1/ingredients/substitutes/bulk", `{"ingredients":["butter","saffron"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "margarine", gjson.GetBytes(w.Body.Bytes(), "substitutions.butter.0").String())
	assert.Equal(t, `["saffron"]`, gjson.GetBytes(w.Body.Bytes(), "unknown").Raw)

	w = do(router, http.MethodPost, "/api/v1/ingredients/substitutes/bulk", `{"ingredients":[" "]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/v1/ingredients/butter/substitutes", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
