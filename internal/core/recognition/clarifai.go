package recognition

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	outputsPath         = "/v2/users/{user_id}/apps/{app_id}/models/{model_id}/versions/{version_id}/outputs"
	fallbackConfidence  = 75
	minConceptNameRunes = 3
	maxConceptNameRunes = 20
)

var conceptName = regexp.MustCompile(`^[a-z\s-]+$`)

// knownFoods 辨識結果需與其中一項互相包含
var knownFoods = []string{
	"tomato", "onion", "garlic", "carrot", "bell pepper", "broccoli", "spinach", "potato",
	"apple", "banana", "orange", "lemon", "avocado", "strawberry",
	"chicken", "beef", "fish", "eggs", "tofu", "paneer", "lentils",
	"rice", "pasta", "bread", "quinoa", "oats",
	"milk", "cheese", "yogurt", "butter",
	"basil", "cilantro", "parsley", "mint", "oregano",
}

// ClarifaiRecognizer 呼叫 Clarifai 食物辨識模型，失敗時改用模擬資料
type ClarifaiRecognizer struct {
	cfg      config.RecognitionConfig
	client   *resty.Client
	fallback *MockRecognizer
}

// NewClarifaiRecognizer 創建 Clarifai 辨識器
func NewClarifaiRecognizer(cfg config.RecognitionConfig, fallback *MockRecognizer) *ClarifaiRecognizer {
	if fallback == nil {
		fallback = NewMockRecognizer(0)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Authorization", fmt.Sprintf("Key %s", cfg.PAT)).
		SetHeader("Content-Type", "application/json")

	return &ClarifaiRecognizer{cfg: cfg, client: client, fallback: fallback}
}

// Name 辨識器名稱
func (c *ClarifaiRecognizer) Name() string { return ProviderClarifai }

// Detect 辨識圖片中的食材；呼叫取消時回傳錯誤，其餘失敗改用模擬資料
func (c *ClarifaiRecognizer) Detect(ctx context.Context, imageBase64 string) (*Detection, error) {
	start := time.Now()

	concepts, err := c.predict(ctx, imageBase64)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		common.LogRecognition(ProviderClarifai, time.Since(start), 0, err, "")
		return &Detection{
			Ingredients: c.fallback.Generate(),
			Confidence:  fallbackConfidence,
			Mock:        true,
			Notice:      NoticeAPIUnavailable,
		}, nil
	}

	ingredients := filterConcepts(concepts, c.cfg.MinConfidence, c.cfg.MaxResults)
	confidence := averageConfidence(concepts)
	common.LogRecognition(ProviderClarifai, time.Since(start), len(ingredients), nil, "")

	if len(ingredients) == 0 {
		return &Detection{
			Ingredients: c.fallback.Generate(),
			Confidence:  confidence,
			Mock:        true,
			Notice:      NoticeNoIngredients,
		}, nil
	}

	return &Detection{Ingredients: ingredients, Confidence: confidence}, nil
}

// concept 模型輸出的單一概念
type concept struct {
	name  string
	value float64
}

func (c *ClarifaiRecognizer) predict(ctx context.Context, imageBase64 string) ([]concept, error) {
	body := map[string]interface{}{
		"inputs": []map[string]interface{}{
			{"data": map[string]interface{}{
				"image": map[string]string{"base64": imageBase64},
			}},
		},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"user_id":    c.cfg.UserID,
			"app_id":     c.cfg.AppID,
			"model_id":   c.cfg.ModelID,
			"version_id": c.cfg.ModelVersion,
		}).
		SetBody(body).
		Post(outputsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Clarifai: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("Clarifai API request failed with status %d", resp.StatusCode())
	}

	result := gjson.GetBytes(resp.Body(), "outputs.0.data.concepts")
	if !result.IsArray() {
		return nil, errors.New("invalid response format from Clarifai")
	}

	var concepts []concept
	result.ForEach(func(_, v gjson.Result) bool {
		concepts = append(concepts, concept{
			name:  strings.ToLower(strings.TrimSpace(v.Get("name").String())),
			value: v.Get("value").Float(),
		})
		return true
	})

	common.LogDebug("Clarifai concepts received", zap.Int("count", len(concepts)))
	return concepts, nil
}

// filterConcepts 保留高信心且為已知食物的概念，依信心遞減
func filterConcepts(concepts []concept, minConfidence float64, limit int) []string {
	kept := make([]concept, 0, len(concepts))
	for _, c := range concepts {
		n := utf8.RuneCountInString(c.name)
		if n < minConceptNameRunes || n > maxConceptNameRunes {
			continue
		}
		if !conceptName.MatchString(c.name) || c.value <= minConfidence {
			continue
		}
		if !isKnownFood(c.name) {
			continue
		}
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].value > kept[j].value })
	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}

	names := make([]string, len(kept))
	for i, c := range kept {
		names[i] = c.name
	}
	return names
}

func isKnownFood(name string) bool {
	for _, food := range knownFoods {
		if strings.Contains(name, food) || strings.Contains(food, name) {
			return true
		}
	}
	return false
}

// averageConfidence 所有概念的平均信心百分比
func averageConfidence(concepts []concept) int {
	if len(concepts) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range concepts {
		sum += c.value
	}
	return int(math.Round(sum / float64(len(concepts)) * 100))
}
