package recipe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-matcher/internal/core/ingredient"
	"recipe-matcher/internal/core/recognition"
	"recipe-matcher/internal/core/substitution"
	"recipe-matcher/internal/pkg/common"

	"go.uber.org/zap"
)

// IngredientService 食材解析、驗證、替代與影像辨識服務
type IngredientService struct {
	graph      *substitution.Graph
	recognizer recognition.Recognizer
	images     *recognition.ImageProcessor
	matches    *MatchService
}

// NewIngredientService 創建食材服務；recognizer 為 nil 時使用模擬辨識
func NewIngredientService(graph *substitution.Graph, recognizer recognition.Recognizer, images *recognition.ImageProcessor, matches *MatchService) *IngredientService {
	if graph == nil {
		graph = substitution.Default()
	}
	if recognizer == nil {
		recognizer = recognition.NewMockRecognizer(0)
	}
	if images == nil {
		images = recognition.NewImageProcessor(0)
	}
	return &IngredientService{
		graph:      graph,
		recognizer: recognizer,
		images:     images,
		matches:    matches,
	}
}

// Parse 解析自由文字；details 為真時附上分類資訊
func (s *IngredientService) Parse(ctx context.Context, text string, details bool) *ParseResponse {
	resp := &ParseResponse{}
	if details {
		resp.Details = ingredient.ParseWithDetails(text)
		resp.Ingredients = make([]string, len(resp.Details))
		for i, d := range resp.Details {
			resp.Ingredients[i] = d.Name
		}
	} else {
		resp.Ingredients = ingredient.Parse(text)
	}
	resp.Count = len(resp.Ingredients)

	common.LogDebug("食材解析完成", zap.Int("lines", strings.Count(text, "\n")+1), zap.Int("count", resp.Count))
	return resp
}

// Validate 將清單分為有效與無效兩組，有效者已正規化
func (s *IngredientService) Validate(list []string) *ValidateResponse {
	resp := &ValidateResponse{Valid: []string{}, Invalid: []string{}}
	for _, raw := range list {
		if ingredient.Validate(strings.TrimSpace(raw)) {
			resp.Valid = append(resp.Valid, ingredient.Normalize(raw))
		} else {
			resp.Invalid = append(resp.Invalid, raw)
		}
	}
	return resp
}

// Substitutes 查詢替代建議與反向可替代項目
func (s *IngredientService) Substitutes(name string) (*SubstitutesResponse, error) {
	name = ingredient.Normalize(name)
	if name == "" {
		return nil, common.NewValidationError("ingredient name is required")
	}
	return &SubstitutesResponse{
		Suggestions: s.graph.Suggest(name),
		Possible:    s.graph.PossibleSubstitutes(name),
	}, nil
}

// BulkSubstitutes 批次查詢直接替代，重複或空白的名稱會被略過
func (s *IngredientService) BulkSubstitutes(names []string) (*BulkSubstitutesResponse, error) {
	seen := make(map[string]struct{}, len(names))
	var list []string
	for _, n := range names {
		n = ingredient.Normalize(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		list = append(list, n)
	}
	if len(list) == 0 {
		return nil, common.NewValidationError("at least one ingredient is required")
	}

	resp := &BulkSubstitutesResponse{Substitutions: s.graph.Bulk(list), Unknown: []string{}}
	for _, n := range list {
		if len(resp.Substitutions[n]) == 0 {
			resp.Unknown = append(resp.Unknown, n)
		}
	}
	return resp, nil
}

// Substitutable 依表格順序列出有替代選項的原料
func (s *IngredientService) Substitutable() *SubstitutableResponse {
	originals := s.graph.Originals()
	return &SubstitutableResponse{Ingredients: originals, Total: len(originals)}
}

// Recognize 辨識圖片中的食材，match 為真時接著比對食譜
func (s *IngredientService) Recognize(ctx context.Context, image string, match bool, opts *MatchOptions) (*RecognizeResponse, error) {
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}

	img, err := s.images.Process(image)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	detection, err := s.recognizer.Detect(ctx, img.Base64)
	if err != nil {
		return nil, fmt.Errorf("recognition failed: %w", err)
	}
	common.LogInfo("影像辨識完成",
		zap.String("provider", s.recognizer.Name()),
		zap.String("format", img.Format),
		zap.Int("size", img.Size),
		zap.Strings("ingredients", detection.Ingredients),
		zap.Int("confidence", detection.Confidence),
		zap.Bool("mock", detection.Mock),
		zap.Duration("duration", time.Since(start)),
	)

	resp := &RecognizeResponse{Detection: *detection, Provider: s.recognizer.Name()}
	if match && s.matches != nil {
		m, err := s.matches.Match(ctx, MatchRequest{Ingredients: detection.Ingredients, Options: opts})
		if err != nil {
			return nil, err
		}
		resp.Match = m
	}
	return resp, nil
}
