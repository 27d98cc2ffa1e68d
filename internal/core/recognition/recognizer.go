// Package recognition 從食材照片辨識食材名稱
package recognition

import (
	"context"

	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"go.uber.org/zap"
)

// 辨識來源
const (
	ProviderMock     = "mock"
	ProviderClarifai = "clarifai"
	ProviderAuto     = "auto"
)

// 後備提示
const (
	NoticeNoIngredients  = "No ingredients detected. Using sample data."
	NoticeAPIUnavailable = "API unavailable. Using demo mode."
)

// Detection 辨識結果，Confidence 為 0 到 100 的百分比
type Detection struct {
	Ingredients []string `json:"ingredients"`
	Confidence  int      `json:"confidence"`
	Mock        bool     `json:"mock"`
	Notice      string   `json:"notice,omitempty"`
}

// Recognizer 影像辨識
type Recognizer interface {
	Detect(ctx context.Context, imageBase64 string) (*Detection, error)
	Name() string
}

// NewRecognizer 依設定選擇辨識器；auto 在設定 PAT 時使用 Clarifai
func NewRecognizer(cfg config.RecognitionConfig) Recognizer {
	useClarifai := false
	switch cfg.Provider {
	case ProviderClarifai:
		useClarifai = true
	case ProviderMock:
	default:
		useClarifai = cfg.PAT != ""
	}

	if useClarifai {
		common.LogInfo("影像辨識使用 Clarifai",
			zap.String("model", cfg.ModelID),
			zap.String("version", cfg.ModelVersion),
			zap.String("pat", config.MaskAPIKey(cfg.PAT)),
		)
		return NewClarifaiRecognizer(cfg, NewMockRecognizer(0))
	}

	common.LogInfo("影像辨識使用模擬資料")
	return NewMockRecognizer(0)
}
