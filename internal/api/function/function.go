// Package function 以 Lambda Function URL 提供食譜比對
package function

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	recipeService "recipe-matcher/internal/core/recipe"
	"recipe-matcher/internal/pkg/common"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// Request 比對請求；Text 非空時先解析再比對
type Request struct {
	Ingredients []string                    `json:"ingredients"`
	Text        string                      `json:"text"`
	Options     *recipeService.MatchOptions `json:"options"`
}

// Handler Function URL 處理器；debug 為真時錯誤回應附上原始錯誤
type Handler struct {
	match *recipeService.MatchService
	debug bool
}

// NewHandler 創建處理器
func NewHandler(match *recipeService.MatchService, debug bool) *Handler {
	return &Handler{match: match, debug: debug}
}

// Handle 處理單一 Function URL 請求
func (h *Handler) Handle(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	start := time.Now()

	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return h.errResp(common.ErrInvalidRequest.WithErr(errors.New("invalid base64 body")))
		}
		body = string(decoded)
	}

	var req Request
	if err := common.ParseJSONBytesStrict([]byte(body), &req); err != nil {
		return h.errResp(common.ErrInvalidRequest.WithErr(err))
	}

	var (
		resp *recipeService.MatchResponse
		err  error
	)
	switch {
	case strings.TrimSpace(req.Text) != "":
		resp, err = h.match.MatchText(ctx, req.Text, req.Options)
	case len(req.Ingredients) > 0:
		resp, err = h.match.Match(ctx, recipeService.MatchRequest{Ingredients: req.Ingredients, Options: req.Options})
	default:
		return h.errResp(common.ErrInvalidRequest.WithErr(errors.New("missing ingredients or text")))
	}
	if err != nil {
		return h.errResp(toCustomError(err))
	}

	out, err := common.ToJSON(resp)
	if err != nil {
		return h.errResp(common.ErrInternalError.WithErr(err))
	}

	common.LogInfo("Lambda match completed",
		zap.String("request_id", event.RequestContext.RequestID),
		zap.Int("results", resp.Total),
		zap.Duration("duration", time.Since(start)),
	)
	return events.LambdaFunctionURLResponse{StatusCode: http.StatusOK, Headers: jsonHeader, Body: out}, nil
}

func toCustomError(err error) *common.CustomError {
	switch {
	case errors.Is(err, recipeService.ErrNoIngredients):
		return common.ErrNoIngredients.WithErr(err)
	case common.IsValidationError(err):
		return common.ErrInvalidRequest.WithErr(err)
	default:
		return common.ErrInternalError.WithErr(err)
	}
}

func (h *Handler) errResp(e *common.CustomError) (events.LambdaFunctionURLResponse, error) {
	if e.Status >= http.StatusInternalServerError {
		common.LogError("Lambda request failed", zap.Error(e))
	} else {
		common.LogWarn("Lambda request rejected", zap.Error(e), zap.String("code", e.Code))
	}
	body, _ := common.ToJSON(e.ToResponse(h.debug))
	return events.LambdaFunctionURLResponse{StatusCode: e.Status, Headers: jsonHeader, Body: body}, nil
}
