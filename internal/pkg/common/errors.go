package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// WithErr 以相同代碼包裝原始錯誤
func (e *CustomError) WithErr(err error) *CustomError {
	return NewError(e.Code, e.Message, e.Status, err)
}

// ToResponse 轉換為 API 響應；debug 時附上原始錯誤
func (e *CustomError) ToResponse(debug bool) ErrorResponse {
	resp := ErrorResponse{Code: e.Code, Message: e.Message}
	if debug && e.Err != nil {
		resp.Details = e.Err.Error()
	}
	return resp
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest   = "INVALID_REQUEST"    // 400
	ErrCodeNotFound         = "NOT_FOUND"          // 404
	ErrCodeRequestTimeout   = "REQUEST_TIMEOUT"    // 408
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"  // 429
	ErrCodeNoIngredients    = "NO_INGREDIENTS"     // 422
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"  // 429
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"  // 413

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
	ErrCodeGatewayTimeout     = "GATEWAY_TIMEOUT"     // 504
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest   = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound         = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrRequestTimeout   = NewError(ErrCodeRequestTimeout, "請求超時", http.StatusRequestTimeout, nil)
	ErrTooManyRequests  = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)
	ErrDuplicateRequest = NewError(ErrCodeDuplicateRequest, "重複的請求", http.StatusTooManyRequests, nil)
	ErrRequestTooLarge  = NewError(ErrCodeRequestTooLarge, "請求內容過大", http.StatusRequestEntityTooLarge, nil)
	ErrNoIngredients    = NewError(ErrCodeNoIngredients, "no ingredients detected", http.StatusUnprocessableEntity, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "服務暫時不可用", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout     = NewError(ErrCodeGatewayTimeout, "網關超時", http.StatusGatewayTimeout, nil)

	// 業務錯誤
	ErrInvalidImageFormat = NewError("INVALID_IMAGE_FORMAT", "無效的圖片格式", http.StatusBadRequest, nil)
	ErrInvalidImageSize   = NewError("INVALID_IMAGE_SIZE", "圖片大小超出限制", http.StatusBadRequest, nil)
)
