package common

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// HashString 計算字符串的 SHA-256 哈希值
func HashString(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}

// NormalizeList 小寫、去空白並移除空字串，保留原順序
func NormalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ImagePrefix 圖片前綴（用於日誌記錄，不輸出內容）
func ImagePrefix(image string) string {
	switch {
	case strings.HasPrefix(image, "data:image/"):
		return "[IMAGE_DATA]"
	case strings.HasPrefix(image, "http"):
		return "[IMAGE_URL]"
	case strings.HasPrefix(image, "/9j/") || strings.HasPrefix(image, "iVBORw0KGgo"):
		return "[BASE64_DATA]"
	default:
		return "[UNKNOWN_FORMAT]"
	}
}
