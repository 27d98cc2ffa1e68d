package recognition

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	_ "image/gif"  // 支援 GIF
	_ "image/jpeg" // 支援 JPEG
	_ "image/png"  // 支援 PNG

	_ "golang.org/x/image/webp" // 支援 WebP
)

var (
	// ErrInvalidImage 圖片格式無法辨識
	ErrInvalidImage = errors.New("invalid image data")
	// ErrImageTooLarge 圖片超出大小限制
	ErrImageTooLarge = errors.New("image too large")
)

// Image 已驗證的圖片
type Image struct {
	Base64 string
	Format string
	Width  int
	Height int
	Size   int
}

// ImageProcessor 圖片處理器
type ImageProcessor struct {
	maxSizeBytes int64
}

// NewImageProcessor 創建圖片處理器
func NewImageProcessor(maxSizeBytes int64) *ImageProcessor {
	return &ImageProcessor{maxSizeBytes: maxSizeBytes}
}

// Process 接受 data URI 或純 base64，檢查大小並讀取圖片標頭確認格式
func (p *ImageProcessor) Process(imageData string) (*Image, error) {
	imageData = strings.TrimSpace(imageData)
	if imageData == "" {
		return nil, fmt.Errorf("%w: image data is empty", ErrInvalidImage)
	}

	payload := imageData
	if strings.HasPrefix(imageData, "data:image/") {
		parts := strings.SplitN(imageData, ",", 2)
		if len(parts) != 2 || !strings.HasSuffix(parts[0], ";base64") {
			return nil, fmt.Errorf("%w: invalid data URI", ErrInvalidImage)
		}
		payload = parts[1]
	} else if strings.HasPrefix(imageData, "data:") {
		return nil, fmt.Errorf("%w: not an image data URI", ErrInvalidImage)
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64 data: %v", ErrInvalidImage, err)
	}

	if p.maxSizeBytes > 0 && int64(len(decoded)) > p.maxSizeBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrImageTooLarge, len(decoded), p.maxSizeBytes)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %v", ErrInvalidImage, err)
	}

	return &Image{
		Base64: payload,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Size:   len(decoded),
	}, nil
}
