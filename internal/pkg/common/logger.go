package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "recipe-matcher"

var (
	// Logger 全局日誌實例，初始化前為 no-op，測試與函式庫呼叫皆安全
	Logger  = zap.NewNop()
	LogMode string

	// 定義日誌級別的顏色
	levelColors = map[zapcore.Level]string{
		zapcore.DebugLevel: "\033[36m", // 青色
		zapcore.InfoLevel:  "\033[32m", // 綠色
		zapcore.WarnLevel:  "\033[33m", // 黃色
		zapcore.ErrorLevel: "\033[31m", // 紅色
		zapcore.FatalLevel: "\033[35m", // 紫色
	}
	resetColor = "\033[0m"

	// conciseMessages concise 模式下仍輸出的訊息
	conciseMessages = map[string]bool{
		"請求完成":                    true,
		"啟動應用":                    true,
		"Server exited":           true,
		"Shutting down server...": true,
	}
)

// 自定義編碼器配置
func getEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// 自定義時間格式
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05.000"))
}

// 自定義級別編碼器（添加顏色）
func customLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	level := l.String()
	switch l {
	case zapcore.DebugLevel:
		level = "DBG"
	case zapcore.InfoLevel:
		level = "INF"
	case zapcore.WarnLevel:
		level = "WRN"
	case zapcore.ErrorLevel:
		level = "ERR"
	case zapcore.FatalLevel:
		level = "FAT"
	}
	enc.AppendString(levelColors[l] + level + resetColor)
}

// ParseLevel 解析日誌級別，無法辨識時為 info
func ParseLevel(logLevel string) zapcore.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// InitLogger 初始化日誌系統：彩色 console 與 JSON 檔案 (logs/app.log)
func InitLogger(logLevel string) error {
	return InitLoggerWithDir(logLevel, "logs")
}

// InitLoggerWithDir 同 InitLogger，可指定日誌目錄；dir 為空時只輸出到 console
func InitLoggerWithDir(logLevel, dir string) error {
	level := ParseLevel(logLevel)

	// 讀取 LOG_MODE（必須在 .env 載入後）
	LogMode = os.Getenv("LOG_MODE")

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(getEncoderConfig()), zapcore.AddSync(os.Stdout), level),
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		logFile, err := os.OpenFile(filepath.Join(dir, "app.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(getEncoderConfig()), zapcore.AddSync(logFile), level))
	}

	Logger = zap.New(zapcore.NewTee(cores...),
		zap.AddCallerSkip(1),
		zap.Fields(zap.String("service", serviceName)),
	)
	zap.ReplaceGlobals(Logger)
	return nil
}

// SetLogger 替換全局 logger（測試用）
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Logger = l
}

// filterFields 過濾掉包含圖片數據的字段
func filterFields(fields []zap.Field) []zap.Field {
	filtered := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if field.Key == "image" || strings.Contains(field.Key, "image_data") || strings.Contains(field.Key, "base64") {
			continue
		}
		filtered = append(filtered, field)
	}
	return filtered
}

// LogInfo 記錄信息日誌
func LogInfo(msg string, fields ...zap.Field) {
	if LogMode == "concise" && !conciseMessages[msg] {
		return
	}
	Logger.Info(msg, filterFields(fields)...)
}

// LogError 記錄錯誤日誌
func LogError(msg string, fields ...zap.Field) {
	Logger.Error(msg, filterFields(fields)...)
}

// LogWarn 記錄警告日誌
func LogWarn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, filterFields(fields)...)
}

// LogDebug 記錄調試日誌
func LogDebug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, filterFields(fields)...)
}

// LogFatal 記錄致命錯誤日誌
func LogFatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}

// Sync 同步日誌緩衝
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// LogCacheHit 記錄快取命中
func LogCacheHit(cacheType string) {
	LogDebug("快取命中", zap.String("類型", cacheType))
}

// LogCacheMiss 記錄快取未命中
func LogCacheMiss(cacheType string) {
	LogDebug("快取未命中", zap.String("類型", cacheType))
}

// LogRecognition 記錄影像辨識結果
func LogRecognition(provider string, duration time.Duration, count int, err error, requestID string) {
	if err != nil {
		LogError("影像辨識失敗",
			zap.String("provider", provider),
			zap.Error(err),
			zap.Duration("耗時", duration),
			zap.String("request_id", requestID),
		)
		return
	}
	LogInfo("影像辨識完成",
		zap.String("provider", provider),
		zap.Int("ingredients_count", count),
		zap.Duration("耗時", duration),
		zap.String("request_id", requestID),
	)
}
