package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Matcher     MatcherConfig     `mapstructure:"matcher"`
	Cache       CacheConfig       `mapstructure:"cache"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Image       ImageConfig       `mapstructure:"image"`
	Recognition RecognitionConfig `mapstructure:"recognition"`
	DedupWindow time.Duration     `mapstructure:"dedup_window"`
	LogLevel    string            `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// CatalogConfig 食譜目錄設定，Path 為空時使用內建目錄
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// MatcherConfig 比對預設值
type MatcherConfig struct {
	Threshold  float64 `mapstructure:"threshold"`
	MaxResults int     `mapstructure:"max_results"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupSchedule string        `mapstructure:"cleanup_schedule"`
	Redis           RedisConfig   `mapstructure:"redis"`
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// ImageConfig 圖片配置
type ImageConfig struct {
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
}

// RecognitionConfig 影像辨識設定，未設定 PAT 時使用模擬辨識
type RecognitionConfig struct {
	Provider      string        `mapstructure:"provider"`
	BaseURL       string        `mapstructure:"base_url"`
	PAT           string        `mapstructure:"pat"`
	UserID        string        `mapstructure:"user_id"`
	AppID         string        `mapstructure:"app_id"`
	ModelID       string        `mapstructure:"model_id"`
	ModelVersion  string        `mapstructure:"model_version"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MinConfidence float64       `mapstructure:"min_confidence"`
	MaxResults    int           `mapstructure:"max_results"`
}

// 快取後端
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// LoadConfig 載入設定（.env 檔案可省略）
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return Load(viper.New())
}

// Load 從指定的 viper 實例解析設定
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定常用的無前綴環境變量
	bindings := map[string]string{
		"server.port":          "PORT",
		"catalog.path":         "CATALOG_PATH",
		"cache.enabled":        "CACHE_ENABLED",
		"cache.backend":        "CACHE_BACKEND",
		"cache.redis.addr":     "REDIS_ADDR",
		"cache.redis.password": "REDIS_PASSWORD",
		"rate_limit.enabled":   "RATE_LIMIT_ENABLED",
		"rate_limit.requests":  "RATE_LIMIT_REQUESTS",
		"rate_limit.window":    "RATE_LIMIT_WINDOW",
		"recognition.pat":      "CLARIFAI_PAT",
		"dedup_window":         "DEDUP_WINDOW",
		"log_level":            "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "APP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Cache.Backend = strings.ToLower(config.Cache.Backend)
	config.Recognition.Provider = strings.ToLower(config.Recognition.Provider)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	fmt.Println("Loading configuration", "env:", config.App.Env,
		"cache_backend:", config.Cache.Backend,
		"recognition:", config.Recognition.Provider,
		"clarifai_pat:", MaskAPIKey(config.Recognition.PAT))

	return &config, nil
}

// MaskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "recipe-matcher")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.max_body_bytes", 10<<20)

	// 目錄與比對
	v.SetDefault("catalog.path", "")
	v.SetDefault("matcher.threshold", 0.3)
	v.SetDefault("matcher.max_results", 20)

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.cleanup_schedule", "@every 10m")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.key_prefix", "recipe-matcher:")

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	// 圖片設定
	v.SetDefault("image.max_size_bytes", 5*1024*1024)

	// 影像辨識設定
	v.SetDefault("recognition.provider", "auto")
	v.SetDefault("recognition.base_url", "https://api.clarifai.com")
	v.SetDefault("recognition.pat", "")
	v.SetDefault("recognition.user_id", "clarifai")
	v.SetDefault("recognition.app_id", "main")
	v.SetDefault("recognition.model_id", "food-item-recognition")
	v.SetDefault("recognition.model_version", "1d5fd481e0cf4826aa72ec3ff049e044")
	v.SetDefault("recognition.timeout", "15s")
	v.SetDefault("recognition.min_confidence", 0.7)
	v.SetDefault("recognition.max_results", 12)

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}
	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body bytes")
	}

	if config.Matcher.Threshold < 0 || config.Matcher.Threshold > 1 {
		return fmt.Errorf("matcher threshold must be within 0-1")
	}
	if config.Matcher.MaxResults <= 0 {
		return fmt.Errorf("invalid matcher max results")
	}

	if config.Cache.Enabled {
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		switch config.Cache.Backend {
		case CacheBackendMemory:
			if config.Cache.MaxSize <= 0 {
				return fmt.Errorf("invalid cache max size")
			}
			if _, err := cron.ParseStandard(config.Cache.CleanupSchedule); err != nil {
				return fmt.Errorf("invalid cache cleanup schedule: %w", err)
			}
		case CacheBackendRedis:
			if config.Cache.Redis.Addr == "" {
				return fmt.Errorf("redis addr is required")
			}
		default:
			return fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
		}
	}

	if config.RateLimit.Enabled && (config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit")
	}

	switch config.Recognition.Provider {
	case "auto", "mock":
	case "clarifai":
		if config.Recognition.PAT == "" {
			return fmt.Errorf("clarifai provider requires a PAT")
		}
	default:
		return fmt.Errorf("unknown recognition provider %q", config.Recognition.Provider)
	}
	if config.Recognition.MinConfidence < 0 || config.Recognition.MinConfidence > 1 {
		return fmt.Errorf("recognition min confidence must be within 0-1")
	}

	return nil
}
