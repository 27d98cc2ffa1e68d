package api

import (
	"net/http"
	"time"

	"recipe-matcher/internal/api/handlers/health"
	recipeHandler "recipe-matcher/internal/api/handlers/recipe"
	"recipe-matcher/internal/api/middleware"
	"recipe-matcher/internal/core/cache"
	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 未設定時的請求體大小限制 (10MB)
	defaultMaxBodySize = 10 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	svc, err := NewServices(cfg, store)
	if err != nil {
		common.LogError("Failed to initialize services", zap.Error(err))
		return nil, err
	}
	return NewRouter(cfg, svc), nil
}

// NewRouter 以既有服務建立路由
func NewRouter(cfg *config.Config, svc *Services) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	maxBodySize := cfg.Server.MaxBodyBytes
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxBodySize
	}
	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	router.Use(middleware.Inject(map[string]interface{}{
		"config":             cfg,
		"catalog_service":    svc.Catalog,
		"match_service":      svc.Match,
		"ingredient_service": svc.Ingredient,
		"recognizer":         svc.Recognizer.Name(),
	}))

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	h := recipeHandler.NewHandler(svc.Match, svc.Catalog, svc.Ingredient)

	// API 路由組
	api := router.Group("/api/v1")
	{
		ingredients := api.Group("/ingredients")
		{
			ingredients.POST("/parse", h.HandleParse)
			ingredients.POST("/validate", h.HandleValidate)
			ingredients.POST("/recognize", middleware.Deduplication(cfg.DedupWindow), h.HandleRecognize)
			ingredients.POST("/analysis", h.HandleAnalysis)
			ingredients.GET("/categories", h.HandleCategories)
			ingredients.GET("/substitutes", h.HandleSubstitutable)
			ingredients.POST("/substitutes/bulk", h.HandleBulkSubstitutes)
			ingredients.GET("/:name/substitutes", h.HandleSubstitutes)
		}

		recipes := api.Group("/recipes")
		{
			recipes.GET("", h.HandleList)
			recipes.POST("/match", h.HandleMatch)
			recipes.POST("/match-text", h.HandleMatchText)
			recipes.GET("/random", h.HandleRandom)
			recipes.GET("/minimal-missing", h.HandleMinimalMissing)
			recipes.GET("/:id", h.HandleGet)
			recipes.GET("/:id/nutrition", h.HandleNutrition)
			recipes.GET("/:id/nutrition/compare", h.HandleCompareNutrition)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrNotFound.ToResponse(false))
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", maxBodySize),
		zap.Duration("dedup_window", cfg.DedupWindow),
	)

	return router
}
