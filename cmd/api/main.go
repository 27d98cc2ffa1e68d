package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-matcher/internal/api"
	"recipe-matcher/internal/core/cache"
	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("catalog_path", cfg.Catalog.Path),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.String("recognition_provider", cfg.Recognition.Provider),
		zap.String("clarifai_pat", config.MaskAPIKey(cfg.Recognition.PAT)),
	)

	// 初始化快取
	initCtx, cancelInit := context.WithTimeout(context.Background(), 5*time.Second)
	store, err := cache.NewStore(initCtx, cfg.Cache)
	cancelInit()
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	// 設置路由
	router, err := api.SetupRouter(cfg, store)
	if err != nil {
		common.LogFatal("Failed to setup router", zap.Error(err))
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}
