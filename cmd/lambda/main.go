//go:build lambda

package main

import (
	"os"

	"recipe-matcher/internal/api"
	"recipe-matcher/internal/api/function"
	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}
	// Lambda 只寫入 stdout，不建立檔案日誌
	if err := common.InitLoggerWithDir(cfg.LogLevel, ""); err != nil {
		os.Exit(1)
	}
	defer common.Sync()

	svc, err := api.NewServices(cfg, nil)
	if err != nil {
		common.LogFatal("Failed to initialize services", zap.Error(err))
	}

	lambda.Start(function.NewHandler(svc.Match, cfg.App.Debug).Handle)
}
