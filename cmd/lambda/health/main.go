// Health Check Lambda entry point
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"nevernoshow/internal/app"
	"nevernoshow/internal/config"
	"nevernoshow/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize logger
	_ = utils.InitLogger(cfg.LogLevel)
	defer utils.Sync()

	services, err := app.New(context.Background(), cfg, utils.GetLogger())
	if err != nil {
		utils.GetLogger().Fatal("Failed to create handler", zap.Error(err))
	}
	defer services.Close()

	// Start Lambda
	lambda.Start(services.API.HealthLambda())
}
