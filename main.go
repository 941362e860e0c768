// @title AI Study Buddy API
// @version 1.0
// @description Backend for the AI Study Buddy learning assistant.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/app"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/config"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/configwatcher"
	"github.com/priya-tenac/Ai-Study-Buddy/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Config file reloaded",
			zap.String("mode", newCfg.Server.Mode),
			zap.Int("rate_limit", newCfg.RateLimit.MaxRequests))
	})

	application.Run()
}
