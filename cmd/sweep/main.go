package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"artdesk/internal/config"
	"artdesk/internal/media"
)

// One-shot retention sweep, for cron or manual runs.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	store, err := media.NewStore(cfg.DataDir)
	if err != nil {
		logger.Fatal("media store init failed", zap.Error(err))
	}

	removed := media.NewSweeper(store, cfg.RetentionWindow, logger).RunOnce()
	logger.Info("sweep completed", zap.Int("removed", removed))
}
