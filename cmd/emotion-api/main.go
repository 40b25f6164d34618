package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/emotion-reflection/config"
	"github.com/spacesedan/emotion-reflection/internal/logging"
	"github.com/spacesedan/emotion-reflection/internal/sentiment"
	"github.com/spacesedan/emotion-reflection/internal/server"
)

func main() {
	config.LoadEnv(config.AppEnv())
	logging.InitLogger(config.LogLevel())

	cfg, err := config.GetServerConfig()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.NewServer(cfg, sentiment.AnalyzeEmotion, sentiment.Emotions())
	if err := s.Run(ctx); err != nil {
		slog.Error("[Main] Emotion API stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
