package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/spacesedan/emotion-reflection/config"
	"github.com/spacesedan/emotion-reflection/internal/clients"
	"github.com/spacesedan/emotion-reflection/internal/logging"
	"github.com/spacesedan/emotion-reflection/internal/monitoring"
	"github.com/spacesedan/emotion-reflection/internal/reflection"
	"github.com/spacesedan/emotion-reflection/internal/terminal"
)

func main() {
	config.LoadEnv(config.AppEnv())
	// stdout belongs to the page
	logging.InitLoggerTo(os.Stderr, config.LogLevel())

	cfg, err := config.GetClientConfig()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := clients.NewEmotionClient(cfg)

	var healthy atomic.Bool
	healthy.Store(true)
	go monitoring.MonitorEmotionAPIHealth(ctx, client, cfg.HealthInterval, &healthy)

	page := terminal.NewPage(os.Stdout, terminal.WithSpinner(), terminal.WithHealth(&healthy))
	controller := reflection.NewController(client, reflection.WithObserver(page.Observe))

	page.Welcome()
	run(ctx, os.Stdin, client, controller, page)
}

func run(ctx context.Context, in io.Reader, client *clients.EmotionClient, controller *reflection.Controller, page *terminal.Page) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			controller.Reset()
			return

		case line, ok := <-lines:
			if !ok {
				return
			}

			switch strings.TrimSpace(line) {
			case ":quit", ":q":
				controller.Reset()
				return
			case ":reset":
				controller.Reset()
			case ":emotions":
				emotions, err := client.Emotions(ctx)
				if err != nil {
					slog.Error("[Main] Failed to list emotions", slog.String("error", err.Error()))
					page.Notice("Could not load the emotion list.")
					continue
				}
				page.Emotions(emotions)
			default:
				// validation failures are rendered by the observer
				if _, err := controller.Submit(ctx, line); errors.Is(err, reflection.ErrSubmissionInFlight) {
					page.Busy()
				}
			}
		}
	}
}
