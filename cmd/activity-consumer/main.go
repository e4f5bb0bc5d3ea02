package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iliyamo/cinetour/internal/config"
	"github.com/iliyamo/cinetour/internal/logging"
	"github.com/iliyamo/cinetour/internal/queue"
)

func main() {
	_ = godotenv.Load()
	logger := logging.Init(logging.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})

	ev := config.LoadEventsConfig()
	c := &queue.Consumer{URL: ev.URL, Queue: ev.Queue, LogDir: ev.LogDir, Logger: logger}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("activity consumer started", "queue", ev.Queue, "log_dir", ev.LogDir)
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("activity consumer stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("activity consumer stopped")
}
