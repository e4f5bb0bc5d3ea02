package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iliyamo/cinetour/internal/auth"
	"github.com/iliyamo/cinetour/internal/config"
	"github.com/iliyamo/cinetour/internal/database"
	"github.com/iliyamo/cinetour/internal/handler"
	"github.com/iliyamo/cinetour/internal/logging"
	"github.com/iliyamo/cinetour/internal/middleware"
	"github.com/iliyamo/cinetour/internal/queue"
	"github.com/iliyamo/cinetour/internal/repository"
	"github.com/iliyamo/cinetour/internal/router"
	"github.com/iliyamo/cinetour/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Open(database.Options{
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
	})
	if err != nil {
		logger.Error("connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Redis is optional: without it the cache and the limiter pass through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	var pub queue.Publisher = queue.NopPublisher{}
	if ev := config.LoadEventsConfig(); ev.Enabled {
		amqpPub := queue.NewAMQPPublisher(queue.AMQPConfig{
			URL:    ev.URL,
			Queue:  ev.Queue,
			Buffer: ev.Buffer,
		}, logger)
		defer amqpPub.Close()
		pub = amqpPub
		logger.Info("publishing activity events", "queue", ev.Queue)
	}

	users := repository.NewUserRepo(db)
	programmes := repository.NewProgrammeRepo(db)
	guard := auth.NewGuard(repository.NewSessionRepo(db))

	friendSvc := service.NewFriendService(repository.NewFriendRepo(db), pub, logger)
	profileSvc := service.NewProfileService(users, pub, logger)
	tourSvc := service.NewTourService(repository.NewTourRepo(db), programmes, pub, logger)
	programmeSvc := service.NewProgrammeService(programmes)
	dirSvc := service.NewDirectoryService(users, repository.NewCinemaRepo(db))

	e := router.NewServer(logger, cfg.RequestTimeout)
	router.RegisterRoutes(e, handler.Ready(db))
	router.RegisterPublic(e,
		handler.NewPublicHandler(dirSvc, programmeSvc),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb, logger))
	router.RegisterSocial(e, router.SocialHandlers{
		Friends: handler.NewFriendHandler(friendSvc, guard, cfg.SessionCookie),
		Profile: handler.NewProfileHandler(profileSvc, guard, cfg.SessionCookie),
		Tours:   handler.NewTourHandler(tourSvc, guard, cfg.SessionCookie),
	}, middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, cfg.SessionCookie, logger))

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("server stopped")
}
