package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"taxiservice/api"
	"taxiservice/config"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/notify"
	"taxiservice/service"
	"taxiservice/storage/database"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.ServiceName,
		logger.WithLevel(cfg.LoggerLevel),
		logger.WithFile(cfg.LogFile),
	)
	defer func() { _ = log.Sync() }()

	stg, err := database.Open(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to open storage", logger.String("driver", cfg.DBDriver), logger.Error(err))
		os.Exit(1)
	}
	defer stg.Close()

	notifier := notify.NewNop()
	if cfg.AdminBotToken != "" && cfg.AdminID != 0 {
		notifier, err = notify.NewTelegram(cfg.AdminBotToken, cfg.AdminID)
		if err != nil {
			log.Error("failed to init admin bot, notifications disabled", logger.Error(err))
			notifier = notify.NewNop()
		}
	}

	services := service.New(stg, log,
		service.WithPaginateBy(cfg.PaginateBy),
		service.WithNotifier(notifier),
	)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.New(cfg, services, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("🚖 taxiservice is listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", logger.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", logger.Error(err))
	}
}
