package main

import (
	"context"
	"os"

	"taxiservice/config"
	"taxiservice/pkg/logger"
	"taxiservice/storage/database"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, logger.WithLevel(cfg.LoggerLevel))

	stg, err := database.Open(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to open storage", logger.Error(err))
		os.Exit(1)
	}
	defer stg.Close()

	// manufacturers, cars, drivers and the car_drivers join table
	if err := stg.Reset(context.Background()); err != nil {
		log.Error("failed to reset fleet tables", logger.Error(err))
		return
	}
	log.Info("Successfully truncated fleet tables.")
}
