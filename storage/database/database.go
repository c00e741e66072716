// Package database picks the storage backend named by DB_DRIVER.
package database

import (
	"context"
	"fmt"

	"taxiservice/config"
	"taxiservice/pkg/logger"
	"taxiservice/storage"
	"taxiservice/storage/postgres"
	"taxiservice/storage/sqlite"
)

func Open(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.IStorage, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg, log)
	case config.DriverSQLite:
		return sqlite.New(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}
