package service

import (
	"context"
	"fmt"

	"taxiservice/pkg/logger"
	"taxiservice/storage"
)

type FleetStats struct {
	NumDrivers       int `json:"num_drivers"`
	NumCars          int `json:"num_cars"`
	NumManufacturers int `json:"num_manufacturers"`
}

type StatsService interface {
	Fleet(ctx context.Context) (*FleetStats, error)
}

type statsService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewStatsService(stg storage.IStorage, log logger.ILogger) StatsService {
	return &statsService{stg: stg, log: log}
}

func (s *statsService) Fleet(ctx context.Context) (*FleetStats, error) {
	var stats FleetStats
	var err error

	if stats.NumDrivers, err = s.stg.Driver().Count(ctx, ""); err != nil {
		return nil, fmt.Errorf("count drivers: %w", err)
	}
	if stats.NumCars, err = s.stg.Car().Count(ctx, ""); err != nil {
		return nil, fmt.Errorf("count cars: %w", err)
	}
	if stats.NumManufacturers, err = s.stg.Manufacturer().Count(ctx, ""); err != nil {
		return nil, fmt.Errorf("count manufacturers: %w", err)
	}
	return &stats, nil
}
