package service

import (
	"taxiservice/pkg/logger"
	"taxiservice/pkg/notify"
	"taxiservice/storage"
)

const DefaultPaginateBy = 5

type IServiceManager interface {
	Manufacturer() ManufacturerService
	Car() CarService
	Driver() DriverService
	Stats() StatsService
}

type options struct {
	paginateBy int
	notifier   notify.Notifier
}

type Option func(*options)

func WithPaginateBy(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.paginateBy = n
		}
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

type service struct {
	manufacturerService ManufacturerService
	carService          CarService
	driverService       DriverService
	statsService        StatsService
}

func New(stg storage.IStorage, log logger.ILogger, opts ...Option) IServiceManager {
	o := options{paginateBy: DefaultPaginateBy, notifier: notify.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &service{
		manufacturerService: NewManufacturerService(stg, log, o.paginateBy),
		carService:          NewCarService(stg, log, o.paginateBy, o.notifier),
		driverService:       NewDriverService(stg, log, o.paginateBy),
		statsService:        NewStatsService(stg, log),
	}
}

func (s *service) Manufacturer() ManufacturerService {
	return s.manufacturerService
}

func (s *service) Car() CarService {
	return s.carService
}

func (s *service) Driver() DriverService {
	return s.driverService
}

func (s *service) Stats() StatsService {
	return s.statsService
}
