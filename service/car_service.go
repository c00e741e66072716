package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/pkg/notify"
	"taxiservice/storage"
)

type CarInput struct {
	Model          string  `json:"model" form:"model"`
	ManufacturerID int64   `json:"manufacturer_id" form:"manufacturer_id"`
	PictureURL     string  `json:"picture_url" form:"picture_url"`
	DriverIDs      []int64 `json:"drivers" form:"drivers"`
}

// CarDetail is a car with its drivers and whether the viewer drives it.
type CarDetail struct {
	*models.Car
	IsAssigned bool `json:"is_assigned"`
}

type CarService interface {
	List(ctx context.Context, q ListQuery) (*ListResult[*models.Car], error)
	Get(ctx context.Context, id, viewerID int64) (*CarDetail, error)
	Create(ctx context.Context, in CarInput) (*models.Car, error)
	Update(ctx context.Context, id int64, in CarInput) (*models.Car, error)
	Delete(ctx context.Context, id int64) error
	ToggleAssign(ctx context.Context, carID int64, driver *models.Driver) (bool, error)
}

type carService struct {
	stg        storage.IStorage
	log        logger.ILogger
	paginateBy int
	notifier   notify.Notifier
}

func NewCarService(stg storage.IStorage, log logger.ILogger, paginateBy int, notifier notify.Notifier) CarService {
	return &carService{
		stg:        stg,
		log:        log,
		paginateBy: paginateBy,
		notifier:   notifier,
	}
}

func (s *carService) List(ctx context.Context, q ListQuery) (*ListResult[*models.Car], error) {
	return paginate(ctx, q, s.paginateBy, s.stg.Car().Count, s.stg.Car().List)
}

func (s *carService) get(ctx context.Context, id int64) (*models.Car, error) {
	car, err := s.stg.Car().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get car %d: %w", id, err)
	}
	if car == nil {
		return nil, ErrNotFound
	}
	return car, nil
}

func (s *carService) Get(ctx context.Context, id, viewerID int64) (*CarDetail, error) {
	car, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	drivers, err := s.stg.Car().GetDrivers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get car %d drivers: %w", id, err)
	}
	car.Drivers = drivers

	assigned, err := s.stg.Car().IsAssigned(ctx, id, viewerID)
	if err != nil {
		return nil, fmt.Errorf("check car %d assignment: %w", id, err)
	}
	return &CarDetail{Car: car, IsAssigned: assigned}, nil
}

func (s *carService) validate(ctx context.Context, in *CarInput) error {
	in.Model = strings.TrimSpace(in.Model)
	in.PictureURL = strings.TrimSpace(in.PictureURL)
	in.DriverIDs = storage.UniqueIDs(in.DriverIDs)

	v := &ValidationError{}
	if in.Model == "" {
		v.add("model", "This field is required.")
	}
	checkLength(v, "model", in.Model, 255)
	checkURL(v, "picture_url", in.PictureURL)

	if in.ManufacturerID <= 0 {
		v.add("manufacturer_id", "This field is required.")
	} else {
		m, err := s.stg.Manufacturer().GetByID(ctx, in.ManufacturerID)
		if err != nil {
			return fmt.Errorf("check manufacturer: %w", err)
		}
		if m == nil {
			v.add("manufacturer_id", "Select a valid choice. That choice is not one of the available choices.")
		}
	}

	if len(in.DriverIDs) > 0 {
		ok, err := s.stg.Driver().Exists(ctx, in.DriverIDs)
		if err != nil {
			return fmt.Errorf("check drivers: %w", err)
		}
		if !ok {
			v.add("drivers", "Select a valid choice. One of the drivers is not one of the available choices.")
		}
	}
	return v.orNil()
}

func (s *carService) Create(ctx context.Context, in CarInput) (*models.Car, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}
	car, err := s.stg.Car().Create(ctx, &models.Car{
		Model:          in.Model,
		ManufacturerID: in.ManufacturerID,
		PictureURL:     in.PictureURL,
		DriverIDs:      in.DriverIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}
	s.log.Info("car created", logger.Int64("id", car.ID), logger.String("model", car.Model))
	return car, nil
}

func (s *carService) Update(ctx context.Context, id int64, in CarInput) (*models.Car, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}
	car, err := s.stg.Car().Update(ctx, &models.Car{
		ID:             id,
		Model:          in.Model,
		ManufacturerID: in.ManufacturerID,
		PictureURL:     in.PictureURL,
		DriverIDs:      in.DriverIDs,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update car %d: %w", id, err)
	}
	return car, nil
}

func (s *carService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Car().Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete car %d: %w", id, err)
	}
	s.log.Info("car deleted", logger.Int64("id", id))
	return nil
}

// ToggleAssign adds the driver to the car or removes them if already there.
// It reports whether the driver is assigned afterwards.
func (s *carService) ToggleAssign(ctx context.Context, carID int64, driver *models.Driver) (bool, error) {
	car, err := s.get(ctx, carID)
	if err != nil {
		return false, err
	}

	assigned, err := s.stg.Car().ToggleDriver(ctx, carID, driver.ID)
	if err != nil {
		return false, fmt.Errorf("toggle car %d: %w", carID, err)
	}

	s.log.Info("car assignment toggled",
		logger.Int64("car_id", carID),
		logger.Int64("driver_id", driver.ID),
		logger.Bool("assigned", assigned),
	)

	if err := s.notifier.AssignmentChanged(driver, car, assigned); err != nil {
		s.log.Warning("failed to send assignment notification", logger.Error(err), logger.Int64("car_id", carID))
	}
	return assigned, nil
}
