package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type ManufacturerInput struct {
	Name       string `json:"name" form:"name"`
	Country    string `json:"country" form:"country"`
	PictureURL string `json:"picture_url" form:"picture_url"`
}

func (in *ManufacturerInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Country = strings.TrimSpace(in.Country)
	in.PictureURL = strings.TrimSpace(in.PictureURL)
}

func (in ManufacturerInput) validate() error {
	v := &ValidationError{}
	if in.Name == "" {
		v.add("name", "This field is required.")
	}
	checkLength(v, "name", in.Name, 255)
	checkLength(v, "country", in.Country, 255)
	checkURL(v, "picture_url", in.PictureURL)
	return v.orNil()
}

type ManufacturerService interface {
	List(ctx context.Context, q ListQuery) (*ListResult[*models.Manufacturer], error)
	Get(ctx context.Context, id int64) (*models.Manufacturer, error)
	Create(ctx context.Context, in ManufacturerInput) (*models.Manufacturer, error)
	Update(ctx context.Context, id int64, in ManufacturerInput) (*models.Manufacturer, error)
	Delete(ctx context.Context, id int64) error
}

type manufacturerService struct {
	stg        storage.IManufacturerStorage
	log        logger.ILogger
	paginateBy int
}

func NewManufacturerService(stg storage.IStorage, log logger.ILogger, paginateBy int) ManufacturerService {
	return &manufacturerService{
		stg:        stg.Manufacturer(),
		log:        log,
		paginateBy: paginateBy,
	}
}

func (s *manufacturerService) List(ctx context.Context, q ListQuery) (*ListResult[*models.Manufacturer], error) {
	return paginate(ctx, q, s.paginateBy, s.stg.Count, s.stg.List)
}

func (s *manufacturerService) Get(ctx context.Context, id int64) (*models.Manufacturer, error) {
	m, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get manufacturer %d: %w", id, err)
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *manufacturerService) Create(ctx context.Context, in ManufacturerInput) (*models.Manufacturer, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	m, err := s.stg.Create(ctx, &models.Manufacturer{Name: in.Name, Country: in.Country, PictureURL: in.PictureURL})
	if err != nil {
		return nil, fmt.Errorf("create manufacturer: %w", err)
	}
	s.log.Info("manufacturer created", logger.Int64("id", m.ID), logger.String("name", m.Name))
	return m, nil
}

func (s *manufacturerService) Update(ctx context.Context, id int64, in ManufacturerInput) (*models.Manufacturer, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	m, err := s.stg.Update(ctx, &models.Manufacturer{ID: id, Name: in.Name, Country: in.Country, PictureURL: in.PictureURL})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update manufacturer %d: %w", id, err)
	}
	return m, nil
}

func (s *manufacturerService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete manufacturer %d: %w", id, err)
	}
	s.log.Info("manufacturer deleted", logger.Int64("id", id))
	return nil
}
