package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taxiservice/pkg/auth"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type DriverInput struct {
	Username      string `json:"username" form:"username"`
	Password      string `json:"password" form:"password"`
	FirstName     string `json:"first_name" form:"first_name"`
	LastName      string `json:"last_name" form:"last_name"`
	LicenseNumber string `json:"license_number" form:"license_number"`
	PictureURL    string `json:"picture_url" form:"picture_url"`
}

func (in *DriverInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.LicenseNumber = strings.TrimSpace(in.LicenseNumber)
	in.PictureURL = strings.TrimSpace(in.PictureURL)
}

func (in DriverInput) validate() error {
	v := &ValidationError{}
	switch {
	case in.Username == "":
		v.add("username", "This field is required.")
	case !usernameRe.MatchString(in.Username):
		v.add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}
	checkLength(v, "username", in.Username, 150)
	if len(in.Password) < minPasswordLength {
		v.add("password", fmt.Sprintf("This password is too short. It must contain at least %d characters.", minPasswordLength))
	}
	checkLength(v, "first_name", in.FirstName, 150)
	checkLength(v, "last_name", in.LastName, 150)
	checkLicense(v, "license_number", in.LicenseNumber)
	checkURL(v, "picture_url", in.PictureURL)
	return v.orNil()
}

type DriverService interface {
	List(ctx context.Context, q ListQuery) (*ListResult[*models.Driver], error)
	Get(ctx context.Context, id int64) (*models.Driver, error)
	GetWithCars(ctx context.Context, id int64) (*models.Driver, error)
	Create(ctx context.Context, in DriverInput) (*models.Driver, error)
	UpdateLicense(ctx context.Context, id int64, license string) (*models.Driver, error)
	Delete(ctx context.Context, id int64) error
	Authenticate(ctx context.Context, username, password string) (*models.Driver, error)
}

type driverService struct {
	stg        storage.IStorage
	log        logger.ILogger
	paginateBy int
}

func NewDriverService(stg storage.IStorage, log logger.ILogger, paginateBy int) DriverService {
	return &driverService{
		stg:        stg,
		log:        log,
		paginateBy: paginateBy,
	}
}

func (s *driverService) List(ctx context.Context, q ListQuery) (*ListResult[*models.Driver], error) {
	return paginate(ctx, q, s.paginateBy, s.stg.Driver().Count, s.stg.Driver().List)
}

func (s *driverService) Get(ctx context.Context, id int64) (*models.Driver, error) {
	d, err := s.stg.Driver().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get driver %d: %w", id, err)
	}
	if d == nil {
		return nil, ErrNotFound
	}
	return d, nil
}

func (s *driverService) GetWithCars(ctx context.Context, id int64) (*models.Driver, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cars, err := s.stg.Driver().GetCars(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get driver %d cars: %w", id, err)
	}
	d.Cars = cars
	return d, nil
}

func (s *driverService) Create(ctx context.Context, in DriverInput) (*models.Driver, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	d, err := s.stg.Driver().Create(ctx, &models.Driver{
		Username:      in.Username,
		PasswordHash:  hash,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		LicenseNumber: in.LicenseNumber,
		PictureURL:    in.PictureURL,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, &ValidationError{Fields: map[string]string{
				"username": "A user with that username already exists.",
			}}
		}
		return nil, fmt.Errorf("create driver: %w", err)
	}
	s.log.Info("driver created", logger.Int64("id", d.ID), logger.String("username", d.Username))
	return d, nil
}

func (s *driverService) UpdateLicense(ctx context.Context, id int64, license string) (*models.Driver, error) {
	license = strings.TrimSpace(license)
	if err := ValidateLicenseNumber(license); err != nil {
		return nil, err
	}

	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d.LicenseNumber = license

	if _, err := s.stg.Driver().Update(ctx, d); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update driver %d: %w", id, err)
	}
	return d, nil
}

func (s *driverService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Driver().Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete driver %d: %w", id, err)
	}
	s.log.Info("driver deleted", logger.Int64("id", id))
	return nil
}

func (s *driverService) Authenticate(ctx context.Context, username, password string) (*models.Driver, error) {
	d, err := s.stg.Driver().GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if d == nil {
		return nil, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(d.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return d, nil
}
