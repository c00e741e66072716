package storage

import (
	"context"
	"errors"
	"strings"

	"taxiservice/pkg/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)

type IStorage interface {
	Manufacturer() IManufacturerStorage
	Car() ICarStorage
	Driver() IDriverStorage
	// Reset removes every fleet record; used by cmd/reset_db and tests.
	Reset(ctx context.Context) error
	Close()
}

type IManufacturerStorage interface {
	Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error)
	Update(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Manufacturer, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Manufacturer, error)
	Count(ctx context.Context, search string) (int, error)
}

type ICarStorage interface {
	Create(ctx context.Context, car *models.Car) (*models.Car, error)
	Update(ctx context.Context, car *models.Car) (*models.Car, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Car, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Car, error)
	Count(ctx context.Context, search string) (int, error)
	GetDrivers(ctx context.Context, carID int64) ([]*models.Driver, error)
	IsAssigned(ctx context.Context, carID, driverID int64) (bool, error)
	// ToggleDriver flips the car/driver association and reports whether it now exists.
	ToggleDriver(ctx context.Context, carID, driverID int64) (bool, error)
}

type IDriverStorage interface {
	Create(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	Update(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
	GetByUsername(ctx context.Context, username string) (*models.Driver, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Driver, error)
	Count(ctx context.Context, search string) (int, error)
	GetCars(ctx context.Context, driverID int64) ([]*models.Car, error)
	Exists(ctx context.Context, ids []int64) (bool, error)
}

// LikePattern turns a search term into a LIKE pattern with '\' as the escape
// character, so '%' and '_' in the term match literally.
func LikePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}

// UniqueIDs drops duplicates while keeping the first-seen order.
func UniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
