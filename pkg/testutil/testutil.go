// Package testutil wires throwaway stores for package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
	"taxiservice/storage/sqlite"
)

var dbSeq atomic.Int64

// OpenStore opens a fresh in-memory SQLite store with migrations applied.
// Each call gets its own database, closed via t.Cleanup.
func OpenStore(t *testing.T) storage.IStorage {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	store, err := sqlite.Open(context.Background(), dsn, logger.NewNop())
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

// CreateManufacturer inserts a manufacturer straight through storage.
func CreateManufacturer(t *testing.T, stg storage.IStorage, name, country string) *models.Manufacturer {
	t.Helper()
	m, err := stg.Manufacturer().Create(context.Background(), &models.Manufacturer{Name: name, Country: country, PictureURL: "Test"})
	if err != nil {
		t.Fatalf("create manufacturer %s: %v", name, err)
	}
	return m
}

func CreateCar(t *testing.T, stg storage.IStorage, model string, manufacturerID int64, driverIDs ...int64) *models.Car {
	t.Helper()
	car, err := stg.Car().Create(context.Background(), &models.Car{
		Model:          model,
		ManufacturerID: manufacturerID,
		PictureURL:     "Test",
		DriverIDs:      driverIDs,
	})
	if err != nil {
		t.Fatalf("create car %s: %v", model, err)
	}
	return car
}

// CreateDriver skips validation and stores passwordHash as given.
func CreateDriver(t *testing.T, stg storage.IStorage, username, passwordHash, license string) *models.Driver {
	t.Helper()
	d, err := stg.Driver().Create(context.Background(), &models.Driver{
		Username:      username,
		PasswordHash:  passwordHash,
		LicenseNumber: license,
		PictureURL:    "Test",
	})
	if err != nil {
		t.Fatalf("create driver %s: %v", username, err)
	}
	return d
}
