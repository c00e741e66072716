// Package storagetest holds repository tests shared by every storage backend.
package storagetest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"taxiservice/pkg/models"
	"taxiservice/pkg/testutil"
	"taxiservice/storage"
)

// Run executes the suite against stores returned by open. Every case gets a
// store with no fleet records in it.
func Run(t *testing.T, open func(t *testing.T) storage.IStorage) {
	cases := []struct {
		name string
		fn   func(t *testing.T, stg storage.IStorage)
	}{
		{"ManufacturerCRUDAndSearch", manufacturerCRUDAndSearch},
		{"SearchWildcardsAreLiteral", searchWildcardsAreLiteral},
		{"CarListJoinsManufacturer", carListJoinsManufacturer},
		{"CarToggleDriverTwice", carToggleDriverTwice},
		{"CarCreateAndUpdateDrivers", carCreateAndUpdateDrivers},
		{"DeleteCascades", deleteCascades},
		{"DriverCRUD", driverCRUD},
		{"ResetClearsTables", resetClearsTables},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, open(t))
		})
	}
}

func manufacturerCRUDAndSearch(t *testing.T, stg storage.IStorage) {
	repo := stg.Manufacturer()
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		testutil.CreateManufacturer(t, stg, fmt.Sprintf("test_name%d", i), "test_country")
	}

	count, err := repo.Count(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 12, count)

	// test_name1, test_name10, test_name11
	count, err = repo.Count(ctx, "TEST_NAME1")
	require.NoError(t, err)
	require.Equal(t, 3, count)

	page, err := repo.List(ctx, models.ListFilter{Search: "test_name1", Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "test_name10", page[0].Name)
	require.Equal(t, "test_name11", page[1].Name)

	all, err := repo.List(ctx, models.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 12)
	require.Equal(t, "test_name0", all[0].Name)

	m := all[0]
	m.Country = "Japan"
	_, err = repo.Update(ctx, m)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, "Japan", got.Country)

	require.NoError(t, repo.Delete(ctx, m.ID))
	got, err = repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	require.ErrorIs(t, repo.Delete(ctx, m.ID), storage.ErrNotFound)
	_, err = repo.Update(ctx, m)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func searchWildcardsAreLiteral(t *testing.T, stg storage.IStorage) {
	ctx := context.Background()

	testutil.CreateManufacturer(t, stg, "test_name", "")
	testutil.CreateManufacturer(t, stg, "testXname", "")
	testutil.CreateManufacturer(t, stg, "100% electric", "")

	count, err := stg.Manufacturer().Count(ctx, "test_name")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	count, err = stg.Manufacturer().Count(ctx, "%")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func carListJoinsManufacturer(t *testing.T, stg storage.IStorage) {
	ctx := context.Background()

	bmw := testutil.CreateManufacturer(t, stg, "BMW", "Germany")
	for i := 0; i < 7; i++ {
		testutil.CreateCar(t, stg, fmt.Sprintf("test_model %d", i), bmw.ID)
	}

	cars, err := stg.Car().List(ctx, models.ListFilter{Search: "Test_Model", Limit: 5, Offset: 5})
	require.NoError(t, err)
	require.Len(t, cars, 2)
	require.Equal(t, "test_model 5", cars[0].Model)
	require.Equal(t, "BMW", cars[0].Manufacturer.Name)

	car, err := stg.Car().GetByID(ctx, cars[1].ID)
	require.NoError(t, err)
	require.Equal(t, "Germany", car.Manufacturer.Country)

	missing, err := stg.Car().GetByID(ctx, 9999)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func carToggleDriverTwice(t *testing.T, stg storage.IStorage) {
	ctx := context.Background()

	m := testutil.CreateManufacturer(t, stg, "Toyota", "Japan")
	car := testutil.CreateCar(t, stg, "Prius", m.ID)
	driver := testutil.CreateDriver(t, stg, "test_username", "", "")

	assigned, err := stg.Car().ToggleDriver(ctx, car.ID, driver.ID)
	require.NoError(t, err)
	require.True(t, assigned)

	ok, err := stg.Car().IsAssigned(ctx, car.ID, driver.ID)
	require.NoError(t, err)
	require.True(t, ok)

	cars, err := stg.Driver().GetCars(ctx, driver.ID)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	require.Equal(t, "Prius", cars[0].Model)

	assigned, err = stg.Car().ToggleDriver(ctx, car.ID, driver.ID)
	require.NoError(t, err)
	require.False(t, assigned)

	drivers, err := stg.Car().GetDrivers(ctx, car.ID)
	require.NoError(t, err)
	require.Empty(t, drivers)
}

func carCreateAndUpdateDrivers(t *testing.T, stg storage.IStorage) {
	ctx := context.Background()

	m := testutil.CreateManufacturer(t, stg, "Ford", "USA")
	d1 := testutil.CreateDriver(t, stg, "first", "", "")
	d2 := testutil.CreateDriver(t, stg, "second", "", "")

	car := testutil.CreateCar(t, stg, "Focus", m.ID, d1.ID, d2.ID, d1.ID)

	drivers, err := stg.Car().GetDrivers(ctx, car.ID)
	require.NoError(t, err)
	require.Len(t, drivers, 2)

	car.Model = "Fiesta"
	car.DriverIDs = []int64{d2.ID}
	_, err = stg.Car().Update(ctx, car)
	require.NoError(t, err)

	drivers, err = stg.Car().GetDrivers(ctx, car.ID)
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	require.Equal(t, "second", drivers[0].Username)

	_, err = stg.Car().Update(ctx, &models.Car{ID: 4242, Model: "x", ManufacturerID: m.ID})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func deleteCascades(t *testing.T, stg storage.IStorage) {
	ctx := context.Background()

	m := testutil.CreateManufacturer(t, stg, "Lada", "Russia")
	d := testutil.CreateDriver(t, stg, "driver", "", "")
	car := testutil.CreateCar(t, stg, "Niva", m.ID, d.ID)

	require.NoError(t, stg.Manufacturer().Delete(ctx, m.ID))

	got, err := stg.Car().GetByID(ctx, car.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	cars, err := stg.Driver().GetCars(ctx, d.ID)
	require.NoError(t, err)
	require.Empty(t, cars)
}

func driverCRUD(t *testing.T, stg storage.IStorage) {
	repo := stg.Driver()
	ctx := context.Background()

	d := testutil.CreateDriver(t, stg, "Test_Username", "hash", "TST12345")
	require.NotZero(t, d.ID)
	require.False(t, d.DateJoined.IsZero())

	_, err := repo.Create(ctx, &models.Driver{Username: "Test_Username"})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	got, err := repo.GetByUsername(ctx, "Test_Username")
	require.NoError(t, err)
	require.Equal(t, d.ID, got.ID)
	require.Equal(t, "hash", got.PasswordHash)

	got.LicenseNumber = "ABC54321"
	_, err = repo.Update(ctx, got)
	require.NoError(t, err)

	got, err = repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "ABC54321", got.LicenseNumber)

	count, err := repo.Count(ctx, "username")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	ok, err := repo.Exists(ctx, []int64{d.ID, d.ID})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Exists(ctx, []int64{d.ID, 777})
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Delete(ctx, d.ID))
	missing, err := repo.GetByUsername(ctx, "Test_Username")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func resetClearsTables(t *testing.T, stg storage.IStorage) {
	ctx := context.Background()

	m := testutil.CreateManufacturer(t, stg, "Kia", "Korea")
	d := testutil.CreateDriver(t, stg, "driver", "", "")
	testutil.CreateCar(t, stg, "Rio", m.ID, d.ID)

	require.NoError(t, stg.Reset(ctx))

	for _, count := range []func(context.Context, string) (int, error){
		stg.Manufacturer().Count, stg.Car().Count, stg.Driver().Count,
	} {
		n, err := count(ctx, "")
		require.NoError(t, err)
		require.Zero(t, n)
	}

	fresh := testutil.CreateManufacturer(t, stg, "Kia", "Korea")
	require.Equal(t, int64(1), fresh.ID)
}
