package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"taxiservice/pkg/auth"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/pkg/pagination"
	"taxiservice/pkg/testutil"
	"taxiservice/service"
	"taxiservice/storage"
)

type recordingNotifier struct {
	calls []bool
	err   error
}

func (n *recordingNotifier) AssignmentChanged(_ *models.Driver, _ *models.Car, assigned bool) error {
	n.calls = append(n.calls, assigned)
	return n.err
}

func newServices(t *testing.T, opts ...service.Option) (service.IServiceManager, storage.IStorage) {
	t.Helper()
	stg := testutil.OpenStore(t)
	return service.New(stg, logger.NewNop(), opts...), stg
}

func TestManufacturerList_Pagination(t *testing.T) {
	svc, stg := newServices(t)
	testutil.CreateManufacturer(t, stg, "Lincoln", "USA")
	for i := 1; i < 23; i++ {
		testutil.CreateManufacturer(t, stg, fmt.Sprintf("Lincoln %d", i), "USA")
	}

	ctx := context.Background()
	res, err := svc.Manufacturer().List(ctx, service.ListQuery{})
	require.NoError(t, err)
	require.True(t, res.IsPaginated())
	require.Equal(t, 23, res.Paginator.Count)
	require.Equal(t, 5, res.Paginator.NumPages)
	require.Len(t, res.Items, 5)
	require.Equal(t, 1, res.Page.Number)

	res, err = svc.Manufacturer().List(ctx, service.ListQuery{Page: pagination.LastPage})
	require.NoError(t, err)
	require.Equal(t, 5, res.Page.Number)
	require.Len(t, res.Items, 3)

	_, err = svc.Manufacturer().List(ctx, service.ListQuery{Page: "6"})
	require.ErrorIs(t, err, pagination.ErrEmptyPage)

	_, err = svc.Manufacturer().List(ctx, service.ListQuery{Page: "two"})
	require.ErrorIs(t, err, pagination.ErrNotAnInteger)
}

func TestManufacturerList_Search(t *testing.T) {
	svc, stg := newServices(t)
	for _, name := range []string{"Lincoln", "BMW", "Lincoln Motor", "bmw group"} {
		testutil.CreateManufacturer(t, stg, name, "Test")
	}

	res, err := svc.Manufacturer().List(context.Background(), service.ListQuery{Search: "BMW"})
	require.NoError(t, err)
	require.Equal(t, "BMW", res.Search)
	require.Len(t, res.Items, 2)
	require.False(t, res.IsPaginated())

	// surrounding spaces are part of the term
	res, err = svc.Manufacturer().List(context.Background(), service.ListQuery{Search: " Motor"})
	require.NoError(t, err)
	require.Equal(t, " Motor", res.Search)
	require.Len(t, res.Items, 1)

	res, err = svc.Manufacturer().List(context.Background(), service.ListQuery{Search: "BMW "})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
}

func TestManufacturerList_EmptyHasFirstPage(t *testing.T) {
	svc, _ := newServices(t)

	res, err := svc.Manufacturer().List(context.Background(), service.ListQuery{Search: "nothing"})
	require.NoError(t, err)
	require.Empty(t, res.Items)
	require.Equal(t, 1, res.Page.Number)
	require.Equal(t, 1, res.Paginator.NumPages)
}

func TestManufacturerCRUD(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()

	_, err := svc.Manufacturer().Create(ctx, service.ManufacturerInput{Country: "USA"})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "name")

	_, err = svc.Manufacturer().Create(ctx, service.ManufacturerInput{Name: "Ford", PictureURL: "not a url"})
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "picture_url")

	m, err := svc.Manufacturer().Create(ctx, service.ManufacturerInput{Name: " Ford ", Country: "USA", PictureURL: "https://example.com/ford.png"})
	require.NoError(t, err)
	require.Equal(t, "Ford", m.Name)

	m, err = svc.Manufacturer().Update(ctx, m.ID, service.ManufacturerInput{Name: "Ford Motor", Country: "USA"})
	require.NoError(t, err)
	require.Equal(t, "Ford Motor", m.Name)

	got, err := svc.Manufacturer().Get(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, "Ford Motor", got.Name)

	_, err = svc.Manufacturer().Update(ctx, 999, service.ManufacturerInput{Name: "Ghost"})
	require.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, svc.Manufacturer().Delete(ctx, m.ID))
	require.ErrorIs(t, svc.Manufacturer().Delete(ctx, m.ID), service.ErrNotFound)

	_, err = svc.Manufacturer().Get(ctx, m.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCarCreate_Validation(t *testing.T) {
	svc, stg := newServices(t)
	ctx := context.Background()
	mfr := testutil.CreateManufacturer(t, stg, "Lincoln", "USA")
	driver := testutil.CreateDriver(t, stg, "driver", "hash", "ABC12345")

	_, err := svc.Car().Create(ctx, service.CarInput{})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "model")
	require.Contains(t, verr.Fields, "manufacturer_id")

	_, err = svc.Car().Create(ctx, service.CarInput{Model: "Continental", ManufacturerID: mfr.ID + 100})
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "manufacturer_id")

	_, err = svc.Car().Create(ctx, service.CarInput{Model: "Continental", ManufacturerID: mfr.ID, DriverIDs: []int64{driver.ID, 404}})
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "drivers")

	car, err := svc.Car().Create(ctx, service.CarInput{Model: "Continental", ManufacturerID: mfr.ID, DriverIDs: []int64{driver.ID, driver.ID}})
	require.NoError(t, err)

	detail, err := svc.Car().Get(ctx, car.ID, driver.ID)
	require.NoError(t, err)
	require.True(t, detail.IsAssigned)
	require.Len(t, detail.Drivers, 1)
	require.NotNil(t, detail.Manufacturer)
	require.Equal(t, "Lincoln", detail.Manufacturer.Name)
}

func TestCarUpdateAndDelete(t *testing.T) {
	svc, stg := newServices(t)
	ctx := context.Background()
	mfr := testutil.CreateManufacturer(t, stg, "Lincoln", "USA")
	driver := testutil.CreateDriver(t, stg, "driver", "hash", "ABC12345")
	car := testutil.CreateCar(t, stg, "Continental", mfr.ID, driver.ID)

	updated, err := svc.Car().Update(ctx, car.ID, service.CarInput{Model: "Navigator", ManufacturerID: mfr.ID})
	require.NoError(t, err)
	require.Equal(t, "Navigator", updated.Model)

	detail, err := svc.Car().Get(ctx, car.ID, driver.ID)
	require.NoError(t, err)
	require.False(t, detail.IsAssigned)
	require.Empty(t, detail.Drivers)

	_, err = svc.Car().Update(ctx, car.ID+1, service.CarInput{Model: "Navigator", ManufacturerID: mfr.ID})
	require.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, svc.Car().Delete(ctx, car.ID))
	_, err = svc.Car().Get(ctx, car.ID, driver.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCarToggleAssign(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, stg := newServices(t, service.WithNotifier(notifier))
	ctx := context.Background()
	mfr := testutil.CreateManufacturer(t, stg, "Lincoln", "USA")
	driver := testutil.CreateDriver(t, stg, "driver", "hash", "ABC12345")
	car := testutil.CreateCar(t, stg, "Continental", mfr.ID)

	assigned, err := svc.Car().ToggleAssign(ctx, car.ID, driver)
	require.NoError(t, err)
	require.True(t, assigned)

	detail, err := svc.Car().Get(ctx, car.ID, driver.ID)
	require.NoError(t, err)
	require.True(t, detail.IsAssigned)

	assigned, err = svc.Car().ToggleAssign(ctx, car.ID, driver)
	require.NoError(t, err)
	require.False(t, assigned)

	detail, err = svc.Car().Get(ctx, car.ID, driver.ID)
	require.NoError(t, err)
	require.False(t, detail.IsAssigned)

	require.Equal(t, []bool{true, false}, notifier.calls)

	_, err = svc.Car().ToggleAssign(ctx, car.ID+1, driver)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCarToggleAssign_NotifierFailureIgnored(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("telegram down")}
	svc, stg := newServices(t, service.WithNotifier(notifier))
	mfr := testutil.CreateManufacturer(t, stg, "Lincoln", "USA")
	driver := testutil.CreateDriver(t, stg, "driver", "hash", "ABC12345")
	car := testutil.CreateCar(t, stg, "Continental", mfr.ID)

	assigned, err := svc.Car().ToggleAssign(context.Background(), car.ID, driver)
	require.NoError(t, err)
	require.True(t, assigned)
	require.Len(t, notifier.calls, 1)
}

func TestCarList_SearchAndPageSize(t *testing.T) {
	svc, stg := newServices(t, service.WithPaginateBy(3))
	mfr := testutil.CreateManufacturer(t, stg, "Lincoln", "USA")
	for i := 0; i < 7; i++ {
		testutil.CreateCar(t, stg, fmt.Sprintf("test_model %d", i), mfr.ID)
	}
	testutil.CreateCar(t, stg, "testXmodel", mfr.ID)

	res, err := svc.Car().List(context.Background(), service.ListQuery{Search: "TEST_MODEL", Page: "last"})
	require.NoError(t, err)
	require.Equal(t, 7, res.Paginator.Count)
	require.Equal(t, 3, res.Page.Number)
	require.Len(t, res.Items, 1)
	require.Equal(t, mfr.Name, res.Items[0].Manufacturer.Name)
}

func TestDriverCreate(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()

	in := service.DriverInput{
		Username:      "new_driver",
		Password:      "driver-pass-1",
		FirstName:     "Test",
		LastName:      "Driver",
		LicenseNumber: "ABC12345",
	}
	d, err := svc.Driver().Create(ctx, in)
	require.NoError(t, err)
	require.NotZero(t, d.ID)
	require.NotEqual(t, in.Password, d.PasswordHash)
	require.NoError(t, auth.CheckPassword(d.PasswordHash, in.Password))

	_, err = svc.Driver().Create(ctx, in)
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "username")
}

func TestDriverCreate_Validation(t *testing.T) {
	svc, _ := newServices(t)

	_, err := svc.Driver().Create(context.Background(), service.DriverInput{
		Username:      "bad name!",
		Password:      "short",
		LicenseNumber: "abc12345",
	})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "username")
	require.Contains(t, verr.Fields, "password")
	require.Contains(t, verr.Fields, "license_number")
}

func TestValidateLicenseNumber(t *testing.T) {
	tests := []struct {
		license string
		valid   bool
	}{
		{"ABC12345", true},
		{"", false},
		{"ABC1234", false},
		{"ABC123456", false},
		{"abc12345", false},
		{"AB123456", false},
		{"ABCD2345", false},
		{"ABC1234A", false},
	}
	for _, tt := range tests {
		t.Run(tt.license, func(t *testing.T) {
			err := service.ValidateLicenseNumber(tt.license)
			if tt.valid {
				require.NoError(t, err)
				return
			}
			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Contains(t, verr.Fields, "license_number")
		})
	}
}

func TestDriverUpdateLicense(t *testing.T) {
	svc, stg := newServices(t)
	ctx := context.Background()
	d := testutil.CreateDriver(t, stg, "driver", "hash", "ABC12345")

	_, err := svc.Driver().UpdateLicense(ctx, d.ID, "XYZ1")
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)

	updated, err := svc.Driver().UpdateLicense(ctx, d.ID, "XYZ54321")
	require.NoError(t, err)
	require.Equal(t, "XYZ54321", updated.LicenseNumber)

	got, err := svc.Driver().Get(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "XYZ54321", got.LicenseNumber)

	_, err = svc.Driver().UpdateLicense(ctx, d.ID+1, "XYZ54321")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestDriverGetWithCarsAndDelete(t *testing.T) {
	svc, stg := newServices(t)
	ctx := context.Background()
	mfr := testutil.CreateManufacturer(t, stg, "Lincoln", "USA")
	d := testutil.CreateDriver(t, stg, "driver", "hash", "ABC12345")
	testutil.CreateCar(t, stg, "Continental", mfr.ID, d.ID)
	testutil.CreateCar(t, stg, "Navigator", mfr.ID, d.ID)
	testutil.CreateCar(t, stg, "Aviator", mfr.ID)

	got, err := svc.Driver().GetWithCars(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, got.Cars, 2)

	require.NoError(t, svc.Driver().Delete(ctx, d.ID))
	_, err = svc.Driver().GetWithCars(ctx, d.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
	require.ErrorIs(t, svc.Driver().Delete(ctx, d.ID), service.ErrNotFound)
}

func TestDriverAuthenticate(t *testing.T) {
	svc, _ := newServices(t)
	ctx := context.Background()
	_, err := svc.Driver().Create(ctx, service.DriverInput{
		Username:      "driver",
		Password:      "driver-pass-1",
		LicenseNumber: "ABC12345",
	})
	require.NoError(t, err)

	d, err := svc.Driver().Authenticate(ctx, "driver", "driver-pass-1")
	require.NoError(t, err)
	require.Equal(t, "driver", d.Username)

	_, err = svc.Driver().Authenticate(ctx, "driver", "wrong-pass")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Driver().Authenticate(ctx, "nobody", "driver-pass-1")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestDriverList_Search(t *testing.T) {
	svc, stg := newServices(t)
	for i := 0; i < 26; i++ {
		testutil.CreateDriver(t, stg, fmt.Sprintf("test_driver%d", i), "hash", fmt.Sprintf("ABC%05d", i))
	}

	tests := []struct {
		search string
		want   int
	}{
		{"6", 2},
		{"46", 0},
		{"1", 5},
		{"TEST_DRIVER2", 5},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			res, err := svc.Driver().List(context.Background(), service.ListQuery{Search: tt.search})
			require.NoError(t, err)
			require.Len(t, res.Items, tt.want)
		})
	}
}

func TestStatsFleet(t *testing.T) {
	svc, stg := newServices(t)
	mfr := testutil.CreateManufacturer(t, stg, "Lincoln", "USA")
	testutil.CreateManufacturer(t, stg, "BMW", "Germany")
	d := testutil.CreateDriver(t, stg, "driver", "hash", "ABC12345")
	testutil.CreateCar(t, stg, "Continental", mfr.ID, d.ID)

	stats, err := svc.Stats().Fleet(context.Background())
	require.NoError(t, err)
	require.Equal(t, &service.FleetStats{NumDrivers: 1, NumCars: 1, NumManufacturers: 2}, stats)
}
