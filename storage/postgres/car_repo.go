package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

const carColumns = `c.id, c.model, c.manufacturer_id, c.picture_url, m.id, m.name, m.country, m.picture_url`

type carRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewCarRepo(db *pgxpool.Pool, log logger.ILogger) storage.ICarStorage {
	return &carRepo{db: db, log: log}
}

func scanCar(row pgx.Row) (*models.Car, error) {
	var c models.Car
	var m models.Manufacturer
	if err := row.Scan(&c.ID, &c.Model, &c.ManufacturerID, &c.PictureURL, &m.ID, &m.Name, &m.Country, &m.PictureURL); err != nil {
		return nil, err
	}
	c.Manufacturer = &m
	return &c, nil
}

func (r *carRepo) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `INSERT INTO cars (model, manufacturer_id, picture_url) VALUES ($1, $2, $3) RETURNING id`
		if err := tx.QueryRow(ctx, query, car.Model, car.ManufacturerID, car.PictureURL).Scan(&car.ID); err != nil {
			return err
		}
		return setDrivers(ctx, tx, car.ID, car.DriverIDs)
	})
	if err != nil {
		r.log.Error("failed to create car", logger.Error(err))
		return nil, mapError(err)
	}
	return car, nil
}

func (r *carRepo) Update(ctx context.Context, car *models.Car) (*models.Car, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `UPDATE cars SET model = $1, manufacturer_id = $2, picture_url = $3 WHERE id = $4`
		tag, err := tx.Exec(ctx, query, car.Model, car.ManufacturerID, car.PictureURL, car.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM car_drivers WHERE car_id = $1`, car.ID); err != nil {
			return err
		}
		return setDrivers(ctx, tx, car.ID, car.DriverIDs)
	})
	if err != nil {
		if err != storage.ErrNotFound {
			r.log.Error("failed to update car", logger.Error(err))
		}
		return nil, mapError(err)
	}
	return car, nil
}

func setDrivers(ctx context.Context, tx pgx.Tx, carID int64, driverIDs []int64) error {
	for _, driverID := range driverIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO car_drivers (car_id, driver_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			carID, driverID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *carRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *carRepo) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars c JOIN manufacturers m ON m.id = c.manufacturer_id WHERE c.id = $1`
	car, err := scanCar(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get car", logger.Error(err))
		return nil, err
	}
	return car, nil
}

func (r *carRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.Car, error) {
	query := `
		SELECT ` + carColumns + `
		FROM cars c
		JOIN manufacturers m ON m.id = c.manufacturer_id
		WHERE c.model ILIKE $1 ESCAPE '\'
		ORDER BY c.id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, storage.LikePattern(filter.Search), limitArg(filter.Limit), filter.Offset)
	if err != nil {
		r.log.Error("failed to list cars", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	cars := []*models.Car{}
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func (r *carRepo) Count(ctx context.Context, search string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM cars WHERE model ILIKE $1 ESCAPE '\'`, storage.LikePattern(search)).Scan(&count)
	return count, err
}

func (r *carRepo) GetDrivers(ctx context.Context, carID int64) ([]*models.Driver, error) {
	query := `
		SELECT ` + driverColumns + `
		FROM drivers d
		JOIN car_drivers cd ON cd.driver_id = d.id
		WHERE cd.car_id = $1
		ORDER BY d.id ASC
	`
	rows, err := r.db.Query(ctx, query, carID)
	if err != nil {
		r.log.Error("failed to get car drivers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	drivers := []*models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (r *carRepo) IsAssigned(ctx context.Context, carID, driverID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM car_drivers WHERE car_id = $1 AND driver_id = $2)`
	err := r.db.QueryRow(ctx, query, carID, driverID).Scan(&exists)
	return exists, err
}

func (r *carRepo) ToggleDriver(ctx context.Context, carID, driverID int64) (bool, error) {
	var assigned bool
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, "DELETE FROM car_drivers WHERE car_id = $1 AND driver_id = $2", carID, driverID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			assigned = false
			return nil
		}
		_, err = tx.Exec(ctx, "INSERT INTO car_drivers (car_id, driver_id) VALUES ($1, $2) ON CONFLICT DO NOTHING", carID, driverID)
		assigned = true
		return err
	})
	if err != nil {
		r.log.Error("failed to toggle car driver", logger.Error(err), logger.Int64("car_id", carID), logger.Int64("driver_id", driverID))
		return false, err
	}
	return assigned, nil
}
