package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

const carColumns = `c.id, c.model, c.manufacturer_id, c.picture_url, m.id, m.name, m.country, m.picture_url`

type carRepo struct {
	db  *sql.DB
	log logger.ILogger
}

func NewCarRepo(db *sql.DB, log logger.ILogger) storage.ICarStorage {
	return &carRepo{db: db, log: log}
}

func scanCar(row scanner) (*models.Car, error) {
	var c models.Car
	var m models.Manufacturer
	if err := row.Scan(&c.ID, &c.Model, &c.ManufacturerID, &c.PictureURL, &m.ID, &m.Name, &m.Country, &m.PictureURL); err != nil {
		return nil, err
	}
	c.Manufacturer = &m
	return &c, nil
}

func scanCars(rows *sql.Rows) ([]*models.Car, error) {
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

func (r *carRepo) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO cars (model, manufacturer_id, picture_url) VALUES (?, ?, ?)`,
			car.Model, car.ManufacturerID, car.PictureURL)
		if err != nil {
			return err
		}
		if car.ID, err = res.LastInsertId(); err != nil {
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
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE cars SET model = ?, manufacturer_id = ?, picture_url = ? WHERE id = ?`,
			car.Model, car.ManufacturerID, car.PictureURL, car.ID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return storage.ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM car_drivers WHERE car_id = ?`, car.ID); err != nil {
			return err
		}
		return setDrivers(ctx, tx, car.ID, car.DriverIDs)
	})
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			r.log.Error("failed to update car", logger.Error(err))
		}
		return nil, mapError(err)
	}
	return car, nil
}

func setDrivers(ctx context.Context, tx *sql.Tx, carID int64, driverIDs []int64) error {
	for _, driverID := range driverIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO car_drivers (car_id, driver_id) VALUES (?, ?)`, carID, driverID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *carRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *carRepo) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	car, err := scanCar(r.db.QueryRowContext(ctx,
		`SELECT `+carColumns+` FROM cars c JOIN manufacturers m ON m.id = c.manufacturer_id WHERE c.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get car", logger.Error(err))
		return nil, err
	}
	return car, nil
}

func (r *carRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+carColumns+`
		FROM cars c
		JOIN manufacturers m ON m.id = c.manufacturer_id
		WHERE c.model LIKE ? ESCAPE '\'
		ORDER BY c.id ASC
		LIMIT ? OFFSET ?`,
		storage.LikePattern(filter.Search), limitArg(filter.Limit), filter.Offset)
	if err != nil {
		r.log.Error("failed to list cars", logger.Error(err))
		return nil, err
	}
	return scanCars(rows)
}

func (r *carRepo) Count(ctx context.Context, search string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM cars WHERE model LIKE ? ESCAPE '\'`,
		storage.LikePattern(search)).Scan(&count)
	return count, err
}

func (r *carRepo) GetDrivers(ctx context.Context, carID int64) ([]*models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+driverColumns+`
		FROM drivers d
		JOIN car_drivers cd ON cd.driver_id = d.id
		WHERE cd.car_id = ?
		ORDER BY d.id ASC`, carID)
	if err != nil {
		r.log.Error("failed to get car drivers", logger.Error(err))
		return nil, err
	}
	return scanDrivers(rows)
}

func (r *carRepo) IsAssigned(ctx context.Context, carID, driverID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM car_drivers WHERE car_id = ? AND driver_id = ?)`,
		carID, driverID).Scan(&exists)
	return exists, err
}

func (r *carRepo) ToggleDriver(ctx context.Context, carID, driverID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var assigned bool
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM car_drivers WHERE car_id = ? AND driver_id = ?`, carID, driverID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			assigned = false
			return nil
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO car_drivers (car_id, driver_id) VALUES (?, ?)`, carID, driverID)
		assigned = true
		return err
	})
	if err != nil {
		r.log.Error("failed to toggle car driver", logger.Error(err), logger.Int64("car_id", carID), logger.Int64("driver_id", driverID))
		return false, err
	}
	return assigned, nil
}

func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
