package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

const driverColumns = `d.id, d.username, d.password_hash, d.first_name, d.last_name, d.license_number, d.picture_url, d.date_joined`

type driverRepo struct {
	db  *sql.DB
	log logger.ILogger
}

func NewDriverRepo(db *sql.DB, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

func scanDriver(row scanner) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(&d.ID, &d.Username, &d.PasswordHash, &d.FirstName, &d.LastName, &d.LicenseNumber, &d.PictureURL, &d.DateJoined)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func scanDrivers(rows *sql.Rows) ([]*models.Driver, error) {
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

func (r *driverRepo) Create(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO drivers (username, password_hash, first_name, last_name, license_number, picture_url)
		VALUES (?, ?, ?, ?, ?, ?)`,
		driver.Username,
		driver.PasswordHash,
		driver.FirstName,
		driver.LastName,
		driver.LicenseNumber,
		driver.PictureURL,
	)
	if err != nil {
		err = mapError(err)
		if !errors.Is(err, storage.ErrAlreadyExists) {
			r.log.Error("failed to create driver", logger.Error(err))
		}
		return nil, err
	}
	if driver.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	err = r.db.QueryRowContext(ctx, `SELECT date_joined FROM drivers WHERE id = ?`, driver.ID).Scan(&driver.DateJoined)
	if err != nil {
		return nil, err
	}
	return driver, nil
}

func (r *driverRepo) Update(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE drivers
		SET first_name = ?, last_name = ?, license_number = ?, picture_url = ?
		WHERE id = ?`,
		driver.FirstName,
		driver.LastName,
		driver.LicenseNumber,
		driver.PictureURL,
		driver.ID,
	)
	if err != nil {
		r.log.Error("failed to update driver", logger.Error(err))
		return nil, mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, storage.ErrNotFound
	}
	return driver, nil
}

func (r *driverRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM drivers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *driverRepo) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	return r.getOne(ctx, `SELECT `+driverColumns+` FROM drivers d WHERE d.id = ?`, id)
}

func (r *driverRepo) GetByUsername(ctx context.Context, username string) (*models.Driver, error) {
	return r.getOne(ctx, `SELECT `+driverColumns+` FROM drivers d WHERE d.username = ?`, username)
}

func (r *driverRepo) getOne(ctx context.Context, query string, arg any) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	d, err := scanDriver(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get driver", logger.Error(err))
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+driverColumns+`
		FROM drivers d
		WHERE d.username LIKE ? ESCAPE '\'
		ORDER BY d.id ASC
		LIMIT ? OFFSET ?`,
		storage.LikePattern(filter.Search), limitArg(filter.Limit), filter.Offset)
	if err != nil {
		r.log.Error("failed to list drivers", logger.Error(err))
		return nil, err
	}
	return scanDrivers(rows)
}

func (r *driverRepo) Count(ctx context.Context, search string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM drivers WHERE username LIKE ? ESCAPE '\'`,
		storage.LikePattern(search)).Scan(&count)
	return count, err
}

func (r *driverRepo) GetCars(ctx context.Context, driverID int64) ([]*models.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+carColumns+`
		FROM cars c
		JOIN manufacturers m ON m.id = c.manufacturer_id
		JOIN car_drivers cd ON cd.car_id = c.id
		WHERE cd.driver_id = ?
		ORDER BY c.id ASC`, driverID)
	if err != nil {
		r.log.Error("failed to get driver cars", logger.Error(err))
		return nil, err
	}
	return scanCars(rows)
}

func (r *driverRepo) Exists(ctx context.Context, ids []int64) (bool, error) {
	unique := storage.UniqueIDs(ids)
	if len(unique) == 0 {
		return true, nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	args := make([]any, len(unique))
	for i, id := range unique {
		args[i] = id
	}
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM drivers WHERE id IN (`+placeholders(len(unique))+`)`, args...).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == len(unique), nil
}
