package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

const driverColumns = `d.id, d.username, d.password_hash, d.first_name, d.last_name, d.license_number, d.picture_url, d.date_joined`

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(&d.ID, &d.Username, &d.PasswordHash, &d.FirstName, &d.LastName, &d.LicenseNumber, &d.PictureURL, &d.DateJoined)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepo) Create(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	query := `
		INSERT INTO drivers (username, password_hash, first_name, last_name, license_number, picture_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, date_joined
	`
	err := r.db.QueryRow(ctx, query,
		driver.Username,
		driver.PasswordHash,
		driver.FirstName,
		driver.LastName,
		driver.LicenseNumber,
		driver.PictureURL,
	).Scan(&driver.ID, &driver.DateJoined)
	if err != nil {
		err = mapError(err)
		if err != storage.ErrAlreadyExists {
			r.log.Error("failed to create driver", logger.Error(err))
		}
		return nil, err
	}
	return driver, nil
}

func (r *driverRepo) Update(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	query := `
		UPDATE drivers
		SET first_name = $1, last_name = $2, license_number = $3, picture_url = $4
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query,
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
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return driver, nil
}

func (r *driverRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *driverRepo) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	return r.getOne(ctx, `SELECT `+driverColumns+` FROM drivers d WHERE d.id = $1`, id)
}

func (r *driverRepo) GetByUsername(ctx context.Context, username string) (*models.Driver, error) {
	return r.getOne(ctx, `SELECT `+driverColumns+` FROM drivers d WHERE d.username = $1`, username)
}

func (r *driverRepo) getOne(ctx context.Context, query string, arg any) (*models.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get driver", logger.Error(err))
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.Driver, error) {
	query := `
		SELECT ` + driverColumns + `
		FROM drivers d
		WHERE d.username ILIKE $1 ESCAPE '\'
		ORDER BY d.id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, storage.LikePattern(filter.Search), limitArg(filter.Limit), filter.Offset)
	if err != nil {
		r.log.Error("failed to list drivers", logger.Error(err))
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

func (r *driverRepo) Count(ctx context.Context, search string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM drivers WHERE username ILIKE $1 ESCAPE '\'`, storage.LikePattern(search)).Scan(&count)
	return count, err
}

func (r *driverRepo) GetCars(ctx context.Context, driverID int64) ([]*models.Car, error) {
	query := `
		SELECT ` + carColumns + `
		FROM cars c
		JOIN manufacturers m ON m.id = c.manufacturer_id
		JOIN car_drivers cd ON cd.car_id = c.id
		WHERE cd.driver_id = $1
		ORDER BY c.id ASC
	`
	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		r.log.Error("failed to get driver cars", logger.Error(err))
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

func (r *driverRepo) Exists(ctx context.Context, ids []int64) (bool, error) {
	unique := storage.UniqueIDs(ids)
	if len(unique) == 0 {
		return true, nil
	}
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM drivers WHERE id = ANY($1)`, unique).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == len(unique), nil
}
