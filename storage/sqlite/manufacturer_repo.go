package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type manufacturerRepo struct {
	db  *sql.DB
	log logger.ILogger
}

func NewManufacturerRepo(db *sql.DB, log logger.ILogger) storage.IManufacturerStorage {
	return &manufacturerRepo{db: db, log: log}
}

func (r *manufacturerRepo) Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO manufacturers (name, country, picture_url) VALUES (?, ?, ?)`,
		m.Name, m.Country, m.PictureURL)
	if err != nil {
		r.log.Error("failed to create manufacturer", logger.Error(err))
		return nil, mapError(err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *manufacturerRepo) Update(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE manufacturers SET name = ?, country = ?, picture_url = ? WHERE id = ?`,
		m.Name, m.Country, m.PictureURL, m.ID)
	if err != nil {
		r.log.Error("failed to update manufacturer", logger.Error(err))
		return nil, mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, storage.ErrNotFound
	}
	return m, nil
}

func (r *manufacturerRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM manufacturers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *manufacturerRepo) GetByID(ctx context.Context, id int64) (*models.Manufacturer, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var m models.Manufacturer
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, country, picture_url FROM manufacturers WHERE id = ?`, id,
	).Scan(&m.ID, &m.Name, &m.Country, &m.PictureURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.log.Error("failed to get manufacturer", logger.Error(err))
		return nil, err
	}
	return &m, nil
}

func (r *manufacturerRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.Manufacturer, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, country, picture_url
		FROM manufacturers
		WHERE name LIKE ? ESCAPE '\'
		ORDER BY id ASC
		LIMIT ? OFFSET ?`,
		storage.LikePattern(filter.Search), limitArg(filter.Limit), filter.Offset)
	if err != nil {
		r.log.Error("failed to list manufacturers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := []*models.Manufacturer{}
	for rows.Next() {
		var m models.Manufacturer
		if err := rows.Scan(&m.ID, &m.Name, &m.Country, &m.PictureURL); err != nil {
			return nil, err
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *manufacturerRepo) Count(ctx context.Context, search string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM manufacturers WHERE name LIKE ? ESCAPE '\'`,
		storage.LikePattern(search)).Scan(&count)
	return count, err
}
