package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
	"taxiservice/storage"
)

type manufacturerRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewManufacturerRepo(db *pgxpool.Pool, log logger.ILogger) storage.IManufacturerStorage {
	return &manufacturerRepo{db: db, log: log}
}

func (r *manufacturerRepo) Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	query := `INSERT INTO manufacturers (name, country, picture_url) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRow(ctx, query, m.Name, m.Country, m.PictureURL).Scan(&m.ID)
	if err != nil {
		r.log.Error("failed to create manufacturer", logger.Error(err))
		return nil, mapError(err)
	}
	return m, nil
}

func (r *manufacturerRepo) Update(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	query := `UPDATE manufacturers SET name = $1, country = $2, picture_url = $3 WHERE id = $4`
	tag, err := r.db.Exec(ctx, query, m.Name, m.Country, m.PictureURL, m.ID)
	if err != nil {
		r.log.Error("failed to update manufacturer", logger.Error(err))
		return nil, mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return m, nil
}

func (r *manufacturerRepo) Delete(ctx context.Context, id int64) error {
	// cars has ON DELETE CASCADE so a manufacturer takes its cars with it
	tag, err := r.db.Exec(ctx, `DELETE FROM manufacturers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *manufacturerRepo) GetByID(ctx context.Context, id int64) (*models.Manufacturer, error) {
	var m models.Manufacturer
	query := `SELECT id, name, country, picture_url FROM manufacturers WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Country, &m.PictureURL)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get manufacturer", logger.Error(err))
		return nil, err
	}
	return &m, nil
}

func (r *manufacturerRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.Manufacturer, error) {
	query := `
		SELECT id, name, country, picture_url
		FROM manufacturers
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, storage.LikePattern(filter.Search), limitArg(filter.Limit), filter.Offset)
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
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM manufacturers WHERE name ILIKE $1 ESCAPE '\'`, storage.LikePattern(search)).Scan(&count)
	return count, err
}
