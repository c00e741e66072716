package postgres

import (
	"context"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxiservice/config"
	"taxiservice/migrations"
	"taxiservice/pkg/logger"
	"taxiservice/storage"
)

type Store struct {
	pool *pgxpool.Pool
	log  logger.ILogger
}

func New(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.IStorage, error) {
	store, err := Open(ctx, cfg.PostgresURL(), log)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Open connects to url and applies pending migrations.
func Open(ctx context.Context, url string, log logger.ILogger) (*Store, error) {
	// 🔹 Connection pool
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Error("error while parsing Postgres config", logger.Error(err))
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("failed to connect Postgres", logger.Error(err))
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		log.Error("failed to ping Postgres", logger.Error(err))
		pool.Close()
		return nil, err
	}

	// 🔹 Migrations
	if err := migrateUp(url, log); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("Postgres connected")

	return &Store{
		pool: pool,
		log:  log,
	}, nil
}

func migrateUp(url string, log logger.ILogger) error {
	src, err := iofs.New(migrations.Postgres, "postgres")
	if err != nil {
		log.Error("migration source error", logger.Error(err))
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		log.Error("migration init error", logger.Error(err))
		return err
	}
	defer m.Close()

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return nil
		}
		log.Error("migration up error", logger.Error(err))
		return err
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Reset(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "TRUNCATE TABLE car_drivers, cars, drivers, manufacturers RESTART IDENTITY CASCADE")
	return err
}

func (s *Store) Manufacturer() storage.IManufacturerStorage {
	return NewManufacturerRepo(s.pool, s.log)
}
func (s *Store) Car() storage.ICarStorage       { return NewCarRepo(s.pool, s.log) }
func (s *Store) Driver() storage.IDriverStorage { return NewDriverRepo(s.pool, s.log) }

// limitArg maps "no limit" onto LIMIT NULL.
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return storage.ErrAlreadyExists
	}
	return err
}
