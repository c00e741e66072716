package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	msqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/mattn/go-sqlite3"

	"taxiservice/config"
	"taxiservice/migrations"
	"taxiservice/pkg/logger"
	"taxiservice/storage"
)

const queryTimeout = 3 * time.Second

type Store struct {
	db  *sql.DB
	log logger.ILogger
}

func New(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.IStorage, error) {
	store, err := Open(ctx, cfg.SQLitePath, log)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Open accepts a file path or a "file:" URI such as
// "file:name?mode=memory&cache=shared" and applies pending migrations.
func Open(ctx context.Context, dsn string, log logger.ILogger) (*Store, error) {
	if dsn == "" {
		dsn = "taxiservice.db"
	}
	db, err := sql.Open("sqlite3", withForeignKeys(dsn))
	if err != nil {
		log.Error("failed to open SQLite", logger.Error(err))
		return nil, err
	}
	// one connection keeps in-memory databases alive and serialises writers
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		log.Error("failed to ping SQLite", logger.Error(err))
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys=ON`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrateUp(db, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("SQLite connected", logger.String("dsn", dsn))

	return &Store{db: db, log: log}, nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func migrateUp(db *sql.DB, log logger.ILogger) error {
	driver, err := msqlite.WithInstance(db, &msqlite.Config{})
	if err != nil {
		log.Error("migration driver error", logger.Error(err))
		return err
	}
	src, err := iofs.New(migrations.SQLite, "sqlite")
	if err != nil {
		log.Error("migration source error", logger.Error(err))
		return err
	}
	// m.Close would close db as well, the store owns it
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		log.Error("migration init error", logger.Error(err))
		return err
	}
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
	if err := s.db.Close(); err != nil {
		s.log.Warning("failed to close SQLite", logger.Error(err))
	}
}

func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, table := range []string{"car_drivers", "cars", "drivers", "manufacturers"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence`); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Store) Manufacturer() storage.IManufacturerStorage {
	return NewManufacturerRepo(s.db, s.log)
}
func (s *Store) Car() storage.ICarStorage       { return NewCarRepo(s.db, s.log) }
func (s *Store) Driver() storage.IDriverStorage { return NewDriverRepo(s.db, s.log) }

// limitArg maps "no limit" onto LIMIT -1.
func limitArg(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func mapError(err error) error {
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) && sqErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return storage.ErrAlreadyExists
	}
	return err
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

type scanner interface {
	Scan(dest ...any) error
}
