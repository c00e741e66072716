package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVICE_NAME", "APP_PORT", "DB_DRIVER", "PAGINATE_BY", "TOKEN_TTL", "ADMIN_ID"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	require.Equal(t, "taxiservice", cfg.ServiceName)
	require.Equal(t, 8080, cfg.AppPort)
	require.Equal(t, DriverPostgres, cfg.DBDriver)
	require.Equal(t, 5, cfg.PaginateBy)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, int64(0), cfg.AdminID)
	require.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("PAGINATE_BY", "10")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("ADMIN_ID", "42")
	t.Setenv("POSTGRES_USER", "fleet")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("POSTGRES_DB", "taxi")

	cfg := Load()
	require.Equal(t, 9000, cfg.AppPort)
	require.Equal(t, DriverSQLite, cfg.DBDriver)
	require.Equal(t, 10, cfg.PaginateBy)
	require.Equal(t, 90*time.Minute, cfg.TokenTTL)
	require.Equal(t, int64(42), cfg.AdminID)
	require.Equal(t, "postgres://fleet:secret@db:6543/taxi?sslmode=disable", cfg.PostgresURL())
}

func TestLoad_NonPositivePageSizeFallsBack(t *testing.T) {
	t.Setenv("PAGINATE_BY", "-3")

	cfg := Load()
	require.Equal(t, 5, cfg.PaginateBy)
}
