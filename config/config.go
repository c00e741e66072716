package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	ServiceName string
	LoggerLevel string
	LogFile     string

	AppPort int

	DBDriver string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	SQLitePath string

	SessionSecret string
	JWTSecret     string
	TokenTTL      time.Duration

	PaginateBy int

	AdminBotToken string
	AdminID       int64
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "taxiservice"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))
	cfg.LogFile = cast.ToString(getOrReturnDefault("LOG_FILE", ""))
	cfg.AppPort = cast.ToInt(getOrReturnDefault("APP_PORT", 8080))

	cfg.DBDriver = cast.ToString(getOrReturnDefault("DB_DRIVER", DriverPostgres))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "1234"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "taxiservice"))

	cfg.SQLitePath = cast.ToString(getOrReturnDefault("SQLITE_PATH", "taxiservice.db"))

	cfg.SessionSecret = cast.ToString(getOrReturnDefault("SESSION_SECRET", "dev-session-secret"))
	cfg.JWTSecret = cast.ToString(getOrReturnDefault("JWT_SECRET", "dev-jwt-secret"))
	cfg.TokenTTL = cast.ToDuration(getOrReturnDefault("TOKEN_TTL", "24h"))

	cfg.PaginateBy = cast.ToInt(getOrReturnDefault("PAGINATE_BY", 5))
	if cfg.PaginateBy <= 0 {
		cfg.PaginateBy = 5
	}

	cfg.AdminBotToken = cast.ToString(getOrReturnDefault("ADMIN_BOT_TOKEN", ""))
	cfg.AdminID = cast.ToInt64(getOrReturnDefault("ADMIN_ID", 0))

	return cfg
}

// PostgresURL is shared by the pgx pool and the migration driver.
func (c Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
	)
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.AppPort)
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
