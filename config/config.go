package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultServerPort = 8288
	DefaultCacheTTL   = 10 * time.Minute
)

var (
	ErrAppNameEmpty          = errors.New("APP_NAME must not be empty")
	ErrDatabaseURLEmpty      = errors.New("DATABASE_URL must not be empty")
	ErrDatabaseURLInvalid    = errors.New("DATABASE_URL is not a valid URL")
	ErrDatabaseSchemeUnknown = errors.New("DATABASE_URL scheme is not supported")
	ErrServerPortInvalid     = errors.New("SERVER_PORT must be between 1 and 65535")
)

var schemeDrivers = map[string]string{
	"postgres":   DriverPostgres,
	"postgresql": DriverPostgres,
	"sqlite":     DriverSQLite,
}

type Config struct {
	AppName     string
	DatabaseURL string
	Environment string
	LogLevel    string
	ServerPort  int

	DatabaseCacheAddress string
	DatabaseCachePort    int
	DatabaseCacheTTL     time.Duration
}

// InitConfig reads .env (when present) and the process environment.
func InitConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_NAME", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", DefaultServerPort)
	v.SetDefault("CACHE_ADDRESS", "")
	v.SetDefault("CACHE_PORT", 6379)
	v.SetDefault("CACHE_TTL", DefaultCacheTTL)
	v.AutomaticEnv()
	return v
}

// FromViper builds a validated Config from an already populated viper instance.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppName:              strings.TrimSpace(v.GetString("APP_NAME")),
		DatabaseURL:          strings.TrimSpace(v.GetString("DATABASE_URL")),
		Environment:          v.GetString("ENVIRONMENT"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		ServerPort:           v.GetInt("SERVER_PORT"),
		DatabaseCacheAddress: v.GetString("CACHE_ADDRESS"),
		DatabaseCachePort:    v.GetInt("CACHE_PORT"),
		DatabaseCacheTTL:     v.GetDuration("CACHE_TTL"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.AppName == "" {
		return ErrAppNameEmpty
	}
	if c.DatabaseURL == "" {
		return ErrDatabaseURLEmpty
	}
	if _, err := c.DatabaseDriver(); err != nil {
		return err
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return ErrServerPortInvalid
	}
	return nil
}

// DatabaseDriver reports which gorm dialector DATABASE_URL selects.
func (c Config) DatabaseDriver() (string, error) {
	u, err := url.Parse(c.DatabaseURL)
	if err != nil || u.Scheme == "" {
		return "", ErrDatabaseURLInvalid
	}

	driver, ok := schemeDrivers[strings.ToLower(u.Scheme)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrDatabaseSchemeUnknown, u.Scheme)
	}

	if driver == DriverPostgres && u.Host == "" {
		return "", ErrDatabaseURLInvalid
	}
	if driver == DriverSQLite && sqlitePath(u) == "" {
		return "", ErrDatabaseURLInvalid
	}

	return driver, nil
}

// DatabaseDSN returns the connection string handed to the dialector. Postgres
// URLs pass through untouched; sqlite URLs are reduced to a file path or
// ":memory:".
func (c Config) DatabaseDSN() (string, error) {
	driver, err := c.DatabaseDriver()
	if err != nil {
		return "", err
	}
	if driver == DriverPostgres {
		return c.DatabaseURL, nil
	}

	u, _ := url.Parse(c.DatabaseURL)
	return sqlitePath(u), nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// sqlitePath accepts sqlite::memory:, sqlite:relative/file.db and
// sqlite:///absolute/file.db.
func sqlitePath(u *url.URL) string {
	if u.Opaque != "" {
		return u.Opaque
	}
	if u.Host != "" {
		return filepath.Join(u.Host, u.Path)
	}
	return u.Path
}
