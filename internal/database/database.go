package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/valkey-io/valkey-go"
	"github.com/ywyher/survey/config"
	logg "github.com/ywyher/survey/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const memoryDSN = ":memory:"

type CacheClient valkey.Client

type Cache struct {
	Responses CacheClient
}

type DB struct {
	SQL      *gorm.DB
	Cache    Cache
	Driver   string
	CacheTTL time.Duration
	log      logg.Logger
}

func New(config config.Config) (DB, error) {
	log := logg.New("database").Function("New")

	log.Info("Initializing database")
	db := &DB{log: log, CacheTTL: config.DatabaseCacheTTL}

	err := db.initializeDB(config)
	if err != nil {
		return DB{}, log.Err("failed to initialize database", err)
	}

	if config.DatabaseCacheAddress == "" {
		log.Info("Cache address not configured, response list cache disabled")
		return *db, nil
	}

	err = db.initializeCacheDB(config)
	if err != nil {
		_ = db.Close()
		return DB{}, log.Err("failed to initialize cache database", err)
	}

	return *db, nil
}

func (s *DB) initializeDB(cfg config.Config) error {
	log := s.log.Function("initializeDB")

	logLevel := logger.Warn
	if logg.ParseLevel(cfg.LogLevel) == slog.LevelDebug {
		logLevel = logger.Info
	}

	gormLogger := logger.New(
		slog.NewLogLogger(logg.Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      cfg.IsProduction(),
			Colorful:                  false,
		},
	)

	gormConfig := &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	}

	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return log.Err("failed to resolve database driver", err)
	}
	s.Driver = driver

	if driver == config.DriverPostgres {
		return s.initializePostgresDB(gormConfig, cfg)
	}
	return s.initializeSQLiteDB(gormConfig, cfg)
}

func (s *DB) initializePostgresDB(gormConfig *gorm.Config, config config.Config) error {
	log := s.log.Function("initializePostgresDB")

	dsn, err := config.DatabaseDSN()
	if err != nil {
		return log.Err("failed to build postgres dsn", err)
	}

	log.Info("Connecting with GORM", "driver", "postgres")
	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return log.Err("failed to open database with GORM", err)
	}

	return s.finalizeConnection(db, 10, 50)
}

func (s *DB) initializeSQLiteDB(gormConfig *gorm.Config, cfg config.Config) error {
	log := s.log.Function("initializeSQLiteDB")

	dbPath, err := cfg.DatabaseDSN()
	if err != nil || dbPath == "" {
		return log.Error("database path is empty", "databaseURL", cfg.DatabaseURL)
	}

	if dbPath != memoryDSN {
		dir := filepath.Dir(dbPath)
		log.Info("Creating database directory", "dir", dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return log.Err("failed to create database directory", err, "dir", dir)
		}
	}

	log.Info("Connecting with GORM", "driver", "sqlite", "dbPath", dbPath)
	db, err := gorm.Open(sqlite.Open(dbPath), gormConfig)
	if err != nil {
		return log.Err("failed to open database with GORM", err)
	}

	// every pooled connection to :memory: would get its own empty database
	maxOpen := 100
	if dbPath == memoryDSN {
		maxOpen = 1
	}

	s.Driver = config.DriverSQLite
	return s.finalizeConnection(db, 10, maxOpen)
}

func (s *DB) finalizeConnection(db *gorm.DB, maxIdle, maxOpen int) error {
	log := s.log.Function("finalizeConnection")

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return log.Err("failed to ping database through GORM", err)
	}

	log.Info("Successfully connected with GORM")
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	s.SQL = db

	return nil
}

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")

	if config.DatabaseCacheAddress == "" || config.DatabaseCachePort == 0 {
		return log.Error(
			"cache address or port is empty",
			"address", config.DatabaseCacheAddress,
			"port", config.DatabaseCachePort,
		)
	}

	address := fmt.Sprintf("%s:%d", config.DatabaseCacheAddress, config.DatabaseCachePort)
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{address},
		SelectDB:     0,
		DisableCache: true,
	})
	if err != nil {
		return log.Err("failed to connect to cache", err, "address", address)
	}

	s.Cache.Responses = client
	log.Info("Connected to cache", "address", address)

	return nil
}

func (s *DB) Close() (err error) {
	if s.SQL != nil {
		sqlDB, dbErr := s.SQL.DB()
		if dbErr == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				err = s.log.Function("Close").Err("failed to close database", closeErr)
			}
		}
	}

	if s.Cache.Responses != nil {
		s.Cache.Responses.Close()
	}

	return err
}

func (s *DB) SQLWithContext(ctx context.Context) *gorm.DB {
	return s.SQL.WithContext(ctx)
}

func (s *DB) FlushAllCaches() error {
	log := s.log.Function("FlushAllCaches")

	if s.Cache.Responses == nil {
		log.Info("No cache configured, nothing to flush")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := s.Cache.Responses
	if err := client.Do(ctx, client.B().Flushdb().Build()).Error(); err != nil {
		return log.Err("failed to flush cache database", err, "cache", "Responses")
	}

	log.Info("Successfully flushed cache database", "cache", "Responses")
	return nil
}
