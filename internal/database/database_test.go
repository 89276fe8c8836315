package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ywyher/survey/config"
	"github.com/ywyher/survey/internal/logger"
	"gorm.io/gorm"
)

func memoryConfig() config.Config {
	return config.Config{
		AppName:     "Survey",
		DatabaseURL: "sqlite::memory:",
		ServerPort:  config.DefaultServerPort,
	}
}

func TestNew_SQLiteWithoutCache(t *testing.T) {
	db, err := New(memoryConfig())
	require.NoError(t, err)
	defer db.Close()

	assert.NotNil(t, db.SQL)
	assert.Equal(t, config.DriverSQLite, db.Driver)
	assert.Nil(t, db.Cache.Responses)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(config.Config{DatabaseURL: ""})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve database driver")
}

func TestInitializeSQLiteDB_Success(t *testing.T) {
	db := &DB{log: logger.New("test")}

	dbPath := filepath.Join(t.TempDir(), "nested", "survey.db")
	testConfig := config.Config{DatabaseURL: "sqlite:" + dbPath}

	err := db.initializeSQLiteDB(&gorm.Config{}, testConfig)
	require.NoError(t, err)
	defer db.Close()

	assert.NotNil(t, db.SQL)
	assert.FileExists(t, dbPath)
}

func TestInitializeSQLiteDB_EmptyPath(t *testing.T) {
	db := &DB{log: logger.New("test")}

	err := db.initializeSQLiteDB(&gorm.Config{}, config.Config{DatabaseURL: ""})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database path is empty")
}

func TestInitializeSQLiteDB_InMemoryUsesSingleConnection(t *testing.T) {
	db := &DB{log: logger.New("test")}

	err := db.initializeSQLiteDB(&gorm.Config{}, memoryConfig())
	require.NoError(t, err)
	defer db.Close()

	sqlDB, err := db.SQL.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestInitializeCacheDB_MissingConfig(t *testing.T) {
	db := &DB{log: logger.New("test")}

	err := db.initializeCacheDB(config.Config{DatabaseCacheAddress: "", DatabaseCachePort: 6379})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "address or port is empty")

	err = db.initializeCacheDB(config.Config{DatabaseCacheAddress: "localhost", DatabaseCachePort: 0})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "address or port is empty")
}

func TestClose_WithNilSQL(t *testing.T) {
	db := &DB{log: logger.New("test")}
	assert.NoError(t, db.Close())
}

func TestSQLWithContext(t *testing.T) {
	db, err := New(memoryConfig())
	require.NoError(t, err)
	defer db.Close()

	gormDB := db.SQLWithContext(context.Background())
	assert.NotNil(t, gormDB)
	assert.NotEqual(t, db.SQL, gormDB)
}

func TestFlushAllCaches_WithoutCache(t *testing.T) {
	db := &DB{log: logger.New("test")}
	assert.NoError(t, db.FlushAllCaches())
}
