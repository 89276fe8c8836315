package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ywyher/survey/cmd/migration/initialize"
	"github.com/ywyher/survey/cmd/migration/seed"
	"github.com/ywyher/survey/config"
	"github.com/ywyher/survey/internal/app"
	"github.com/ywyher/survey/internal/logger"
)

func TestInitializeThenSeed(t *testing.T) {
	a, err := app.New(config.Config{
		AppName:     "Survey",
		DatabaseURL: "sqlite::memory:",
		ServerPort:  config.DefaultServerPort,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	log := logger.New("migration_test")
	require.NoError(t, initialize.InitializeTables(a.Database, log))
	// a second run has nothing left to apply
	require.NoError(t, initialize.InitializeTables(a.Database, log))

	inserted, err := seed.Seed(context.Background(), a.ResponseController, 12, 5, log)
	require.NoError(t, err)
	assert.Equal(t, 12, inserted)

	count, err := a.ResponseRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
}
