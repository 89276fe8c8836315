package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ywyher/survey/config"
)

func TestNew(t *testing.T) {
	a, err := New(config.Config{
		AppName:     "Survey",
		DatabaseURL: "sqlite::memory:",
		ServerPort:  config.DefaultServerPort,
	})
	require.NoError(t, err)

	assert.NotNil(t, a.Database.SQL)
	assert.NotNil(t, a.ResponseController)
	assert.NotNil(t, a.ResponseRepo)
	assert.Equal(t, "Survey", a.Middleware.Config.AppName)
	assert.NoError(t, a.Close())
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want error
	}{
		{
			name: "missing app name",
			cfg:  config.Config{DatabaseURL: "sqlite::memory:", ServerPort: 8288},
			want: config.ErrAppNameEmpty,
		},
		{
			name: "missing database url",
			cfg:  config.Config{AppName: "Survey", ServerPort: 8288},
			want: config.ErrDatabaseURLEmpty,
		},
		{
			name: "unsupported scheme",
			cfg:  config.Config{AppName: "Survey", DatabaseURL: "mysql://localhost/survey", ServerPort: 8288},
			want: config.ErrDatabaseSchemeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
