package logger

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "upper case warn", input: "WARN", want: slog.LevelWarn},
		{name: "warning alias", input: "warning", want: slog.LevelWarn},
		{name: "error", input: " error ", want: slog.LevelError},
		{name: "empty falls back to info", input: "", want: slog.LevelInfo},
		{name: "unknown falls back to info", input: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestLogger_ScopesAreValues(t *testing.T) {
	base := New("repositories")
	scoped := base.File("response_repository").Function("Create")

	assert.Equal(t, "", base.function)
	assert.Equal(t, "", base.file)
	assert.Equal(t, "Create", scoped.function)
	assert.Equal(t, "response_repository", scoped.file)
}

func TestLogger_Err_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := New("database").Function("New").Err("failed to open database", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to open database: connection refused", err.Error())
}

func TestLogger_Error_ReturnsMessage(t *testing.T) {
	err := New("database").Error("database url is empty", "driver", "postgres")
	assert.EqualError(t, err, "database url is empty")
}

func TestLogger_ErrMsg_IncludesScope(t *testing.T) {
	err := New("app").Function("validate").ErrMsg("database is nil")
	assert.EqualError(t, err, "app.validate: database is nil")
}
