package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var level = new(slog.LevelVar)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// SetLevel switches the process-wide log level. Unknown names fall back to info.
func SetLevel(name string) {
	level.Set(ParseLevel(name))
}

func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger is a scoped slog wrapper. Scopes are values, so File and Function
// never mutate the receiver.
type Logger struct {
	pkg      string
	file     string
	function string
}

func New(pkg string) Logger {
	return Logger{pkg: pkg}
}

func (l Logger) File(file string) Logger {
	l.file = file
	return l
}

func (l Logger) Function(function string) Logger {
	l.function = function
	return l
}

func (l Logger) attrs(args []any) []any {
	scoped := make([]any, 0, len(args)+6)
	scoped = append(scoped, "package", l.pkg)
	if l.file != "" {
		scoped = append(scoped, "file", l.file)
	}
	if l.function != "" {
		scoped = append(scoped, "function", l.function)
	}
	return append(scoped, args...)
}

func (l Logger) scope() string {
	parts := []string{l.pkg}
	if l.function != "" {
		parts = append(parts, l.function)
	}
	return strings.Join(parts, ".")
}

func (l Logger) Debug(msg string, args ...any) {
	slog.Debug(msg, l.attrs(args)...)
}

func (l Logger) Info(msg string, args ...any) {
	slog.Info(msg, l.attrs(args)...)
}

func (l Logger) Warn(msg string, args ...any) {
	slog.Warn(msg, l.attrs(args)...)
}

// Er logs an error without returning it.
func (l Logger) Er(msg string, err error, args ...any) {
	slog.Error(msg, l.attrs(append(args, "error", err))...)
}

// Err logs an error and returns it wrapped with msg.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs msg at error level and returns it as a new error.
func (l Logger) Error(msg string, args ...any) error {
	slog.Error(msg, l.attrs(args)...)
	return errors.New(msg)
}

func (l Logger) ErMsg(msg string) {
	slog.Error(msg, l.attrs(nil)...)
}

// ErrMsg logs msg and returns an error prefixed with the logger scope.
func (l Logger) ErrMsg(msg string) error {
	l.ErMsg(msg)
	return fmt.Errorf("%s: %s", l.scope(), msg)
}

// Handler exposes the process handler for libraries that log through *log.Logger.
func Handler() slog.Handler {
	return slog.Default().Handler()
}
