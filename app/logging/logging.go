// Package logging builds the slog loggers used across the application and
// adapts them to the badger logger interface.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// ParseLevel maps a level name to a slog.Level. Unknown names yield info.
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

// New returns a logger writing to w. format is "json" or "text".
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// badgerLogger forwards badger's printf style logging to slog.
type badgerLogger struct {
	logger *slog.Logger
}

// Badger adapts logger to badger.Logger. Badger's info output is chatty, so
// it is logged at debug level.
func Badger(logger *slog.Logger) badger.Logger {
	return &badgerLogger{logger: logger.With("component", "badger")}
}

func (l *badgerLogger) log(level slog.Level, format string, args ...interface{}) {
	if !l.logger.Enabled(context.Background(), level) {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	l.logger.Log(context.Background(), level, msg)
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log(slog.LevelError, format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log(slog.LevelWarn, format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log(slog.LevelDebug, format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log(slog.LevelDebug, format, args...)
}
