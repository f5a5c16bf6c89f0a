// Package logging builds the process logger. Development gets colored tint output
// on stderr; every other environment gets JSON in the ECS schema used by the
// request logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/lmittmann/tint"
)

const (
	AppName    = "workledger"
	AppVersion = "v1.0.0"
)

// New returns a logger for env at the given LOG_LEVEL value.
func New(env string, level string) *slog.Logger {
	return newLogger(os.Stderr, os.Stdout, env, ParseLevel(level))
}

func newLogger(devOut, prodOut io.Writer, env string, level slog.Level) *slog.Logger {
	var handler slog.Handler
	if env == "development" || env == "local" {
		handler = tint.NewHandler(devOut, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	} else {
		logFormat := httplog.SchemaECS.Concise(false)
		handler = slog.NewJSONHandler(prodOut, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: logFormat.ReplaceAttr,
		})
	}

	return slog.New(handler).With(
		slog.String("app", AppName),
		slog.String("version", AppVersion),
		slog.String("env", env),
	)
}

// ParseLevel maps debug, warn and error to their slog levels. Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
