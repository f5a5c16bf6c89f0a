package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewLogger_ProductionWritesJSON(t *testing.T) {
	var dev, prod bytes.Buffer
	logger := newLogger(&dev, &prod, "production", slog.LevelInfo)

	logger.Info("attendance recorded", slog.String("team_id", "t-1"))
	logger.Debug("hidden")

	assert.Zero(t, dev.Len())
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(prod.Bytes()), &line))
	assert.Contains(t, prod.String(), "attendance recorded")
	assert.Equal(t, AppName, line["app"])
	assert.Equal(t, "t-1", line["team_id"])
}

func TestNewLogger_DevelopmentUsesTint(t *testing.T) {
	var dev, prod bytes.Buffer
	logger := newLogger(&dev, &prod, "development", slog.LevelDebug)

	logger.Debug("verbose detail")

	assert.Zero(t, prod.Len())
	assert.Contains(t, dev.String(), "verbose detail")
}
