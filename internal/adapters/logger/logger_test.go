package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/baker/internal/adapters/logger"
)

func TestLogger_WritesMessageAndAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelInfo)

	log.Info("build finished", "build_type", "debug", "recompiled", true)

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="build finished"`)
	assert.Contains(t, out, "build_type=debug")
	assert.Contains(t, out, "recompiled=true")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelWarn)

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, slog.LevelInfo)

	log.Error(errors.New("linker exploded"))

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "linker exploded")
}
