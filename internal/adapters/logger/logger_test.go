package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/loom/internal/adapters/logger"
	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New("info", logger.FormatConsole)
	l.SetOutput(&buf)

	l.Debug("hidden")
	l.Info("resolved fragment", "fragment", "app")
	l.Warn("optional fragment missing")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "resolved fragment")
	assert.Contains(t, out, `"fragment": "app"`)
	assert.Contains(t, out, "WARN")
}

func TestLogger_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New("debug", logger.FormatConsole)
	l.SetOutput(&buf)

	l.Debug("fetching", "path", "a.json")
	assert.Contains(t, buf.String(), "fetching")
}

func TestLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New("chatty", logger.FormatConsole)
	l.SetOutput(&buf)

	l.Debug("hidden")
	l.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_ErrorJSONCarriesMetadata(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New("info", logger.FormatJSON)
	l.SetOutput(&buf)

	base := zerr.With(zerr.New("fetch failed"), "status_code", 404)
	err := zerr.With(zerr.Wrap(base, "cannot load fragment"), "fragment", "app")
	l.Error(err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "cannot load fragment: fetch failed", entry["msg"])
	assert.Equal(t, "app", entry["fragment"])
	assert.InDelta(t, 404, entry["status_code"], 0)
}

func TestLogger_ErrorNilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New("info", logger.FormatConsole)
	l.SetOutput(&buf)

	l.Error(nil)
	assert.Empty(t, buf.String())
}

func TestErrorFields_OuterWins(t *testing.T) {
	inner := zerr.With(zerr.New("inner"), "key", "inner")
	outer := zerr.With(zerr.Wrap(inner, "outer"), "key", "outer")

	fields := logger.ErrorFields(outer)
	require.Len(t, fields, 1)
	assert.Equal(t, "outer", fields[0].String)
}

func TestErrorFields_PlainError(t *testing.T) {
	assert.Empty(t, logger.ErrorFields(errors.New("plain")))
}

func TestErrorFields_ThroughSentinelAndCause(t *testing.T) {
	cause := zerr.With(zerr.New("unexpected token"), "line", 3)
	err := zerr.With(domain.WrapCause(domain.ErrMalformedDocument, cause, "malformed document"), "path", "app.yaml")

	fields := logger.ErrorFields(err)
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"path", "line"}, keys)
}
