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
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNewLogger_WritesJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(NewLogger("info", &buf), "listing")

	logger.Debug("hidden")
	logger.Warn("refresh failed", "error", "boom")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "refresh failed", rec["msg"])
	assert.Equal(t, "listing", rec["component"])
	assert.Equal(t, "boom", rec["error"])
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "****", SanitizeToken("short"))
	assert.Equal(t, "abcd...wxyz", SanitizeToken("abcdefghijklmnopqrstuvwxyz"))
}
