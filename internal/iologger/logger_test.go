package iologger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gntnrs/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		inp string
		out slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, v := range tests {
		assert.Equal(t, v.out, parseLevel(v.inp), v.inp)
	}
}

func TestHandler(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	lg := slog.New(handler(&buf, config.LogConfig{Format: "json", Level: "warn"}))
	lg.Info("skipped")
	lg.Warn("kept", "names", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal("kept", rec["msg"])
	assert.Equal(float64(3), rec["names"])

	buf.Reset()
	lg = slog.New(handler(&buf, config.LogConfig{Format: "text", Level: "debug"}))
	lg.Debug("stage", "name", "exact")
	assert.Contains(buf.String(), "name=exact")

	buf.Reset()
	lg = slog.New(handler(&buf, config.LogConfig{Format: "tint", Level: "info"}))
	lg.Debug("skipped")
	lg.Info("fuzzy stage", "names", 12)
	assert.NotContains(buf.String(), "skipped")
	assert.Contains(buf.String(), "fuzzy stage")
	assert.Contains(buf.String(), "12")
}

func TestInitFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := t.TempDir()
	err := Init(dir, config.LogConfig{
		Format: "json", Level: "info", Destination: "file",
	})
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, LogFile))
	assert.NoError(t, err)

	err = Init(filepath.Join(dir, "missing"), config.LogConfig{Destination: "file"})
	assert.Error(t, err)
}
