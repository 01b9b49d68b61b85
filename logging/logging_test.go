package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePath(t *testing.T) {
	sessionStart := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	tests := []struct {
		name    string
		logsDir string
		want    string
	}{
		{
			name:    "basic path",
			logsDir: "logs",
			want:    filepath.Join("logs", "tankarena.20260212_213836.log"),
		},
		{
			name:    "relative path with dot",
			logsDir: "./logs",
			want:    filepath.Join(".", "logs", "tankarena.20260212_213836.log"),
		},
		{
			name:    "absolute path",
			logsDir: filepath.Join("/var", "log", "tankarena"),
			want:    filepath.Join("/var", "log", "tankarena", "tankarena.20260212_213836.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilePath(tt.logsDir, "tankarena", sessionStart))
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"invalid", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestNew_FansOutAndFilters(t *testing.T) {
	var console, file bytes.Buffer
	log := New(Options{Level: "warn", Console: &console, NoColor: true, File: &file})

	log.Info().Msg("quiet")
	log.Warn().Str("session", "abc").Msg("loud")

	assert.NotContains(t, console.String(), "quiet")
	assert.Contains(t, console.String(), "loud")
	assert.Contains(t, console.String(), "session=abc")
	assert.NotContains(t, file.String(), "quiet")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(file.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "loud", entry["message"])
	assert.Equal(t, "abc", entry["session"])

	ts, err := time.Parse(time.RFC3339, entry["time"].(string))
	require.NoError(t, err)
	_, offset := ts.Zone()
	assert.Zero(t, offset, "timestamps are UTC")
}

func TestNew_NoOutputs(t *testing.T) {
	log := New(Options{Level: "debug"})
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}

func TestOpenFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	f, err := OpenFile(dir, "arena", start)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	_, err = f.WriteString("hello\n")
	require.NoError(t, err)

	data, err := os.ReadFile(FilePath(dir, "arena", start))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}
