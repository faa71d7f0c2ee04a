package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/eve-wallet-go/internal/infrastructure/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"", slog.LevelInfo, true},
		{"INFO", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"trace", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "json", slog.LevelInfo, false))

	logger.Debug("hidden")
	logger.Info("report built", "run_id", "abc")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "report built", entry["msg"])
	assert.Equal(t, "abc", entry["run_id"])
}

func TestNew_FileOutput(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "logs", "eve-wallet.log")
	cfg := config.LoggingConfig{Level: "warn", Format: "text", Output: "file", FilePath: path}

	// Act
	logger, err := New(cfg, true)
	require.NoError(t, err)
	logger.Debug("verbose wins")
	require.NoError(t, logger.Close())

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "verbose wins")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(config.LoggingConfig{Output: "syslog"}, false)
	assert.Error(t, err)

	_, err = New(config.LoggingConfig{Output: "file"}, false)
	assert.Error(t, err)

	_, err = New(config.LoggingConfig{Output: "stderr", Level: "loud"}, false)
	assert.Error(t, err)
}
