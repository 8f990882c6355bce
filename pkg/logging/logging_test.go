package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("no_output_is_nop", func(t *testing.T) {
		logger, err := New(Config{})
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(-1))
	})

	t.Run("json_file", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "logs", "chooser.log")
		logger, err := New(Config{Level: "debug", Format: "json", OutputPath: logPath})
		require.NoError(t, err)
		logger.Debug("hello")
		_ = logger.Sync()

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		var line map[string]any
		require.NoError(t, json.Unmarshal(data, &line))
		assert.Equal(t, "hello", line["msg"])
		assert.Equal(t, "debug", line["level"])
	})

	t.Run("invalid_level_defaults_to_info", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "chooser.log")
		logger, err := New(Config{Level: "chatty", Format: "console", OutputPath: logPath})
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(-1))
		assert.True(t, logger.Core().Enabled(0))
	})
}
