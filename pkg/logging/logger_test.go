package logging

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	// Unknown names default to info.
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
}

func TestGetSessionID_StableAcrossCalls(t *testing.T) {
	first := GetSessionID()
	second := GetSessionID()

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

// One test owns all file-logger assertions: the log directory is latched on
// first use, so spreading file loggers across tests would couple them.
func TestLogger_FileOutput(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	logger, err := NewLogger("browser", LevelInfo)
	require.NoError(t, err)
	defer logger.Close()

	require.NotEmpty(t, logger.LogPath())
	assert.Equal(t, GetSessionID(), logger.SessionID())

	logger.Debugf("below threshold %d", 1)
	logger.Infof("navigating to %s", "https://example.com")
	logger.Errorf("capture failed: %s", "timeout")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)
	content := string(data)

	assert.NotContains(t, content, "below threshold")
	assert.Contains(t, content, "[browser] [INFO] navigating to https://example.com")
	assert.Contains(t, content, "[browser] [ERROR] capture failed: timeout")
}

func TestLogger_FallbackNeverPanics(t *testing.T) {
	logger := newFallbackLogger("tools", LevelWarn, os.ErrPermission)

	assert.Empty(t, logger.LogPath())
	logger.Infof("filtered out")
	logger.Warnf("kept")
}

func TestLevelNames_Complete(t *testing.T) {
	for _, lvl := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		name, ok := levelNames[lvl]
		assert.True(t, ok)
		assert.False(t, strings.Contains(name, " "))
	}
}
