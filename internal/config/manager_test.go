package config

import (
	"testing"

	"gui-actions/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerDefaults(t *testing.T) {
	manager, err := NewManager()
	require.NoError(t, err)

	logConfig := manager.GetLogConfig()
	assert.Equal(t, "info", logConfig.Level)
	assert.Equal(t, "text", logConfig.Format)
	assert.False(t, logConfig.EnableFile)

	parserConfig := manager.GetParserConfig()
	assert.Equal(t, types.CoordinateModeStrict, parserConfig.CoordinateMode)
	assert.Equal(t, 256*1024, parserConfig.MaxScanBufferBytes)
}

func TestNewManagerFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("COORDINATE_MODE", "lenient")
	t.Setenv("MAX_SCAN_BUFFER_BYTES", "1024")

	manager, err := NewManager()
	require.NoError(t, err)

	assert.Equal(t, "debug", manager.GetLogConfig().Level)
	assert.Equal(t, "json", manager.GetLogConfig().Format)
	assert.Equal(t, types.CoordinateModeLenient, manager.GetParserConfig().CoordinateMode)
	assert.Equal(t, 1024, manager.GetParserConfig().MaxScanBufferBytes)
}

func TestNewManagerInvalidValues(t *testing.T) {
	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		_, err := NewManager()
		assert.Error(t, err)
	})

	t.Run("bad coordinate mode", func(t *testing.T) {
		t.Setenv("COORDINATE_MODE", "fuzzy")
		_, err := NewManager()
		assert.Error(t, err)
	})

	t.Run("unparseable int falls back to default", func(t *testing.T) {
		t.Setenv("MAX_SCAN_BUFFER_BYTES", "lots")
		manager, err := NewManager()
		require.NoError(t, err)
		assert.Equal(t, 256*1024, manager.GetParserConfig().MaxScanBufferBytes)
	})
}
