// Package config provides environment-based configuration management
package config

import (
	"fmt"
	"os"
	"strconv"

	"gui-actions/internal/types"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Manager implements types.ConfigManager on top of environment variables,
// optionally seeded from a .env file.
type Manager struct {
	logConfig    types.LogConfig
	parserConfig types.ParserConfig
}

// NewManager creates a configuration manager, loading .env if present.
func NewManager() (types.ConfigManager, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Debug("No .env file loaded")
	}

	manager := &Manager{
		logConfig: types.LogConfig{
			Level:      getEnvOrDefault("LOG_LEVEL", "info"),
			Format:     getEnvOrDefault("LOG_FORMAT", "text"),
			EnableFile: parseBoolean(os.Getenv("LOG_ENABLE_FILE"), false),
			FilePath:   getEnvOrDefault("LOG_FILE_PATH", "./data/logs/app.log"),
		},
		parserConfig: types.ParserConfig{
			CoordinateMode:     types.CoordinateMode(getEnvOrDefault("COORDINATE_MODE", string(types.CoordinateModeStrict))),
			ActionAliasesFile:  os.Getenv("ACTION_ALIASES_FILE"),
			MaxScanBufferBytes: parseInteger(os.Getenv("MAX_SCAN_BUFFER_BYTES"), 256*1024),
		},
	}

	if err := manager.Validate(); err != nil {
		return nil, err
	}
	return manager, nil
}

// GetLogConfig returns the logging configuration.
func (m *Manager) GetLogConfig() types.LogConfig {
	return m.logConfig
}

// GetParserConfig returns the parser configuration.
func (m *Manager) GetParserConfig() types.ParserConfig {
	return m.parserConfig
}

// Validate checks the configuration for invalid values.
func (m *Manager) Validate() error {
	if _, err := logrus.ParseLevel(m.logConfig.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", m.logConfig.Level, err)
	}
	switch m.parserConfig.CoordinateMode {
	case types.CoordinateModeStrict, types.CoordinateModeLenient:
	default:
		return fmt.Errorf("invalid COORDINATE_MODE %q, must be %q or %q",
			m.parserConfig.CoordinateMode, types.CoordinateModeStrict, types.CoordinateModeLenient)
	}
	if m.parserConfig.MaxScanBufferBytes <= 0 {
		return fmt.Errorf("MAX_SCAN_BUFFER_BYTES must be positive, got %d", m.parserConfig.MaxScanBufferBytes)
	}
	return nil
}

// DisplayConfig logs the effective configuration at startup.
func (m *Manager) DisplayConfig() {
	logrus.WithFields(logrus.Fields{
		"log_level":       m.logConfig.Level,
		"log_format":      m.logConfig.Format,
		"coordinate_mode": m.parserConfig.CoordinateMode,
		"aliases_file":    m.parserConfig.ActionAliasesFile,
	}).Info("Configuration loaded")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolean(value string, defaultValue bool) bool {
	if value == "" {
		return defaultValue
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return result
}

func parseInteger(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}
