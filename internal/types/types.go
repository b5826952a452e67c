// Package types defines common types used across the application
package types

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetLogConfig() LogConfig
	GetParserConfig() ParserConfig
	Validate() error
	DisplayConfig()
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level      string `json:"level"`
	Format     string `json:"format"`
	EnableFile bool   `json:"enable_file"`
	FilePath   string `json:"file_path"`
}

// CoordinateMode selects how non-numeric coordinate tokens are treated.
type CoordinateMode string

const (
	// CoordinateModeStrict rejects non-numeric tokens in coordinate text.
	CoordinateModeStrict CoordinateMode = "strict"

	// CoordinateModeLenient coerces non-numeric tokens to 0 (legacy behavior).
	CoordinateModeLenient CoordinateMode = "lenient"
)

// ParserConfig represents parser configuration
type ParserConfig struct {
	// CoordinateMode applies to the standardizer's coordinate parsing.
	CoordinateMode CoordinateMode `json:"coordinate_mode"`

	// ActionAliasesFile is an optional YAML file mapping legacy action
	// names to canonical ones. Empty means no aliasing.
	ActionAliasesFile string `json:"action_aliases_file"`

	// MaxScanBufferBytes caps the SSE reader's line buffer.
	MaxScanBufferBytes int `json:"max_scan_buffer_bytes"`
}
