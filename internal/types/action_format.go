package types

// ActionFormat represents the textual dialect a model message uses to carry
// its actions. The detection chain tries dialects in a fixed priority order.
type ActionFormat string

const (
	// ActionFormatSeedXML represents the pure-tag XML dialect
	// (<seed:tool_call> / <answer> structures).
	ActionFormatSeedXML ActionFormat = "seed_xml"

	// ActionFormatOmni represents the tag dialect using <computer_env> or a
	// complete <answer> pair.
	ActionFormatOmni ActionFormat = "omni"

	// ActionFormatThoughtAction represents the legacy "Thought:/Action:"
	// labeled dialect.
	ActionFormatThoughtAction ActionFormat = "thought_action"

	// ActionFormatReflection represents the "Reflection:/Action_Summary:"
	// dialect.
	ActionFormatReflection ActionFormat = "reflection_summary"

	// ActionFormatO1 represents the bracketed "<Thought>" dialect.
	ActionFormatO1 ActionFormat = "o1"

	// ActionFormatFallback represents the last-resort bare call extraction.
	ActionFormatFallback ActionFormat = "fallback"

	// ActionFormatUnknown represents an undetected dialect.
	ActionFormatUnknown ActionFormat = "unknown"
)

// String returns the string representation of ActionFormat
func (f ActionFormat) String() string {
	return string(f)
}

// IsValid checks if the action format is valid (not unknown)
func (f ActionFormat) IsValid() bool {
	return f != ActionFormatUnknown && f != ""
}

// BuildsActionsDirectly returns true if the dialect's extractor produces
// canonical actions itself, bypassing the rough-action stage.
func (f ActionFormat) BuildsActionsDirectly() bool {
	return f == ActionFormatSeedXML
}
