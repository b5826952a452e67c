package parser

import (
	"strings"

	app_errors "gui-actions/internal/errors"
	"gui-actions/internal/types"
)

// requiredParamMarkers are the substrings of a raw parameter name that make a
// non-empty value mandatory.
var requiredParamMarkers = []string{"start", "end", "point", "key", "url", "name"}

// Standardizer maps rough actions to canonical actions. The coordinate mode
// selects strict or lenient number parsing; aliases optionally rename legacy
// action types.
type Standardizer struct {
	coordinateMode types.CoordinateMode
	aliases        map[string]string
}

// NewStandardizer creates a Standardizer. A nil alias map disables renaming.
func NewStandardizer(mode types.CoordinateMode, aliases map[string]string) *Standardizer {
	if mode == "" {
		mode = types.CoordinateModeStrict
	}
	return &Standardizer{coordinateMode: mode, aliases: aliases}
}

// parseCoordinatesForMode dispatches to the strict or lenient normalizer.
func (s *Standardizer) parseCoordinatesForMode(text string) (*types.Coordinate, error) {
	if s.coordinateMode == types.CoordinateModeLenient {
		return ParseCoordinatesLenient(text)
	}
	return ParseCoordinates(text)
}

// standardInputName maps a raw parameter name to its canonical input name.
// Returns "" when the name has no coordinate meaning and passes through.
func standardInputName(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "start"):
		return "start"
	case strings.Contains(lower, "end"):
		return "end"
	case strings.Contains(lower, "point"):
		return "point"
	}
	return ""
}

// isRequiredParam reports whether an empty value for this parameter name is a
// hard failure.
func isRequiredParam(raw string) bool {
	lower := strings.ToLower(raw)
	for _, marker := range requiredParamMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// StandardizeAction converts a rough action into its canonical form:
// coordinate-bearing parameters are renamed and parsed, required parameters
// are validated, and a lone start input is renamed to point.
func (s *Standardizer) StandardizeAction(rough *types.RoughAction) (*types.Action, error) {
	actionType := rough.Type
	if alias, ok := s.aliases[actionType]; ok {
		actionType = alias
	}

	inputs := make(map[string]types.ActionInput, len(rough.Params))
	for name, value := range rough.Params {
		trimmed := strings.TrimSpace(value)

		// Required-field validation happens before coordinate parsing so the
		// error names the original parameter, not a normalizer failure.
		if trimmed == "" && isRequiredParam(name) {
			return nil, app_errors.NewMissingParameter(name, actionType)
		}

		if canonical := standardInputName(name); canonical != "" {
			coord, err := s.parseCoordinatesForMode(trimmed)
			if err != nil {
				return nil, err
			}
			inputs[canonical] = types.ActionInput{Coordinate: coord}
			continue
		}
		inputs[name] = types.ActionInput{Text: trimmed}
	}

	// A start without an end is not a drag; it addresses a single point.
	if start, ok := inputs["start"]; ok {
		if _, hasEnd := inputs["end"]; !hasEnd {
			if _, hasPoint := inputs["point"]; !hasPoint {
				inputs["point"] = start
				delete(inputs, "start")
			}
		}
	}

	return &types.Action{Type: actionType, Inputs: inputs}, nil
}
