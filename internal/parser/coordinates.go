package parser

import (
	"math"
	"strconv"
	"strings"

	app_errors "gui-actions/internal/errors"
	"gui-actions/internal/types"
	"gui-actions/internal/utils"
)

// coordinateDelimiters are stripped before tokenizing coordinate text. Models
// wrap the same numbers in whichever bracket dialect they were trained on.
var coordinateDelimiters = []string{
	"<point>", "</point>",
	"<bbox>", "</bbox>",
	"<|box_start|>", "<|box_end|>",
	"(", ")", "[", "]",
}

// ParseCoordinates parses loose coordinate text into a canonical point plus
// bounding box. Two numbers produce a degenerate point-as-box, four or more
// produce a box from the first four with corner order normalized. Any
// non-numeric or non-finite token is an error.
func ParseCoordinates(text string) (*types.Coordinate, error) {
	return parseCoordinates(text, false)
}

// ParseCoordinatesLenient behaves like ParseCoordinates but coerces
// non-numeric tokens to 0 instead of failing. Some older call formats emit
// placeholder tokens inside otherwise valid coordinate lists.
func ParseCoordinatesLenient(text string) (*types.Coordinate, error) {
	return parseCoordinates(text, true)
}

func parseCoordinates(text string, lenient bool) (*types.Coordinate, error) {
	stripped := text
	for _, d := range coordinateDelimiters {
		stripped = strings.ReplaceAll(stripped, d, " ")
	}
	stripped = strings.ReplaceAll(stripped, ",", " ")

	tokens := strings.Fields(stripped)
	nums := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			if !lenient {
				return nil, app_errors.NewParseError(app_errors.ErrInvalidCoordinates,
					"invalid coordinate token %q in %q", tok, utils.TruncateString(text, 64))
			}
			v = 0
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, app_errors.NewParseError(app_errors.ErrInvalidCoordinates,
				"non-finite coordinate %q in %q", tok, utils.TruncateString(text, 64))
		}
		nums = append(nums, v)
	}

	if len(nums) < 2 {
		return nil, app_errors.NewParseError(app_errors.ErrInsufficientCoordinates,
			"coordinate text %q contains %d numbers, need at least 2", utils.TruncateString(text, 64), len(nums))
	}
	if len(nums) >= 4 {
		return types.NewBoxCoordinate(nums[0], nums[1], nums[2], nums[3]), nil
	}
	// Two or three numbers: treat the first two as a point. A third number is
	// usually a stray confidence score.
	return types.NewPointCoordinate(nums[0], nums[1]), nil
}
