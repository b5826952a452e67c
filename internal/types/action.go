package types

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/sjson"
)

// Point is a single screen position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is an axis-aligned bounding rectangle. X1 <= X2 and Y1 <= Y2 always
// hold for boxes produced by the coordinate normalizer.
type Box struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Coordinate is a screen position with its reference bounding box. Raw is the
// midpoint of ReferenceBox; a point-only input degenerates to a zero-area box.
// Immutable once constructed.
type Coordinate struct {
	Raw          Point `json:"raw"`
	ReferenceBox Box   `json:"referenceBox"`
}

// NewPointCoordinate builds a degenerate point-as-box coordinate.
func NewPointCoordinate(x, y float64) *Coordinate {
	return &Coordinate{
		Raw:          Point{X: x, Y: y},
		ReferenceBox: Box{X1: x, Y1: y, X2: x, Y2: y},
	}
}

// NewBoxCoordinate builds a coordinate from box corners, normalizing corner
// order and deriving the midpoint.
func NewBoxCoordinate(x1, y1, x2, y2 float64) *Coordinate {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return &Coordinate{
		Raw:          Point{X: (x1 + x2) / 2, Y: (y1 + y2) / 2},
		ReferenceBox: Box{X1: x1, Y1: y1, X2: x2, Y2: y2},
	}
}

// RoughAction is an action still in untyped string-keyed form, between the
// rough extractor and the standardizer.
type RoughAction struct {
	Type   string            `json:"type"`
	Params map[string]string `json:"params"`
}

// ActionInput is one canonical action input: either a plain string or a
// parsed coordinate.
type ActionInput struct {
	Text       string
	Coordinate *Coordinate
}

// IsCoordinate reports whether the input carries a coordinate value.
func (in ActionInput) IsCoordinate() bool {
	return in.Coordinate != nil
}

// String returns the textual form of the input. Coordinates render as their
// midpoint, matching how downstream executors address them.
func (in ActionInput) String() string {
	if in.Coordinate != nil {
		return fmt.Sprintf("(%g,%g)", in.Coordinate.Raw.X, in.Coordinate.Raw.Y)
	}
	return in.Text
}

// MarshalJSON renders a coordinate input as its structured form and a text
// input as a bare string.
func (in ActionInput) MarshalJSON() ([]byte, error) {
	if in.Coordinate != nil {
		return json.Marshal(in.Coordinate)
	}
	return json.Marshal(in.Text)
}

// Action is the canonical, standardized action ready for execution or
// display. Immutable once returned by a parser.
type Action struct {
	Type   string                 `json:"type"`
	Inputs map[string]ActionInput `json:"inputs"`
}

// ArgumentsJSON renders the action inputs as an OpenAI-style tool-call
// arguments object, the same wire shape the streaming path emits.
func (a *Action) ArgumentsJSON() (string, error) {
	out := "{}"
	var err error
	for name, in := range a.Inputs {
		if in.Coordinate != nil {
			out, err = sjson.Set(out, name, in.Coordinate)
		} else {
			out, err = sjson.Set(out, name, in.Text)
		}
		if err != nil {
			return "", fmt.Errorf("failed to encode input %q: %w", name, err)
		}
	}
	return out, nil
}

// ParsedGUIResponse is the top-level non-streaming parse result. Exactly one
// of a non-empty Actions or a set ErrorMessage denotes the outcome.
type ParsedGUIResponse struct {
	RawContent       string   `json:"rawContent"`
	ReasoningContent string   `json:"reasoningContent,omitempty"`
	RawActionStrings []string `json:"rawActionStrings,omitempty"`
	Actions          []Action `json:"actions,omitempty"`
	ErrorMessage     string   `json:"errorMessage,omitempty"`
}

// OK reports whether the parse succeeded.
func (r *ParsedGUIResponse) OK() bool {
	return r.ErrorMessage == "" && len(r.Actions) > 0
}

// FunctionCall is the name/arguments pair of an in-progress tool call. The
// Arguments string grows monotonically while the call streams.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCall is one tool invocation reconstructed from the stream.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// StreamingToolCallUpdate is one incremental contribution to a tool call's
// JSON argument string. Concatenating every ArgumentsDelta for a ToolCallID
// in arrival order yields a valid JSON object once IsComplete is seen.
type StreamingToolCallUpdate struct {
	ToolCallID     string `json:"toolCallId"`
	ToolName       string `json:"toolName"`
	ArgumentsDelta string `json:"argumentsDelta"`
	IsComplete     bool   `json:"isComplete"`
}

// StreamChunkResult is the per-chunk output of the incremental parser.
type StreamChunkResult struct {
	Content                  string                    `json:"content"`
	ReasoningContent         string                    `json:"reasoningContent"`
	HasToolCallUpdate        bool                      `json:"hasToolCallUpdate"`
	ToolCalls                []ToolCall                `json:"toolCalls,omitempty"`
	StreamingToolCallUpdates []StreamingToolCallUpdate `json:"streamingToolCallUpdates,omitempty"`
}
