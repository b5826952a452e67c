// Package stream implements the incremental tag-stream parser: it consumes
// model output deltas in arrival order and separates reasoning text, answer
// text and structured tool-call updates without ever seeing the full message.
package stream

import (
	"fmt"

	"gui-actions/internal/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// thinkPhase tracks the think extractor's position. Only one think block is
// parsed per turn; once closed the extractor ignores all further input.
type thinkPhase int

const (
	thinkOutside thinkPhase = iota
	thinkInside
	thinkCompleted
)

// State is the mutable parse state threaded through every chunk of one model
// turn. It is not safe for concurrent use; each in-flight turn owns its own
// instance.
type State struct {
	// think extractor
	thinkBuffer string
	thinkPhase  thinkPhase

	// answer extractor
	answerBuffer string
	insideAnswer bool

	// code/tool-call extractor
	codeBuffer      string
	codeDisabled    bool
	codeEnvOpened   bool
	insideCodeEnv   bool
	insideFunction  bool
	insideParameter bool
	paramCount      int

	toolCalls []types.ToolCall

	reasoning string
	answer    string
}

// NewState creates the parse state for one model turn.
func NewState() *State {
	return &State{}
}

// Reset clears the state for reuse on a new turn.
func (s *State) Reset() {
	*s = State{}
}

// ReasoningContent returns all reasoning text accumulated so far.
func (s *State) ReasoningContent() string {
	return s.reasoning
}

// Content returns all answer text accumulated so far.
func (s *State) Content() string {
	return s.answer
}

// ToolCalls returns a copy of the tool calls reconstructed so far. Arguments
// of an unfinished call reflect only the deltas seen up to this point.
func (s *State) ToolCalls() []types.ToolCall {
	if len(s.toolCalls) == 0 {
		return nil
	}
	calls := make([]types.ToolCall, len(s.toolCalls))
	copy(calls, s.toolCalls)
	return calls
}

// currentToolCall returns the call being built. Valid only while
// insideFunction is set.
func (s *State) currentToolCall() *types.ToolCall {
	return &s.toolCalls[len(s.toolCalls)-1]
}

// openToolCall starts a new tool call and returns it. The ID is assigned here
// and reused by every subsequent update of this call.
func (s *State) openToolCall(name string) *types.ToolCall {
	s.toolCalls = append(s.toolCalls, types.ToolCall{
		ID:       fmt.Sprintf("call_%s", uuid.NewString()),
		Type:     "function",
		Function: types.FunctionCall{Name: name},
	})
	return s.currentToolCall()
}

// PendingBytes reports how much content is still held back in sub-parser
// buffers waiting for a tag that never arrived. Nonzero after the last chunk
// means the stream was truncated mid-tag.
func (s *State) PendingBytes() int {
	return len(s.thinkBuffer) + len(s.answerBuffer) + len(s.codeBuffer)
}

// Finalize returns the turn's aggregate result. Content still held back in a
// sub-parser buffer (an unclosed tag) is dropped, not flushed; a stream that
// never closes its tags loses that tail by design.
func (s *State) Finalize() types.StreamChunkResult {
	if pending := s.PendingBytes(); pending > 0 {
		logrus.WithField("pending_bytes", pending).Debug("Stream ended with unterminated buffered content")
	}
	return types.StreamChunkResult{
		Content:          s.answer,
		ReasoningContent: s.reasoning,
		ToolCalls:        s.ToolCalls(),
	}
}
