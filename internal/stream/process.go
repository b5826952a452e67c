package stream

import (
	"gui-actions/internal/types"

	"github.com/tidwall/gjson"
)

// ProcessChunk feeds one raw text delta through all three sub-parsers and
// returns what this chunk newly revealed. Chunks must arrive in model order;
// the state must not be shared across concurrent turns.
func ProcessChunk(delta string, s *State) types.StreamChunkResult {
	result := types.StreamChunkResult{
		ReasoningContent:         processThink(s, delta),
		Content:                  processAnswer(s, delta),
		StreamingToolCallUpdates: processToolCalls(s, delta),
	}
	if len(result.StreamingToolCallUpdates) > 0 {
		result.HasToolCallUpdate = true
		result.ToolCalls = s.ToolCalls()
	}
	return result
}

// ProcessCompletionChunk extracts the content delta from one chat-completion
// chunk payload and feeds it through ProcessChunk. Only
// choices[0].delta.content and choices[0].finish_reason are read; finished
// reports whether the chunk carried a finish reason.
func ProcessCompletionChunk(payload string, s *State) (result types.StreamChunkResult, finished bool) {
	choice := gjson.Get(payload, "choices.0")
	if !choice.Exists() {
		return types.StreamChunkResult{}, false
	}
	finished = choice.Get("finish_reason").String() != ""

	content := choice.Get("delta.content")
	if !content.Exists() || content.String() == "" {
		return types.StreamChunkResult{}, finished
	}
	return ProcessChunk(content.String(), s), finished
}
