package stream

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	"gui-actions/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedChunks runs a full message through a fresh state in the given pieces
// and returns the state plus every emitted update in order.
func feedChunks(t *testing.T, chunks []string) (*State, []types.StreamingToolCallUpdate) {
	t.Helper()
	s := NewState()
	var updates []types.StreamingToolCallUpdate
	for _, chunk := range chunks {
		result := ProcessChunk(chunk, s)
		updates = append(updates, result.StreamingToolCallUpdates...)
	}
	return s, updates
}

// splitRandomly cuts message into n random non-empty contiguous pieces.
func splitRandomly(rng *rand.Rand, message string, n int) []string {
	if n >= len(message) {
		n = len(message)
	}
	cuts := map[int]bool{}
	for len(cuts) < n-1 {
		cuts[1+rng.Intn(len(message)-1)] = true
	}
	var chunks []string
	start := 0
	for i := 1; i < len(message); i++ {
		if cuts[i] {
			chunks = append(chunks, message[start:i])
			start = i
		}
	}
	return append(chunks, message[start:])
}

func TestThinkBlockSingleChunk(t *testing.T) {
	s, _ := feedChunks(t, []string{"<think>Hello world</think>"})
	assert.Equal(t, "Hello world", s.ReasoningContent())
}

func TestThinkBlockSixChunks(t *testing.T) {
	s, _ := feedChunks(t, []string{"<", "think", ">", "Hello", " world", "</think>"})
	assert.Equal(t, "Hello world", s.ReasoningContent())
}

func TestThinkBlockPartialCloseTagHeldBack(t *testing.T) {
	s := NewState()
	r1 := ProcessChunk("<think>abc</th", s)
	// "</th" could be the closing tag; it must not leak into reasoning.
	assert.Equal(t, "abc", r1.ReasoningContent)

	r2 := ProcessChunk("ink>", s)
	assert.Equal(t, "", r2.ReasoningContent)
	assert.Equal(t, "abc", s.ReasoningContent())
}

func TestThinkBlockFalseAlarmPrefix(t *testing.T) {
	// "</th" turns out to be literal content, not a closing tag.
	s, _ := feedChunks(t, []string{"<think>a </thing of text</think>"})
	assert.Equal(t, "a </thing of text", s.ReasoningContent())
}

func TestThinkOnlyFirstBlockCounts(t *testing.T) {
	s, _ := feedChunks(t, []string{"<think>one</think><think>two</think>"})
	assert.Equal(t, "one", s.ReasoningContent())
}

func TestAnswerBlockAccumulatesAcrossSegments(t *testing.T) {
	s, _ := feedChunks(t, []string{"<answer>first</answer> noise <answer> second</answer>"})
	assert.Equal(t, "first second", s.Content())
}

func TestTextOutsideTagsIgnored(t *testing.T) {
	s, _ := feedChunks(t, []string{"preamble <think>r</think> middle <answer>a</answer> tail"})
	assert.Equal(t, "r", s.ReasoningContent())
	assert.Equal(t, "a", s.Content())
}

const toolCallMessage = "<think>Need to write a file.</think>" +
	"<code_env><function=str_replace_editor>" +
	"<parameter=command>create</parameter>" +
	"<parameter=path>/tmp/app.py</parameter>" +
	"<parameter=file_text>print(\"hi\")\n\tdone\\\n</parameter>" +
	"</function></code_env>"

func TestToolCallSingleChunk(t *testing.T) {
	s, updates := feedChunks(t, []string{toolCallMessage})

	calls := s.ToolCalls()
	require.Len(t, calls, 1)
	call := calls[0]
	assert.Equal(t, "function", call.Type)
	assert.Equal(t, "str_replace_editor", call.Function.Name)
	assert.True(t, strings.HasPrefix(call.ID, "call_"))

	var args map[string]string
	require.NoError(t, json.Unmarshal([]byte(call.Function.Arguments), &args),
		"arguments must be valid JSON: %s", call.Function.Arguments)
	assert.Equal(t, map[string]string{
		"command":   "create",
		"path":      "/tmp/app.py",
		"file_text": "print(\"hi\")\n\tdone\\\n",
	}, args)

	require.NotEmpty(t, updates)
	last := updates[len(updates)-1]
	assert.True(t, last.IsComplete)
	assert.Equal(t, call.ID, last.ToolCallID)
}

func TestToolCallArgumentReconstruction(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		chunks := splitRandomly(rng, toolCallMessage, 2+rng.Intn(40))
		s, updates := feedChunks(t, chunks)

		calls := s.ToolCalls()
		require.Len(t, calls, 1)

		var rebuilt strings.Builder
		for _, u := range updates {
			require.Equal(t, calls[0].ID, u.ToolCallID)
			rebuilt.WriteString(u.ArgumentsDelta)
		}
		assert.Equal(t, calls[0].Function.Arguments, rebuilt.String())
		assert.True(t, json.Valid([]byte(rebuilt.String())),
			"chunks %q rebuilt invalid JSON %q", chunks, rebuilt.String())
	}
}

func TestChunkBoundaryInvariance(t *testing.T) {
	message := "intro <think>step one\nstep two</think>" +
		"<answer>All done, \"quoted\" and (parenthesized).</answer>" +
		toolCallMessage[len("<think>Need to write a file.</think>"):]

	oneShot := NewState()
	ProcessChunk(message, oneShot)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		chunks := splitRandomly(rng, message, 2+rng.Intn(60))
		s, _ := feedChunks(t, chunks)

		assert.Equal(t, oneShot.ReasoningContent(), s.ReasoningContent(), "chunks: %q", chunks)
		assert.Equal(t, oneShot.Content(), s.Content(), "chunks: %q", chunks)

		oneCalls, splitCalls := oneShot.ToolCalls(), s.ToolCalls()
		require.Equal(t, len(oneCalls), len(splitCalls), "chunks: %q", chunks)
		for i := range oneCalls {
			assert.Equal(t, oneCalls[i].Function, splitCalls[i].Function, "chunks: %q", chunks)
		}
	}
}

func TestToolCallArgumentsMonotonic(t *testing.T) {
	s := NewState()
	prev := 0
	for _, c := range splitRandomly(rand.New(rand.NewSource(3)), toolCallMessage, 30) {
		ProcessChunk(c, s)
		if calls := s.ToolCalls(); len(calls) > 0 {
			cur := len(calls[0].Function.Arguments)
			assert.GreaterOrEqual(t, cur, prev)
			prev = cur
		}
	}
}

func TestToolCallZeroParameters(t *testing.T) {
	s, updates := feedChunks(t, []string{"<code_env><function=wait></function></code_env>"})

	calls := s.ToolCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "wait", calls[0].Function.Name)
	assert.Equal(t, "{}", calls[0].Function.Arguments)

	require.Len(t, updates, 2)
	assert.Equal(t, "", updates[0].ArgumentsDelta)
	assert.False(t, updates[0].IsComplete)
	assert.Equal(t, "{}", updates[1].ArgumentsDelta)
	assert.True(t, updates[1].IsComplete)
}

func TestToolCallSequentialFunctions(t *testing.T) {
	s, _ := feedChunks(t, []string{
		"<code_env>" +
			"<function=click><parameter=point>(1,2)</parameter></function>" +
			"<function=wait></function>" +
			"</code_env>",
	})

	calls := s.ToolCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "click", calls[0].Function.Name)
	assert.Equal(t, `{"point": "(1,2)" }`, calls[0].Function.Arguments)
	assert.Equal(t, "wait", calls[1].Function.Name)
	assert.Equal(t, "{}", calls[1].Function.Arguments)
	assert.NotEqual(t, calls[0].ID, calls[1].ID)
}

func TestToolCallDisabledByForeignEnv(t *testing.T) {
	s, updates := feedChunks(t, []string{
		"<computer_env>click(start_box='(1,2)')</computer_env>",
		"<code_env><function=wait></function></code_env>",
	})
	assert.Empty(t, updates)
	assert.Empty(t, s.ToolCalls())
}

func TestToolCallForeignEnvAfterCodeEnvIgnored(t *testing.T) {
	s, _ := feedChunks(t, []string{
		"<code_env><function=wait></function></code_env> mentions mcp_env later",
	})
	require.Len(t, s.ToolCalls(), 1)
}

func TestParameterFragmentBoundariesPreserved(t *testing.T) {
	s := NewState()
	ProcessChunk("<code_env><function=type><parameter=content>", s)

	r1 := ProcessChunk("hello ", s)
	require.Len(t, r1.StreamingToolCallUpdates, 1)
	assert.Equal(t, "hello ", r1.StreamingToolCallUpdates[0].ArgumentsDelta)

	r2 := ProcessChunk("\"world\"\n", s)
	require.Len(t, r2.StreamingToolCallUpdates, 1)
	assert.Equal(t, `\"world\"\n`, r2.StreamingToolCallUpdates[0].ArgumentsDelta)

	r3 := ProcessChunk("</parameter></function></code_env>", s)
	require.Len(t, r3.StreamingToolCallUpdates, 2)
	assert.Equal(t, `"`, r3.StreamingToolCallUpdates[0].ArgumentsDelta)
	assert.Equal(t, " }", r3.StreamingToolCallUpdates[1].ArgumentsDelta)
	assert.True(t, r3.StreamingToolCallUpdates[1].IsComplete)

	call := s.ToolCalls()[0]
	var args map[string]string
	require.NoError(t, json.Unmarshal([]byte(call.Function.Arguments), &args))
	assert.Equal(t, "hello \"world\"\n", args["content"])
}

func TestProcessCompletionChunk(t *testing.T) {
	s := NewState()

	result, finished := ProcessCompletionChunk(
		`{"choices":[{"delta":{"content":"<think>rea"},"finish_reason":null}]}`, s)
	assert.False(t, finished)
	assert.Equal(t, "rea", result.ReasoningContent)

	result, finished = ProcessCompletionChunk(
		`{"choices":[{"delta":{"content":"soning</think>"},"finish_reason":null}]}`, s)
	assert.False(t, finished)
	assert.Equal(t, "soning", result.ReasoningContent)

	_, finished = ProcessCompletionChunk(
		`{"choices":[{"delta":{},"finish_reason":"stop"}]}`, s)
	assert.True(t, finished)
	assert.Equal(t, "reasoning", s.ReasoningContent())
}

func TestProcessCompletionChunkMalformedPayload(t *testing.T) {
	s := NewState()
	result, finished := ProcessCompletionChunk(`not json at all`, s)
	assert.False(t, finished)
	assert.Zero(t, result)
}

func TestStateReset(t *testing.T) {
	s, _ := feedChunks(t, []string{toolCallMessage})
	require.NotEmpty(t, s.ToolCalls())

	s.Reset()
	assert.Empty(t, s.ToolCalls())
	assert.Empty(t, s.ReasoningContent())
	assert.Empty(t, s.Content())
}

func TestPendingBytesOnTruncatedStream(t *testing.T) {
	s := NewState()
	ProcessChunk("<think>abc</thi", s)

	// "</thi" is held back waiting for the rest of the closing tag.
	assert.Positive(t, s.PendingBytes())

	final := s.Finalize()
	assert.Equal(t, "abc", final.ReasoningContent)
}

func TestFinalize(t *testing.T) {
	s, _ := feedChunks(t, []string{"<think>r</think><answer>a</answer>"})
	final := s.Finalize()
	assert.Equal(t, "r", final.ReasoningContent)
	assert.Equal(t, "a", final.Content)
	assert.Empty(t, final.ToolCalls)
}
