package stream

import (
	"strings"

	"gui-actions/internal/types"
	"gui-actions/internal/utils"
)

const (
	codeEnvOpenTag   = "<code_env>"
	codeEnvCloseTag  = "</code_env>"
	functionOpenPfx  = "<function="
	functionCloseTag = "</function>"
	paramOpenPfx     = "<parameter="
	paramCloseTag    = "</parameter>"
)

// foreignEnvMarkers name payloads owned by other integrations. Seeing one
// before any <code_env> disables this extractor for the rest of the turn.
var foreignEnvMarkers = []string{"computer_env", "mcp_env"}

// processToolCalls feeds one delta to the code/tool-call extractor and
// returns the incremental argument updates it produced. Every update keeps
// the call's accumulated arguments string valid JSON so far.
func processToolCalls(s *State, delta string) []types.StreamingToolCallUpdate {
	if s.codeDisabled {
		return nil
	}
	s.codeBuffer += delta

	var updates []types.StreamingToolCallUpdate
	for {
		switch {
		case s.insideParameter:
			if !s.scanParameterContent(&updates) {
				return updates
			}
		case s.insideFunction:
			if !s.scanFunctionBody(&updates) {
				return updates
			}
		case s.insideCodeEnv:
			if !s.scanCodeEnvBody(&updates) {
				return updates
			}
		default:
			if !s.scanForCodeEnv() {
				return updates
			}
		}
	}
}

// scanForCodeEnv looks for the opening <code_env> tag, or for a foreign
// environment marker that disables the extractor. Returns false when the
// buffer is exhausted for this chunk.
func (s *State) scanForCodeEnv() bool {
	markers := []string{codeEnvOpenTag}
	if !s.codeEnvOpened {
		markers = append(markers, foreignEnvMarkers...)
	}

	idx, marker := findEarliest(s.codeBuffer, markers...)
	if idx < 0 {
		hold := holdbackLen(s.codeBuffer, markers...)
		s.codeBuffer = s.codeBuffer[len(s.codeBuffer)-hold:]
		return false
	}
	if marker != codeEnvOpenTag {
		s.codeDisabled = true
		s.codeBuffer = ""
		return false
	}
	s.codeBuffer = s.codeBuffer[idx+len(codeEnvOpenTag):]
	s.insideCodeEnv = true
	s.codeEnvOpened = true
	return true
}

// scanCodeEnvBody looks for a function opening tag or the code env close.
// Text between functions is ignored. Opening a function announces the tool
// name with an empty arguments delta.
func (s *State) scanCodeEnvBody(updates *[]types.StreamingToolCallUpdate) bool {
	idx, marker := findEarliest(s.codeBuffer, functionOpenPfx, codeEnvCloseTag)
	if idx < 0 {
		hold := holdbackLen(s.codeBuffer, functionOpenPfx, codeEnvCloseTag)
		s.codeBuffer = s.codeBuffer[len(s.codeBuffer)-hold:]
		return false
	}
	if marker == codeEnvCloseTag {
		s.codeBuffer = s.codeBuffer[idx+len(codeEnvCloseTag):]
		s.insideCodeEnv = false
		return true
	}

	name, rest, ok := scanTagName(s.codeBuffer[idx+len(functionOpenPfx):])
	if !ok {
		// The tag name is still streaming in; hold everything from the tag on.
		s.codeBuffer = s.codeBuffer[idx:]
		return false
	}
	s.codeBuffer = rest
	s.insideFunction = true
	s.paramCount = 0
	call := s.openToolCall(name)
	*updates = append(*updates, types.StreamingToolCallUpdate{
		ToolCallID: call.ID,
		ToolName:   call.Function.Name,
	})
	return true
}

// scanFunctionBody looks for a parameter opening tag or the function close.
// Opening a parameter emits the JSON fragment that begins its string value;
// closing the function completes the arguments object.
func (s *State) scanFunctionBody(updates *[]types.StreamingToolCallUpdate) bool {
	idx, marker := findEarliest(s.codeBuffer, paramOpenPfx, functionCloseTag)
	if idx < 0 {
		hold := holdbackLen(s.codeBuffer, paramOpenPfx, functionCloseTag)
		s.codeBuffer = s.codeBuffer[len(s.codeBuffer)-hold:]
		return false
	}
	if marker == functionCloseTag {
		closing := " }"
		if s.paramCount == 0 {
			closing = "{}"
		}
		s.emitArguments(updates, closing, true)
		s.codeBuffer = s.codeBuffer[idx+len(functionCloseTag):]
		s.insideFunction = false
		return true
	}

	name, rest, ok := scanTagName(s.codeBuffer[idx+len(paramOpenPfx):])
	if !ok {
		s.codeBuffer = s.codeBuffer[idx:]
		return false
	}
	opening := `, "` + name + `": "`
	if s.paramCount == 0 {
		opening = `{"` + name + `": "`
	}
	s.paramCount++
	s.emitArguments(updates, opening, false)
	s.codeBuffer = rest
	s.insideParameter = true
	return true
}

// scanParameterContent streams the parameter value. Fragments are escaped
// and emitted with the exact boundaries seen on the wire; the close tag
// terminates the JSON string.
func (s *State) scanParameterContent(updates *[]types.StreamingToolCallUpdate) bool {
	idx := strings.Index(s.codeBuffer, paramCloseTag)
	if idx < 0 {
		hold := holdbackLen(s.codeBuffer, paramCloseTag)
		fragment := s.codeBuffer[:len(s.codeBuffer)-hold]
		if fragment != "" {
			s.emitArguments(updates, utils.EscapeJSONFragment(fragment), false)
		}
		s.codeBuffer = s.codeBuffer[len(fragment):]
		return false
	}
	s.emitArguments(updates, utils.EscapeJSONFragment(s.codeBuffer[:idx])+`"`, false)
	s.codeBuffer = s.codeBuffer[idx+len(paramCloseTag):]
	s.insideParameter = false
	return true
}

// emitArguments appends a delta to the current call's arguments and records
// the corresponding streaming update.
func (s *State) emitArguments(updates *[]types.StreamingToolCallUpdate, delta string, complete bool) {
	call := s.currentToolCall()
	call.Function.Arguments += delta
	*updates = append(*updates, types.StreamingToolCallUpdate{
		ToolCallID:     call.ID,
		ToolName:       call.Function.Name,
		ArgumentsDelta: delta,
		IsComplete:     complete,
	})
}

// scanTagName reads a tag name terminated by '>' from the text following a
// name-bearing tag prefix. Returns ok=false while the '>' has not arrived.
func scanTagName(text string) (name, rest string, ok bool) {
	gt := strings.IndexByte(text, '>')
	if gt < 0 {
		return "", "", false
	}
	return text[:gt], text[gt+1:], true
}
