package stream

import "strings"

const (
	thinkOpenTag  = "<think>"
	thinkCloseTag = "</think>"
)

// processThink feeds one delta to the think extractor and returns the newly
// revealed reasoning text. At most one think block is parsed per turn.
func processThink(s *State, delta string) string {
	if s.thinkPhase == thinkCompleted {
		return ""
	}
	s.thinkBuffer += delta

	var out strings.Builder
	for {
		switch s.thinkPhase {
		case thinkOutside:
			idx := strings.Index(s.thinkBuffer, thinkOpenTag)
			if idx < 0 {
				// Nothing before the opening tag is reasoning; keep only a
				// possible partial tag at the tail.
				hold := holdbackLen(s.thinkBuffer, thinkOpenTag)
				s.thinkBuffer = s.thinkBuffer[len(s.thinkBuffer)-hold:]
				s.reasoning += out.String()
				return out.String()
			}
			s.thinkBuffer = s.thinkBuffer[idx+len(thinkOpenTag):]
			s.thinkPhase = thinkInside

		case thinkInside:
			idx := strings.Index(s.thinkBuffer, thinkCloseTag)
			if idx < 0 {
				hold := holdbackLen(s.thinkBuffer, thinkCloseTag)
				emit := s.thinkBuffer[:len(s.thinkBuffer)-hold]
				out.WriteString(emit)
				s.thinkBuffer = s.thinkBuffer[len(emit):]
				s.reasoning += out.String()
				return out.String()
			}
			out.WriteString(s.thinkBuffer[:idx])
			s.thinkBuffer = ""
			s.thinkPhase = thinkCompleted
			s.reasoning += out.String()
			return out.String()
		}
	}
}
