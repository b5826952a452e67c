package stream

import "strings"

const (
	answerOpenTag  = "<answer>"
	answerCloseTag = "</answer>"
)

// processAnswer feeds one delta to the answer extractor and returns the newly
// revealed answer text. Unlike the think extractor there is no terminal
// state: a later answer block appends to the same accumulator.
func processAnswer(s *State, delta string) string {
	s.answerBuffer += delta

	var out strings.Builder
	for {
		if !s.insideAnswer {
			idx := strings.Index(s.answerBuffer, answerOpenTag)
			if idx < 0 {
				hold := holdbackLen(s.answerBuffer, answerOpenTag)
				s.answerBuffer = s.answerBuffer[len(s.answerBuffer)-hold:]
				s.answer += out.String()
				return out.String()
			}
			s.answerBuffer = s.answerBuffer[idx+len(answerOpenTag):]
			s.insideAnswer = true
			continue
		}

		idx := strings.Index(s.answerBuffer, answerCloseTag)
		if idx < 0 {
			hold := holdbackLen(s.answerBuffer, answerCloseTag)
			emit := s.answerBuffer[:len(s.answerBuffer)-hold]
			out.WriteString(emit)
			s.answerBuffer = s.answerBuffer[len(emit):]
			s.answer += out.String()
			return out.String()
		}
		out.WriteString(s.answerBuffer[:idx])
		s.answerBuffer = s.answerBuffer[idx+len(answerCloseTag):]
		s.insideAnswer = false
	}
}
