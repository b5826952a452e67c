package utils

import (
	"fmt"
	"strings"
)

// EscapeJSONFragment escapes a raw text fragment so it can be embedded inside
// a JSON string literal that is being emitted piece by piece. Each fragment is
// escaped independently, so the concatenation of escaped fragments equals the
// escape of the concatenation. Multi-byte UTF-8 sequences pass through
// unchanged; only characters JSON forbids inside a string are rewritten.
func EscapeJSONFragment(s string) string {
	if !needsJSONEscape(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, c := range []byte(s) {
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

func needsJSONEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == '"' || c < 0x20 {
			return true
		}
	}
	return false
}
