package stream

import (
	"bufio"
	"io"
	"strings"
)

// defaultMaxScanBufferBytes caps a single SSE line. Model chunks are small,
// but a single data line can carry a whole buffered message on slow links.
const defaultMaxScanBufferBytes = 256 * 1024

// SSEReader reads server-sent events and yields the data payload of each
// event. Non-data lines (comments, event names, blank keep-alives) are
// skipped; the terminal "[DONE]" sentinel ends the stream.
type SSEReader struct {
	scanner *bufio.Scanner
}

// NewSSEReader wraps r with an SSE line reader. maxBufferBytes <= 0 selects
// the default cap.
func NewSSEReader(r io.Reader, maxBufferBytes int) *SSEReader {
	if maxBufferBytes <= 0 {
		maxBufferBytes = defaultMaxScanBufferBytes
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxBufferBytes)
	return &SSEReader{scanner: scanner}
}

// Next returns the next data payload. io.EOF signals the end of the stream,
// whether from the [DONE] sentinel or the underlying reader.
func (r *SSEReader) Next() (string, error) {
	for r.scanner.Scan() {
		line := strings.TrimSpace(r.scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		if data == "[DONE]" {
			return "", io.EOF
		}
		return data, nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
