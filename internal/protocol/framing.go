package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// LineBuffer accumulates received bytes and yields complete newline-terminated
// messages. Trailing bytes after the last newline are retained across appends,
// never discarded.
type LineBuffer struct {
	buf []byte
}

// Append adds freshly received bytes to the buffer.
func (b *LineBuffer) Append(p []byte) {
	b.buf = append(b.buf, p...)
}

// Next extracts the next complete message, without its trailing newline.
// It reports false when no full line is buffered yet.
func (b *LineBuffer) Next() ([]byte, bool) {
	i := bytes.IndexByte(b.buf, '\n')
	if i < 0 {
		return nil, false
	}
	line := b.buf[:i]
	b.buf = b.buf[i+1:]
	return line, true
}

// Pending returns the number of buffered bytes not yet forming a full line.
func (b *LineBuffer) Pending() int {
	return len(b.buf)
}

// DecodeCommand parses one message line as a request object.
func DecodeCommand(line []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(line, &cmd); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}
	return cmd, nil
}

// EncodeLine serializes a response as one newline-terminated JSON line.
func EncodeLine(resp Response) ([]byte, error) {
	payload, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return append(payload, '\n'), nil
}
