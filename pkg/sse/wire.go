package sse

import (
	"encoding/json"
	"fmt"
)

// AppendWire appends the wire block for ev to dst and returns the extended
// slice. Field order is fixed: "event:" (if set), "id:" (if set), then
// "data:" followed by the blank line that terminates the message.
func AppendWire(dst []byte, ev Event) ([]byte, error) {
	if ev.Type != "" {
		dst = append(dst, "event: "...)
		dst = append(dst, ev.Type...)
		dst = append(dst, '\n')
	}
	if ev.ID != "" {
		dst = append(dst, "id: "...)
		dst = append(dst, ev.ID...)
		dst = append(dst, '\n')
	}

	dst = append(dst, "data: "...)
	payload, err := encodeData(ev.Data)
	if err != nil {
		return nil, fmt.Errorf("encoding event data: %w", err)
	}
	dst = append(dst, payload...)
	dst = append(dst, '\n', '\n')

	return dst, nil
}

// AppendComment appends an SSE comment line (": text" plus a blank line) to
// dst. Conformant clients ignore comments; intermediaries see traffic, which
// keeps idle connections from being reaped before the first real event.
func AppendComment(dst []byte, text string) []byte {
	dst = append(dst, ':', ' ')
	dst = append(dst, text...)
	dst = append(dst, '\n', '\n')
	return dst
}

// encodeData renders an event payload as a single line of text: strings
// pass through verbatim, everything else is JSON-encoded.
func encodeData(data any) ([]byte, error) {
	if s, ok := data.(string); ok {
		return []byte(s), nil
	}
	return json.Marshal(data)
}
