// Package ndjson implements newline-delimited JSON framing: one complete
// JSON value per line, no enclosing array. It is the chunked-transfer
// counterpart of pkg/sse.
package ndjson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Append appends v as a single JSON line to dst and returns the extended
// slice. json.Marshal escapes any newline inside the value, so each record
// occupies exactly one line.
func Append(dst []byte, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	dst = append(dst, b...)
	dst = append(dst, '\n')
	return dst, nil
}

// Reader yields the raw JSON records of an NDJSON stream one line at a
// time, skipping blank lines.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &Reader{scanner: scanner}
}

// Next returns the next non-empty line of the stream. The returned slice is
// a copy and remains valid across calls. Next returns nil, nil once the
// source is exhausted.
func (r *Reader) Next() ([]byte, error) {
	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		record := make([]byte, len(line))
		copy(record, line)
		return record, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}
