package sse

import (
	"bufio"
	"io"
	"strings"
)

// Reader parses SSE events from a byte stream, one blank-line-delimited
// block at a time. It is the inverse of AppendWire and is used to consume
// streams produced by pkg/streamhttp (round-trip tests, client tooling).
type Reader struct {
	scanner *bufio.Scanner

	// accumulated fields of the event currently being parsed
	typ      string
	id       string
	data     []string
	hasEvent bool
}

// NewReader returns a Reader that parses SSE events from r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &Reader{scanner: scanner}
}

// Next returns the next parsed event, blocking until a complete block
// (terminated by a blank line) is available. It returns nil, nil once the
// source is exhausted. A stream that ends without a trailing blank line
// still yields its in-progress event.
func (r *Reader) Next() (*Event, error) {
	for r.scanner.Scan() {
		line := r.scanner.Text()

		if line == "" {
			if r.hasEvent {
				return r.take(), nil
			}
			// Blank line with nothing accumulated: leading separator or
			// keep-alive newline. Skip.
			continue
		}

		// Comment lines carry no event fields.
		if strings.HasPrefix(line, ":") {
			continue
		}

		r.parseLine(line)
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if r.hasEvent {
		return r.take(), nil
	}
	return nil, nil
}

// parseLine accumulates one "field:value" line into the current event. The
// single optional space after the colon is stripped per the SSE spec.
func (r *Reader) parseLine(line string) {
	field, value, found := strings.Cut(line, ":")
	if found {
		value = strings.TrimPrefix(value, " ")
	} else {
		// A line with no colon is a field name with an empty value.
		field = line
	}

	switch field {
	case "data":
		r.data = append(r.data, value)
		r.hasEvent = true
	case "event":
		r.typ = value
		r.hasEvent = true
	case "id":
		r.id = value
		r.hasEvent = true
	default:
		// "retry" and unknown fields are ignored.
	}
}

func (r *Reader) take() *Event {
	// Multiple data fields are joined with a single newline, as browsers do.
	ev := &Event{
		Type: r.typ,
		Data: strings.Join(r.data, "\n"),
		ID:   r.id,
	}
	r.typ, r.id, r.data, r.hasEvent = "", "", nil, false
	return ev
}
