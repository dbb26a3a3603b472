// Package sse implements the Server-Sent Events wire format: an Event
// envelope, the formatter that renders envelopes into wire blocks, and a
// Reader that parses a byte stream back into events.
//
// See the SSE specification:
// https://html.spec.whatwg.org/multipage/server-sent-events.html
package sse

// Event is the logical content of a single SSE message before wire
// formatting, and the result of parsing one message block with Reader.
type Event struct {
	// Type is the SSE event name from the "event:" field. An empty string
	// means the default "message" type per the SSE spec, and omits the
	// "event:" line entirely on the wire.
	Type string

	// Data is the message payload. Strings are written to the wire verbatim;
	// any other value is JSON-encoded. Always present on the wire.
	//
	// Raw string payloads must not contain newlines: a single "data:" line
	// carries the whole payload, so an embedded newline breaks the frame
	// boundary. JSON encoding never produces a raw newline.
	Data any

	// ID is the event id from the "id:" field, if any. An empty string omits
	// the "id:" line. Ids let a resumption-aware client reconnect with
	// Last-Event-ID; this package only emits them, it does not implement
	// replay.
	ID string
}
