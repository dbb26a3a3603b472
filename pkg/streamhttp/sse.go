package streamhttp

import (
	"context"
	"net/http"

	"github.com/papercomputeco/spool/pkg/sse"
	"github.com/papercomputeco/spool/pkg/stream"
)

// SSE builds a Response that delivers the producer's events in the
// Server-Sent Events format, one wire block per event, as each becomes
// available.
//
// If the producer fails mid-stream, one final block with event type "error"
// and payload {"error": "<message>"} is emitted before the stream closes.
// No terminal event marks normal completion; a producer that wants one must
// yield it itself as its last event.
func SSE(ctx context.Context, p stream.Producer[sse.Event], opts ...Option) *Response {
	o := applyOptions(opts)

	header := make(http.Header)
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	for k, v := range o.headers {
		header.Set(k, v)
	}

	var preamble []byte
	if o.comment != "" {
		preamble = sse.AppendComment(nil, o.comment)
	}

	return &Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       newBody(ctx, p, preamble, sse.AppendWire, appendSSEError),
	}
}

func appendSSEError(dst []byte, err error) []byte {
	frame, encErr := sse.AppendWire(dst, sse.Event{
		Type: "error",
		Data: map[string]string{"error": errorMessage(err)},
	})
	if encErr != nil {
		// A map[string]string cannot fail to marshal; guard anyway.
		return dst
	}
	return frame
}
