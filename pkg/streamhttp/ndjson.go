package streamhttp

import (
	"context"
	"net/http"

	"github.com/papercomputeco/spool/pkg/ndjson"
	"github.com/papercomputeco/spool/pkg/stream"
)

// NDJSON builds a Response that delivers the producer's values as
// newline-delimited JSON over chunked transfer: each value is JSON-encoded,
// newline-terminated, and emitted immediately.
//
// If the producer fails mid-stream, one final line {"error": "<message>"}
// is emitted before the stream closes. Normal completion is signalled by
// the stream closing; there is no explicit end marker.
func NDJSON[T any](ctx context.Context, p stream.Producer[T], opts ...Option) *Response {
	o := applyOptions(opts)

	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	header.Set("Transfer-Encoding", "chunked")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	for k, v := range o.headers {
		header.Set(k, v)
	}

	encode := func(dst []byte, v T) ([]byte, error) {
		return ndjson.Append(dst, v)
	}

	return &Response{
		StatusCode: http.StatusOK,
		Header:     header,
		Body:       newBody(ctx, p, nil, encode, appendNDJSONError),
	}
}

func appendNDJSONError(dst []byte, err error) []byte {
	frame, encErr := ndjson.Append(dst, map[string]string{"error": errorMessage(err)})
	if encErr != nil {
		return dst
	}
	return frame
}
