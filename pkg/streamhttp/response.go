// Package streamhttp turns a lazy producer of values into an incrementally
// delivered HTTP response body, framed either as newline-delimited JSON
// (chunked transfer) or as Server-Sent Events.
//
// Both builders share one skeleton: drain the producer one value at a time,
// encode each value with a per-format encoder, write the frame to an io.Pipe,
// and close on exhaustion, error, or consumer disconnect. The pipe gives
// direct backpressure: a write blocks until the transport has consumed the
// previous frame, so a slow consumer is never overrun and the producer is
// never pulled ahead of delivery.
package streamhttp

import (
	"io"
	"net/http"
)

// Response wraps a byte-emitting stream with the HTTP metadata the hosting
// transport needs to deliver it. Headers are fixed once the Response is
// built; HTTP framing does not allow them to change after the first byte.
type Response struct {
	StatusCode int
	Header     http.Header

	// Body emits the encoded frames as they are produced. Closing it before
	// exhaustion aborts the drain loop and releases the producer; this is
	// the consumer-disconnect path.
	Body io.ReadCloser
}

// Write drains the response to w, flushing after every fragment so frames
// reach the client as they are produced rather than when the body ends.
// If the request context is cancelled (client disconnect), the body is
// closed, which stops the drain loop and the producer behind it.
func (resp *Response) Write(w http.ResponseWriter, r *http.Request) {
	defer resp.Body.Close()

	h := w.Header()
	for key, values := range resp.Header {
		// net/http manages its own body framing; with no Content-Length set
		// it uses chunked transfer on its own.
		if http.CanonicalHeaderKey(key) == "Transfer-Encoding" {
			continue
		}
		h[http.CanonicalHeaderKey(key)] = values
	}
	w.WriteHeader(resp.StatusCode)

	// Unblock a pending Body.Read when the client goes away.
	stop := r.Context().Done()
	go func() {
		<-stop
		resp.Body.Close()
	}()

	rc := http.NewResponseController(w)
	buf := make([]byte, 32*1024)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return
			}
			if ferr := rc.Flush(); ferr != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// Handler adapts a Response-building function into an http.Handler.
//
// A non-nil error from fn is a pre-stream failure: no bytes have been sent,
// so it surfaces as an HTTP 500. Once streaming starts, failures are
// reported in-band by the drain loop instead (the status line is already on
// the wire).
func Handler(fn func(r *http.Request) (*Response, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, err := fn(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		resp.Write(w, r)
	})
}
