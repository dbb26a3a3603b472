package streamhttp

import (
	"context"
	"errors"
	"io"

	"github.com/papercomputeco/spool/pkg/stream"
)

// encodeFunc appends the wire frame for one produced value to dst.
type encodeFunc[T any] func(dst []byte, v T) ([]byte, error)

// errorFunc appends the terminal in-band error frame to dst.
type errorFunc func(dst []byte, err error) []byte

// newBody starts the drain loop for p and returns the read side of the pipe
// it writes into.
//
// io.Pipe is deliberate: a pipe write blocks until the reader consumes the
// bytes, so the loop cannot pull the next value before the transport has
// accepted the current frame. When the reader is closed (consumer
// disconnect), the pending write fails with io.ErrClosedPipe and the loop
// stops pulling instead of computing values nobody will read.
func newBody[T any](ctx context.Context, p stream.Producer[T], preamble []byte, enc encodeFunc[T], encErr errorFunc) io.ReadCloser {
	pr, pw := io.Pipe()
	go drain(ctx, p, pw, preamble, enc, encErr)
	return pr
}

// drain is the single writer for one stream session: pull, encode, write,
// repeat. The producer and the pipe are closed on every exit path.
func drain[T any](ctx context.Context, p stream.Producer[T], pw *io.PipeWriter, preamble []byte, enc encodeFunc[T], encErr errorFunc) {
	defer pw.Close()
	defer p.Close()

	if len(preamble) > 0 {
		if _, err := pw.Write(preamble); err != nil {
			return
		}
	}

	var buf []byte
	for {
		v, err := p.Next(ctx)
		if err != nil {
			if errors.Is(err, stream.Done) {
				return
			}
			// Cancellation is not a producer failure; there is nobody left
			// to tell.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			// Mid-stream failure: headers are long gone, so the only channel
			// left is one final in-band frame. Best effort; a disconnected
			// consumer simply never sees it.
			pw.Write(encErr(buf[:0], err))
			return
		}

		frame, err := enc(buf[:0], v)
		if err != nil {
			pw.Write(encErr(buf[:0], err))
			return
		}
		if _, err := pw.Write(frame); err != nil {
			// Consumer is gone; stop pulling.
			return
		}
		buf = frame
	}
}

// errorMessage renders an error for the in-band terminal frame, with a
// fixed fallback for errors that render empty.
func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "unknown stream error"
	}
	return err.Error()
}
