// Package stream defines the Producer abstraction: a lazy, finite,
// non-restartable source of values pulled one at a time. Producers feed the
// response builders in pkg/streamhttp, which drain them into HTTP response
// bodies.
package stream

import (
	"context"
	"errors"
)

// Done is returned by Next once the producer is exhausted. It signals normal
// completion, not a failure.
var Done = errors.New("stream: no more items")

// Producer is a lazy sequence of values. Each call to Next blocks until the
// next value is ready, the producer is exhausted (Done), or it fails.
//
// Producers are single-use: once Next has returned Done or any other error,
// it must not be called again. Implementations are not required to be safe
// for concurrent use; the drain loop in pkg/streamhttp is the single caller.
type Producer[T any] interface {
	// Next returns the next value. It returns Done when the sequence is
	// exhausted, or the failure cause if production fails mid-sequence.
	// A cancelled ctx aborts a pending pull with ctx.Err().
	Next(ctx context.Context) (T, error)

	// Close releases any resources held by the producer. It is safe to call
	// Close before the producer is exhausted (e.g. when the consumer
	// disconnects) and safe to call more than once.
	Close() error
}

// Func adapts a pull function into a Producer. The function carries its own
// state via closure.
func Func[T any](next func(ctx context.Context) (T, error)) Producer[T] {
	return &funcProducer[T]{next: next}
}

type funcProducer[T any] struct {
	next func(ctx context.Context) (T, error)
}

func (p *funcProducer[T]) Next(ctx context.Context) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	return p.next(ctx)
}

func (p *funcProducer[T]) Close() error { return nil }

// FromSlice returns a Producer that yields the given values in order.
func FromSlice[T any](values []T) Producer[T] {
	return &sliceProducer[T]{values: values}
}

type sliceProducer[T any] struct {
	values []T
	pos    int
}

func (p *sliceProducer[T]) Next(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if p.pos >= len(p.values) {
		return zero, Done
	}
	v := p.values[p.pos]
	p.pos++
	return v, nil
}

func (p *sliceProducer[T]) Close() error {
	p.pos = len(p.values)
	return nil
}

// FromChannel returns a Producer that yields values received from ch until
// the channel is closed. The sender owns the channel lifecycle; closing it
// signals normal completion.
func FromChannel[T any](ch <-chan T) Producer[T] {
	return &chanProducer[T]{ch: ch}
}

type chanProducer[T any] struct {
	ch <-chan T
}

func (p *chanProducer[T]) Next(ctx context.Context) (T, error) {
	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case v, ok := <-p.ch:
		if !ok {
			return zero, Done
		}
		return v, nil
	}
}

func (p *chanProducer[T]) Close() error { return nil }
