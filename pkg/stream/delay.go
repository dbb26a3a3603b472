package stream

import (
	"context"
	"time"
)

// Delayed wraps a Producer so that every pull waits d before delegating to
// the inner producer. It simulates per-item latency (network round trips,
// token generation) without touching the inner producer's semantics.
//
// The wait is cancellable: if ctx is done before d elapses, the pull aborts
// with ctx.Err() and the inner producer is not consulted.
func Delayed[T any](p Producer[T], d time.Duration) Producer[T] {
	if d <= 0 {
		return p
	}
	return &delayedProducer[T]{inner: p, delay: d}
}

type delayedProducer[T any] struct {
	inner Producer[T]
	delay time.Duration
}

func (p *delayedProducer[T]) Next(ctx context.Context) (T, error) {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-timer.C:
	}

	return p.inner.Next(ctx)
}

func (p *delayedProducer[T]) Close() error {
	return p.inner.Close()
}
