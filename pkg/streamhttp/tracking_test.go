package streamhttp

import (
	"context"
	"sync"
	"time"

	"github.com/papercomputeco/spool/pkg/stream"
)

// trackingProducer is a test producer that records its pull count and
// whether it was closed, and can be configured to fail after yielding a
// fixed number of items.
type trackingProducer[T any] struct {
	items     []T
	failAfter int // item index after which Next fails; -1 disables
	failErr   error
	delay     time.Duration

	mu     sync.Mutex
	pos    int
	pulls  int
	closed bool
}

func newTrackingProducer[T any](items []T) *trackingProducer[T] {
	return &trackingProducer[T]{items: items, failAfter: -1}
}

func (p *trackingProducer[T]) Next(ctx context.Context) (T, error) {
	var zero T
	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(p.delay):
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pulls++

	if p.failAfter >= 0 && p.pos >= p.failAfter {
		return zero, p.failErr
	}
	if p.pos >= len(p.items) {
		return zero, stream.Done
	}
	v := p.items[p.pos]
	p.pos++
	return v, nil
}

func (p *trackingProducer[T]) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *trackingProducer[T]) pullCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pulls
}

func (p *trackingProducer[T]) wasClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
