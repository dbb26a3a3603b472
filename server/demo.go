package server

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/papercomputeco/spool/pkg/sse"
	"github.com/papercomputeco/spool/pkg/stream"
)

// demoEvents returns a producer simulating an asynchronous generator of SSE
// envelopes: count-1 "update" events followed by one "complete" event, each
// carrying a sequence number, a uuid stream id, and simulated production
// latency.
//
// When failAfter >= 0, the producer fails after yielding failAfter items,
// exercising the in-band error path.
func demoEvents(count int, delay time.Duration, failAfter int) stream.Producer[sse.Event] {
	streamID := uuid.NewString()
	seq := 0

	p := stream.Func(func(_ context.Context) (sse.Event, error) {
		if failAfter >= 0 && seq >= failAfter {
			return sse.Event{}, fmt.Errorf("simulated generator failure after %d events", seq)
		}
		if seq >= count {
			return sse.Event{}, stream.Done
		}

		ev := sse.Event{
			Type: "update",
			ID:   strconv.Itoa(seq + 1),
			Data: map[string]any{
				"stream_id": streamID,
				"seq":       seq,
				"message":   fmt.Sprintf("update %d of %d", seq+1, count),
			},
		}
		if seq == count-1 {
			ev.Type = "complete"
		}
		seq++
		return ev, nil
	})

	return stream.Delayed(p, delay)
}

// demoChunks returns a producer of plain records for the NDJSON endpoint.
func demoChunks(count int, delay time.Duration, failAfter int) stream.Producer[map[string]any] {
	streamID := uuid.NewString()
	seq := 0

	p := stream.Func(func(_ context.Context) (map[string]any, error) {
		if failAfter >= 0 && seq >= failAfter {
			return nil, fmt.Errorf("simulated generator failure after %d chunks", seq)
		}
		if seq >= count {
			return nil, stream.Done
		}

		record := map[string]any{
			"stream_id": streamID,
			"seq":       seq,
			"done":      seq == count-1,
		}
		seq++
		return record, nil
	})

	return stream.Delayed(p, delay)
}
