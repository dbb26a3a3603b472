package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/papercomputeco/spool/pkg/streamhttp"
)

// handleEvents serves the SSE simulation endpoint. Query parameters:
//
//	count    number of events to produce (default from config)
//	delay_ms simulated per-event production latency (default from config)
//	fail     item index after which the producer fails (-1 disables)
func (s *Server) handleEvents(c *fiber.Ctx) error {
	count := c.QueryInt("count", s.config.Demo.Count)
	delay := time.Duration(c.QueryInt("delay_ms", s.config.Demo.DelayMS)) * time.Millisecond
	failAfter := c.QueryInt("fail", -1)

	producer := demoEvents(count, delay, failAfter)
	resp := streamhttp.SSE(context.Background(), producer,
		streamhttp.WithComment(s.config.Demo.Comment),
	)

	s.logger.Debug("starting event stream",
		zap.Int("count", count),
		zap.Duration("delay", delay),
	)

	return s.sendStreaming(c, resp)
}

// handleChunks serves the NDJSON simulation endpoint. Same query parameters
// as handleEvents.
func (s *Server) handleChunks(c *fiber.Ctx) error {
	count := c.QueryInt("count", s.config.Demo.Count)
	delay := time.Duration(c.QueryInt("delay_ms", s.config.Demo.DelayMS)) * time.Millisecond
	failAfter := c.QueryInt("fail", -1)

	producer := demoChunks(count, delay, failAfter)
	resp := streamhttp.NDJSON(context.Background(), producer)

	s.logger.Debug("starting chunk stream",
		zap.Int("count", count),
		zap.Duration("delay", delay),
	)

	return s.sendStreaming(c, resp)
}

// sendStreaming delivers a streamhttp.Response through fasthttp.
//
// The body is handed over as a stream with unknown size (-1), which triggers
// chunked transfer encoding. The underlying io.Pipe write blocks until
// fasthttp's chunked writer has flushed to the socket, so each frame reaches
// the client as it is produced and the producer feels real backpressure.
// fasthttp closes the body stream when the client disconnects, which stops
// the drain loop.
func (s *Server) sendStreaming(c *fiber.Ctx, resp *streamhttp.Response) error {
	for key, values := range resp.Header {
		// fasthttp manages body framing itself once SetBodyStream(-1) is set.
		if key == "Transfer-Encoding" {
			continue
		}
		for _, v := range values {
			c.Set(key, v)
		}
	}

	c.Status(resp.StatusCode)
	c.Context().Response.SetBodyStream(resp.Body, -1)
	return nil
}
