package streamhttp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/spool/pkg/sse"
	"github.com/papercomputeco/spool/pkg/stream"
)

var _ = Describe("Handler", func() {
	Context("serving an SSE response over net/http", func() {
		It("delivers headers and the full event stream", func() {
			h := Handler(func(r *http.Request) (*Response, error) {
				p := stream.FromSlice([]sse.Event{
					{Type: "update", ID: "1", Data: map[string]int{"x": 1}},
				})
				return SSE(r.Context(), p), nil
			})

			ts := httptest.NewServer(h)
			defer ts.Close()

			resp, err := http.Get(ts.URL)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(Equal("text/event-stream"))
			Expect(resp.Header.Get("Cache-Control")).To(Equal("no-cache"))

			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(Equal("event: update\nid: 1\ndata: {\"x\":1}\n\n"))
		})
	})

	Context("serving an NDJSON response over net/http", func() {
		It("uses chunked transfer and delivers every line", func() {
			h := Handler(func(r *http.Request) (*Response, error) {
				p := stream.FromSlice([]record{{A: 1}, {A: 2}})
				return NDJSON(r.Context(), p), nil
			})

			ts := httptest.NewServer(h)
			defer ts.Close()

			resp, err := http.Get(ts.URL)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()

			Expect(resp.Header.Get("Content-Type")).To(Equal("application/json"))
			// net/http frames the body itself; no Content-Length means chunked.
			Expect(resp.ContentLength).To(Equal(int64(-1)))

			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(Equal("{\"a\":1}\n{\"a\":2}\n"))
		})
	})

	Context("when building the response fails", func() {
		It("returns an HTTP error before any bytes are streamed", func() {
			h := Handler(func(_ *http.Request) (*Response, error) {
				return nil, errors.New("no such stream")
			})

			ts := httptest.NewServer(h)
			defer ts.Close()

			resp, err := http.Get(ts.URL)
			Expect(err).NotTo(HaveOccurred())
			defer resp.Body.Close()
			Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
		})
	})

	Context("when the client disconnects mid-stream", func() {
		It("stops pulling and closes the producer", func() {
			p := newTrackingProducer([]sse.Event{
				{Data: "1"}, {Data: "2"}, {Data: "3"}, {Data: "4"}, {Data: "5"},
			})
			p.delay = 20 * time.Millisecond

			h := Handler(func(r *http.Request) (*Response, error) {
				return SSE(r.Context(), p), nil
			})

			ts := httptest.NewServer(h)
			defer ts.Close()

			ctx, cancel := context.WithCancel(context.Background())
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL, nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := http.DefaultClient.Do(req)
			Expect(err).NotTo(HaveOccurred())

			// Read one frame, then hang up.
			buf := make([]byte, 16)
			_, err = resp.Body.Read(buf)
			Expect(err).NotTo(HaveOccurred())
			cancel()
			resp.Body.Close()

			Eventually(p.wasClosed).Should(BeTrue())
			pulls := p.pullCount()
			Consistently(p.pullCount).Should(BeNumerically("<=", pulls+1))
		})
	})
})
