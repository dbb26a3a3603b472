package streamhttp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/spool/pkg/ndjson"
	"github.com/papercomputeco/spool/pkg/stream"
)

type record struct {
	A int `json:"a"`
}

var _ = Describe("NDJSON", func() {
	It("emits one JSON line per produced value, in order", func() {
		p := stream.FromSlice([]record{{A: 1}, {A: 2}})
		resp := NDJSON(context.Background(), p)

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(Equal("{\"a\":1}\n{\"a\":2}\n"))
	})

	It("emits nothing for an empty producer", func() {
		resp := NDJSON(context.Background(), stream.FromSlice([]record{}))

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(body).To(BeEmpty())
	})

	It("sets the chunked JSON default headers", func() {
		resp := NDJSON(context.Background(), stream.FromSlice([]record{}))
		defer resp.Body.Close()

		Expect(resp.StatusCode).To(Equal(200))
		Expect(resp.Header.Get("Content-Type")).To(Equal("application/json"))
		Expect(resp.Header.Get("Transfer-Encoding")).To(Equal("chunked"))
		Expect(resp.Header.Get("Cache-Control")).To(Equal("no-cache"))
		Expect(resp.Header.Get("Connection")).To(Equal("keep-alive"))
	})

	It("replaces only the overridden default header", func() {
		resp := NDJSON(context.Background(), stream.FromSlice([]record{}),
			WithHeader("Cache-Control", "no-store"),
			WithHeader("X-Stream-Name", "test"),
		)
		defer resp.Body.Close()

		Expect(resp.Header.Get("Cache-Control")).To(Equal("no-store"))
		Expect(resp.Header.Get("X-Stream-Name")).To(Equal("test"))
		Expect(resp.Header.Get("Content-Type")).To(Equal("application/json"))
		Expect(resp.Header.Get("Connection")).To(Equal("keep-alive"))
	})

	It("round-trips the produced values through the NDJSON reader", func() {
		values := []map[string]any{
			{"seq": 0.0, "message": "first"},
			{"seq": 1.0, "message": "second"},
			{"seq": 2.0, "message": "third"},
		}
		resp := NDJSON(context.Background(), stream.FromSlice(values))

		body, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())

		r := ndjson.NewReader(strings.NewReader(string(body)))
		for _, want := range values {
			line, err := r.Next()
			Expect(err).NotTo(HaveOccurred())

			var got map[string]any
			Expect(json.Unmarshal(line, &got)).To(Succeed())
			Expect(got).To(Equal(want))
		}

		end, err := r.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(end).To(BeNil())
	})

	Context("when the producer fails mid-stream", func() {
		It("emits the produced lines, one error line, then closes", func() {
			p := newTrackingProducer([]record{{A: 1}, {A: 2}, {A: 3}})
			p.failAfter = 2
			p.failErr = errors.New("generator exploded")

			resp := NDJSON(context.Background(), p)
			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())

			Expect(string(body)).To(Equal(
				"{\"a\":1}\n{\"a\":2}\n{\"error\":\"generator exploded\"}\n",
			))
		})

		It("pulls nothing further after the failure", func() {
			p := newTrackingProducer([]record{{A: 1}})
			p.failAfter = 1
			p.failErr = errors.New("boom")

			resp := NDJSON(context.Background(), p)
			_, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())

			// one successful pull plus the failing one
			Expect(p.pullCount()).To(Equal(2))
			Expect(p.wasClosed()).To(BeTrue())
		})

		It("renders a fallback message for errors with no text", func() {
			p := newTrackingProducer([]record{})
			p.failAfter = 0
			p.failErr = errors.New("")

			resp := NDJSON(context.Background(), p)
			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(Equal("{\"error\":\"unknown stream error\"}\n"))
		})
	})

	Context("when a value cannot be encoded", func() {
		It("emits one error line and closes", func() {
			p := stream.FromSlice([]any{func() {}})
			resp := NDJSON(context.Background(), p)

			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(HavePrefix("{\"error\":"))
			Expect(strings.Count(string(body), "\n")).To(Equal(1))
		})
	})

	Context("when the consumer disconnects", func() {
		It("stops pulling and closes the producer", func() {
			p := newTrackingProducer([]record{{A: 1}, {A: 2}, {A: 3}, {A: 4}})
			p.delay = 10 * time.Millisecond

			resp := NDJSON(context.Background(), p)

			// Read the first frame, then walk away.
			buf := make([]byte, 16)
			_, err := resp.Body.Read(buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Body.Close()).To(Succeed())

			Eventually(p.wasClosed).Should(BeTrue())
			pulls := p.pullCount()
			Consistently(p.pullCount).Should(Equal(pulls))
		})
	})

	Context("when the context is cancelled", func() {
		It("aborts the drain and closes the producer", func() {
			p := newTrackingProducer([]record{{A: 1}, {A: 2}, {A: 3}})
			p.delay = 50 * time.Millisecond

			ctx, cancel := context.WithCancel(context.Background())
			resp := NDJSON(ctx, p)
			cancel()

			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			// cancellation produces no in-band frame
			Expect(body).To(BeEmpty())
			Eventually(p.wasClosed).Should(BeTrue())
		})
	})
})
