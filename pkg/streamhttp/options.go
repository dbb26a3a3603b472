package streamhttp

// Option customizes a built Response.
type Option func(*options)

type options struct {
	headers map[string]string
	comment string
}

// WithHeader sets one response header after the per-format defaults are
// applied. A key matching a default replaces it; other defaults are kept.
func WithHeader(key, value string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// WithHeaders sets multiple response headers with WithHeader semantics.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.headers[k] = v
		}
	}
}

// WithComment configures an initial SSE comment, emitted before the first
// event regardless of producer latency. It keeps intermediaries from timing
// out an idle connection and is ignored by conformant clients.
// NDJSON responses have no comment syntax; the option is a no-op there.
func WithComment(text string) Option {
	return func(o *options) {
		o.comment = text
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
