package httpclient

import (
	"context"
	"net/http"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
	// URL is the fully resolved request URL, including the query string.
	URL() string
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// Implementations perform exactly one round trip per Do call and report failures
// as *TransportError or *ResponseError.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}

// Request describes a single outbound call relative to the client's base URL.
type Request struct {
	Method  string
	Path    string
	Query   map[string]string
	Headers map[string]string
	// Body is JSON-encoded when non-nil.
	Body any
}

// RequestOption configures a single request.
type RequestOption func(*Request)

// WithQuery adds a query parameter to the request.
func WithQuery(key, value string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = make(map[string]string)
		}
		r.Query[key] = value
	}
}

// WithHeader adds a header to the request.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}
