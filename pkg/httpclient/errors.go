package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const maxSnippetBytes = 512

// TransportError reports a request that was not sent or got no response.
type TransportError struct {
	Method  string
	URL     string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	kind := "transport"
	if e.Timeout {
		kind = "timeout"
	}
	return fmt.Sprintf("httpclient: %s %s: %s: %v", e.Method, e.URL, kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseError reports a response whose status is outside 2xx.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	// Body is the backend's error payload, possibly empty.
	Body []byte
}

func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("httpclient: %s %s: status %d", e.Method, e.URL, e.StatusCode)
	if s := snippet(e.Body); s != "" {
		msg += ": " + s
	}
	return msg
}

// DecodeError reports a successful response body that does not match the expected shape.
type DecodeError struct {
	Method string
	URL    string
	Target string
	Body   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("httpclient: %s %s: decode into %s: %v (body: %s)", e.Method, e.URL, e.Target, e.Err, snippet(e.Body))
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a ResponseError with status 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by a ResponseError in err's chain, or 0.
func StatusCode(err error) int {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func snippet(body []byte) string {
	if len(body) > maxSnippetBytes {
		body = body[:maxSnippetBytes]
	}
	return strings.TrimSpace(string(body))
}
