package httpclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID is attached to every request that does not already carry one.
	HeaderRequestID = "X-Request-ID"

	defaultTimeout = 15 * time.Second
)

// Options configures a RestyClient.
type Options struct {
	BaseURL string
	// Timeout bounds each round trip. Zero selects the default.
	Timeout time.Duration
	Headers map[string]string
	Logger  Logger
}

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
	log    Logger
}

// NewRestyClient creates a RestyClient bound to opts.BaseURL.
func NewRestyClient(opts Options) (*RestyClient, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("httpclient: base url is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	log := ensureLogger(opts.Logger)
	c := newRestyBaseClient(opts.Timeout).
		SetBaseURL(base).
		SetHeader("Accept", "application/json")
	if len(opts.Headers) > 0 {
		c.SetHeaders(opts.Headers)
	}

	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if req.Header.Get(HeaderRequestID) == "" {
			req.SetHeader(HeaderRequestID, uuid.NewString())
		}
		return nil
	})
	c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		log.DebugObj("http round trip", "http_call", map[string]any{
			"method":     resp.Request.Method,
			"url":        resp.Request.URL,
			"status":     resp.StatusCode(),
			"request_id": resp.Request.Header.Get(HeaderRequestID),
			"elapsed_ms": resp.Time().Milliseconds(),
		})
		return nil
	})

	return &RestyClient{client: c, log: log}, nil
}

// newRestyBaseClient creates a resty.Client with the specified timeout and retries disabled.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetRetryCount(0)
	return c
}

// Do performs one HTTP request. Non-2xx responses are returned together with a *ResponseError.
func (r *RestyClient) Do(ctx context.Context, req Request) (Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	rr := r.client.R().SetContext(ctx)
	if len(req.Query) > 0 {
		rr.SetQueryParams(req.Query)
	}
	if len(req.Headers) > 0 {
		rr.SetHeaders(req.Headers)
	}
	if req.Body != nil {
		rr.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	resp, err := rr.Execute(method, req.Path)
	if err != nil {
		terr := newTransportError(method, requestURL(rr, req.Path), err)
		r.log.WarnObj("http request failed", "http_error", map[string]any{
			"method":  method,
			"url":     terr.URL,
			"timeout": terr.Timeout,
			"error":   err.Error(),
		})
		return nil, terr
	}

	adapted := &restyResponseAdapter{resp: resp}
	if !resp.IsSuccess() {
		return adapted, &ResponseError{
			Method:     method,
			URL:        requestURL(rr, req.Path),
			StatusCode: resp.StatusCode(),
			Body:       resp.Body(),
		}
	}
	return adapted, nil
}

func newTransportError(method, url string, err error) *TransportError {
	te := &TransportError{Method: method, URL: url, Err: err}
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		te.Timeout = true
	}
	return te
}

// requestURL prefers the URL resty resolved against the base URL.
func requestURL(rr *resty.Request, path string) string {
	if rr != nil && rr.URL != "" {
		return rr.URL
	}
	return path
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }

func (r *restyResponseAdapter) URL() string {
	if raw := r.resp.RawResponse; raw != nil && raw.Request != nil {
		return raw.Request.URL.String()
	}
	return r.resp.Request.URL
}
