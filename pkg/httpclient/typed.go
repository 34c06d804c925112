package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var errEmptyBody = errors.New("empty response body")

// Get issues a GET to path and decodes the JSON response into T.
func Get[T any](ctx context.Context, c Client, path string, opts ...RequestOption) (T, error) {
	return do[T](ctx, c, http.MethodGet, path, nil, opts...)
}

// Post issues a POST with a JSON body and decodes the response into T.
func Post[T any](ctx context.Context, c Client, path string, body any, opts ...RequestOption) (T, error) {
	return do[T](ctx, c, http.MethodPost, path, body, opts...)
}

// Patch issues a PATCH with a JSON body and decodes the response into T.
func Patch[T any](ctx context.Context, c Client, path string, body any, opts ...RequestOption) (T, error) {
	return do[T](ctx, c, http.MethodPatch, path, body, opts...)
}

// Delete issues a DELETE to path and decodes the response body into T.
// A blank body yields the zero value.
func Delete[T any](ctx context.Context, c Client, path string, opts ...RequestOption) (T, error) {
	return do[T](ctx, c, http.MethodDelete, path, nil, opts...)
}

// Send performs a request whose response body carries nothing the caller needs.
// Only transport and status failures are reported.
func Send(ctx context.Context, c Client, method, path string, body any, opts ...RequestOption) error {
	_, err := send(ctx, c, method, path, body, opts...)
	return err
}

func send(ctx context.Context, c Client, method, path string, body any, opts ...RequestOption) (Response, error) {
	if c == nil {
		return nil, errors.New("httpclient: client is nil")
	}

	req := Request{Method: method, Path: path, Body: body}
	for _, opt := range opts {
		opt(&req)
	}
	return c.Do(ctx, req)
}

// do is the single request-construction path shared by every typed verb.
func do[T any](ctx context.Context, c Client, method, path string, body any, opts ...RequestOption) (T, error) {
	var out T
	resp, err := send(ctx, c, method, path, body, opts...)
	if err != nil {
		return out, err
	}

	raw := resp.Body()
	if len(bytes.TrimSpace(raw)) == 0 {
		if method == http.MethodDelete {
			return out, nil
		}
		return out, newDecodeError(method, resolvedURL(resp, path), out, raw, errEmptyBody)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, newDecodeError(method, resolvedURL(resp, path), out, raw, err)
	}
	return out, nil
}

func newDecodeError(method, url string, target any, raw []byte, err error) *DecodeError {
	return &DecodeError{
		Method: method,
		URL:    url,
		Target: fmt.Sprintf("%T", target),
		Body:   raw,
		Err:    err,
	}
}

func resolvedURL(resp Response, path string) string {
	if u := resp.URL(); u != "" {
		return u
	}
	return path
}
