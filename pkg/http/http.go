// Package http is a small fluent client for outgoing calls, used for the
// payment processor's REST API:
//
//	resp, err := http.Post(endpoint).
//	    Header("Authorization", "Bearer "+key).
//	    Form(values).
//	    Send(ctx)
//
// Tests swap DefaultClient.Transport to intercept calls without touching
// the network; ResetTransport restores the production transport.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	gohttp "net/http"
	"net/url"
	"strings"
	"time"
)

var productionTransport = &gohttp.Transport{
	MaxIdleConns:        200,
	MaxIdleConnsPerHost: 100,
	IdleConnTimeout:     90 * time.Second,
}

// DefaultClient is shared by all outgoing requests.
var DefaultClient = &gohttp.Client{Transport: productionTransport}

// ResetTransport restores the production transport after a test has
// injected its own.
func ResetTransport() {
	DefaultClient.Transport = productionTransport
}

// Request accumulates the pieces of an outgoing call.
type Request struct {
	method  string
	url     string
	headers map[string]string
	body    io.Reader
	timeout time.Duration
	err     error
}

// Get starts a GET request.
func Get(url string) *Request { return build(gohttp.MethodGet, url) }

// Post starts a POST request.
func Post(url string) *Request { return build(gohttp.MethodPost, url) }

func build(method, url string) *Request {
	return &Request{
		method:  method,
		url:     url,
		headers: map[string]string{},
		timeout: 30 * time.Second,
	}
}

// Header sets one request header.
func (r *Request) Header(key, value string) *Request {
	r.headers[key] = value
	return r
}

// Timeout overrides the default 30s request timeout.
func (r *Request) Timeout(d time.Duration) *Request {
	r.timeout = d
	return r
}

// Body attaches v as a JSON body.
func (r *Request) Body(v interface{}) *Request {
	data, err := json.Marshal(v)
	if err != nil {
		r.err = fmt.Errorf("http: marshal body: %w", err)
		return r
	}
	r.body = bytes.NewReader(data)
	r.headers["Content-Type"] = "application/json"
	return r
}

// Form attaches values as a form-encoded body.
func (r *Request) Form(values url.Values) *Request {
	r.body = strings.NewReader(values.Encode())
	r.headers["Content-Type"] = "application/x-www-form-urlencoded"
	return r
}

// Send executes the request and reads the full response body. There are no
// retries; a failure is terminal for the caller.
func (r *Request) Send(ctx context.Context) (*Response, error) {
	if r.err != nil {
		return nil, r.err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := gohttp.NewRequestWithContext(ctx, r.method, r.url, r.body)
	if err != nil {
		return nil, fmt.Errorf("http: build request: %w", err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: %s %s: %w", r.method, r.url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("http: read response: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// Response is a completed call with the body fully read.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// JSON unmarshals the body into dest.
func (r *Response) JSON(dest interface{}) error {
	if err := json.Unmarshal(r.Body, dest); err != nil {
		return fmt.Errorf("http: decode response: %w", err)
	}
	return nil
}
