package ikos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Transport sends a Request and returns the fully read response. Any error
// it returns is passed to the caller of Raw unexamined, wrapped with
// ErrTransport.
type Transport interface {
	Do(ctx context.Context, req *Request) (*TransportResponse, error)
}

// TransportResponse is a buffered HTTP response.
type TransportResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// HTTPTransport is the default Transport, backed by an *http.Client.
//
// Bodies are JSON encoded unless they are []byte or an io.Reader, which are
// sent as-is. Non-2xx responses are returned as *StatusError.
type HTTPTransport struct {
	Client    *http.Client
	UserAgent string
}

// NewHTTPTransport wraps client. A nil client uses http.DefaultClient.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{Client: client}
}

// Do implements Transport.
func (t *HTTPTransport) Do(ctx context.Context, r *Request) (*TransportResponse, error) {
	endpoint := r.URL
	if len(r.Params) > 0 {
		if q := r.Params.Encode(); q != "" {
			endpoint += "?" + q
		}
	}

	var (
		bodyReader  io.Reader
		contentType string
	)
	switch b := r.Body.(type) {
	case nil:
	case []byte:
		bodyReader = bytes.NewReader(b)
	case io.Reader:
		bodyReader = b
	default:
		bodyBytes, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
		contentType = "application/json;charset=utf-8"
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	if t.UserAgent != "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       respBody,
		}
	}

	return &TransportResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}
