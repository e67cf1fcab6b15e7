// Package ikostest provides an in-memory ikos.Transport for tests.
package ikostest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/ikos/pkg/ikos"
)

// BaseURL is the base URL used by NewClient.
const BaseURL = "/api/"

// Transport records every request and answers with Response/Err, or with
// Handler when it is set.
type Transport struct {
	mu       sync.Mutex
	requests []*ikos.Request

	Response *ikos.TransportResponse
	Err      error
	Handler  func(req *ikos.Request) (*ikos.TransportResponse, error)
}

var _ ikos.Transport = (*Transport)(nil)

// New returns a Transport answering every call with an empty success
// envelope.
func New() *Transport {
	return &Transport{
		Response: JSON(map[string]any{
			"response": map[string]any{"code": 200},
		}),
	}
}

// Do implements ikos.Transport.
func (t *Transport) Do(_ context.Context, req *ikos.Request) (*ikos.TransportResponse, error) {
	t.mu.Lock()
	t.requests = append(t.requests, req)
	handler, resp, err := t.Handler, t.Response, t.Err
	t.mu.Unlock()

	if handler != nil {
		return handler(req)
	}
	return resp, err
}

// Requests returns every request seen so far.
func (t *Transport) Requests() []*ikos.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*ikos.Request, len(t.requests))
	copy(out, t.requests)
	return out
}

// Last returns the most recent request, or nil.
func (t *Transport) Last() *ikos.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return nil
	}
	return t.requests[len(t.requests)-1]
}

// NewClient returns a client with base URL BaseURL that sends through t.
func NewClient(tb testing.TB, t *Transport) *ikos.Client {
	tb.Helper()

	client, err := ikos.New(&ikos.Config{
		BaseURL:   BaseURL,
		Transport: t,
		Logger:    hclog.NewNullLogger(),
	})
	if err != nil {
		tb.Fatalf("failed to create client: %v", err)
	}
	return client
}

// JSON encodes v as a 200 response.
func JSON(v any) *ikos.TransportResponse {
	body, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return &ikos.TransportResponse{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       body,
	}
}
