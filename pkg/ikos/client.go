package ikos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/tidwall/gjson"
)

// noMessage is the rejection message when the platform reports an error
// without saying what went wrong.
const noMessage = "No message from API."

// Requester is the part of Client the domain services depend on.
type Requester interface {
	Raw(ctx context.Context, method, endpoint string, params Params, body any, opts CallOptions) (Response, error)
}

// Client is the base HTTP wrapper for the platform API. Every call goes
// through Raw, which builds the request, sends it and classifies the
// envelope that comes back.
//
// A Client only holds read-only configuration and is safe for concurrent
// use.
type Client struct {
	baseURL   string
	transport Transport
	logger    hclog.Logger
}

// Compile-time check
var _ Requester = (*Client)(nil)

// New creates a platform API client. A nil cfg uses DefaultConfig.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Apply defaults
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TLSVerify == nil {
		cfg.TLSVerify = DefaultConfig().TLSVerify
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid platform api config: %w", err)
	}

	transport := cfg.Transport
	if transport == nil {
		t := NewHTTPTransport(cfg.NewHTTPClient())
		t.UserAgent = cfg.UserAgent
		transport = t
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Client{
		baseURL:   cfg.BaseURL,
		transport: transport,
		logger:    logger.Named("ikos"),
	}, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Raw performs one call against the platform API.
//
// method is upper-cased and replaced with GET unless it is GET, POST, PUT or
// DELETE. endpoint is appended to the base URL as-is. params and body are
// attached independently, so a call may carry both.
//
// The body is returned when the envelope carries no error, or when
// opts.AlwaysResolve is set. Otherwise the error wraps ErrAPILogic and
// carries the platform's message. Transport failures wrap ErrTransport and
// the transport's own error.
func (c *Client) Raw(ctx context.Context, method, endpoint string, params Params, body any, opts CallOptions) (Response, error) {
	req := newRequest(c.baseURL, method, endpoint, params, body, opts)
	requestID := uuid.NewString()

	c.logger.Debug("HTTP request",
		"request_id", requestID,
		"method", req.Method,
		"url", req.URL,
		"params", req.Params,
		"has_body", req.Body != nil,
		"content_type", req.Header.Get("Content-Type"),
	)

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		c.logger.Debug("HTTP request failed", "request_id", requestID, "error", err)
		return nil, &Error{
			Op:  "Raw",
			Err: fmt.Errorf("%w: %w", ErrTransport, err),
		}
	}
	if resp == nil {
		resp = &TransportResponse{}
	}

	if !opts.AlwaysResolve {
		if msg, failed := envelopeError(resp.Body); failed {
			c.logger.Debug("platform api rejected request",
				"request_id", requestID,
				"message", msg,
			)
			return nil, &Error{Op: "Raw", Err: ErrAPILogic, Msg: msg}
		}
	}

	r, err := decodeResponse(resp.Body)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, endpoint string, params Params, alwaysResolve bool) (Response, error) {
	return c.Raw(ctx, http.MethodGet, endpoint, params, nil, CallOptions{AlwaysResolve: alwaysResolve})
}

// Post performs a POST request. Note the body comes before the query
// parameters, the reverse of Raw.
func (c *Client) Post(ctx context.Context, endpoint string, body any, params Params, opts CallOptions) (Response, error) {
	return c.Raw(ctx, http.MethodPost, endpoint, params, body, opts)
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, endpoint string, body any, params Params, opts CallOptions) (Response, error) {
	return c.Raw(ctx, http.MethodPut, endpoint, params, body, opts)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string, body any, params Params, opts CallOptions) (Response, error) {
	return c.Raw(ctx, http.MethodDelete, endpoint, params, body, opts)
}

// envelopeError reports whether body signals a platform failure and the
// message to reject with. A failure is a top-level "error" key or a truthy
// "response.error".
func envelopeError(body []byte) (string, bool) {
	if len(bytes.TrimSpace(body)) == 0 || !gjson.ValidBytes(body) {
		return "", false
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return "", false
	}

	errVal := root.Get("error")
	if !errVal.Exists() {
		errVal = root.Get("response.error")
		if !errVal.Exists() || !truthy(errVal) {
			return "", false
		}
	}

	return errorMessage(errVal), true
}

func errorMessage(v gjson.Result) string {
	switch {
	case v.IsObject():
		if msg := v.Get("message"); msg.Exists() && truthy(msg) {
			return msg.String()
		}
	case v.Type == gjson.String && v.Str != "":
		return v.Str
	}
	return noMessage
}

// truthy follows JavaScript truthiness for JSON values.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null:
		return false
	case gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	default:
		return true
	}
}

func decodeResponse(body []byte) (Response, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, &Error{
			Op:  "Raw",
			Err: fmt.Errorf("%w: %w", ErrMalformedResponse, err),
		}
	}
	return r, nil
}
