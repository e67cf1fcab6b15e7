// Package auth wraps the platform's session endpoints under "auth/".
package auth

import (
	"context"
	"net/http"

	"github.com/hashicorp-forge/ikos/pkg/ikos"
)

// BaseURI is the path prefix for every call in this package.
const BaseURI = "auth/"

// Service exposes login, logout and keep-alive.
type Service struct {
	client ikos.Requester
}

// New returns an auth service that sends through client.
func New(client ikos.Requester) *Service {
	return &Service{client: client}
}

// BaseURI returns the path prefix for this resource.
func (s *Service) BaseURI() string {
	return BaseURI
}

// Raw gives direct access to any endpoint under BaseURI.
func (s *Service) Raw(ctx context.Context, method, endpoint string, params ikos.Params, body any, opts ikos.CallOptions) (ikos.Response, error) {
	return s.client.Raw(ctx, method, s.BaseURI()+endpoint, params, body, opts)
}

// LoginOptions are the optional login flags.
type LoginOptions struct {
	// ReturnTempKey asks for a temporary API token.
	ReturnTempKey bool

	// Override set to false keeps other sessions for the user alive. Nil
	// leaves the platform default, which logs them out.
	Override *bool

	// ReturnURL is used by the post/redirect login flow.
	ReturnURL string

	// MultiLogin allows concurrent sessions (admin only).
	MultiLogin bool
}

// Login starts a session. The password is hashed with ikos.HashPassword
// before it is sent.
func (s *Service) Login(ctx context.Context, username, password string, opts LoginOptions) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodPost, "", nil, loginPayload(username, password, opts), ikos.CallOptions{})
}

func loginPayload(username, password string, opts LoginOptions) map[string]any {
	payload := map[string]any{
		"username": username,
		"password": ikos.HashPassword(password),
	}
	if opts.ReturnTempKey {
		payload["return_tmp_key"] = true
	}
	if opts.Override != nil && !*opts.Override {
		payload["override"] = false
	}
	if opts.ReturnURL != "" {
		payload["returnurl"] = opts.ReturnURL
	}
	if opts.MultiLogin {
		payload["multi"] = true
	}
	return payload
}

// Logout ends the current session.
func (s *Service) Logout(ctx context.Context) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodDelete, "", nil, nil, ikos.CallOptions{})
}

// KeepAlive refreshes the current session.
func (s *Service) KeepAlive(ctx context.Context) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodPut, "", nil, nil, ikos.CallOptions{})
}
