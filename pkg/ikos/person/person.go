// Package person wraps the platform's user endpoints under "user/".
package person

import (
	"context"
	"net/http"

	"github.com/hashicorp-forge/ikos/pkg/ikos"
)

// BaseURI is the path prefix for every call in this package.
const BaseURI = "user/"

// Service reads user profiles.
type Service struct {
	client ikos.Requester
}

// New returns a person service that sends through client.
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

// Get fetches a profile by ID. An empty personID returns the profile of the
// logged in user. personID is appended to the path as given.
func (s *Service) Get(ctx context.Context, personID string, alwaysResolve bool) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodGet, personID, nil, nil, ikos.CallOptions{AlwaysResolve: alwaysResolve})
}
