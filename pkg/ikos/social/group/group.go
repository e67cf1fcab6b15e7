// Package group wraps the platform's group endpoints. Data groups and user
// groups share one API under "social/group/<type>/" and differ only in the
// type segment, so a single Service covers both.
package group

import (
	"context"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hashicorp-forge/ikos/pkg/ikos"
)

// GroupType selects which kind of group a Service manages.
type GroupType int

const (
	// Data groups hold shared data sources.
	Data GroupType = iota

	// User groups hold people.
	User
)

// ParseGroupType returns User for "user" and Data for anything else.
func ParseGroupType(s string) GroupType {
	if s == "user" {
		return User
	}
	return Data
}

func (t GroupType) String() string {
	if t == User {
		return "user"
	}
	return "data"
}

// Service manages groups of a single type.
type Service struct {
	client    ikos.Requester
	groupType GroupType
}

// New returns a group service for groupType that sends through client.
func New(client ikos.Requester, groupType GroupType) *Service {
	return &Service{client: client, groupType: groupType}
}

// Type returns the group type this service manages.
func (s *Service) Type() GroupType {
	return s.groupType
}

// BaseURI returns the path prefix for this resource.
func (s *Service) BaseURI() string {
	return "social/group/" + s.groupType.String() + "/"
}

// Raw gives direct access to any endpoint under BaseURI.
func (s *Service) Raw(ctx context.Context, method, endpoint string, params ikos.Params, body any, opts ikos.CallOptions) (ikos.Response, error) {
	return s.client.Raw(ctx, method, s.BaseURI()+endpoint, params, body, opts)
}

// Add creates a group. At least one tag is required; without tags the call
// fails with ErrValidation and nothing is sent. parentID may be empty.
func (s *Service) Add(ctx context.Context, name, description string, tags []string, parentID string) (ikos.Response, error) {
	if err := validation.Validate(tags, validation.Required); err != nil {
		return nil, ikos.NewValidationError("group.Add", "Cannot create data group. Tags are required but empty.", err)
	}

	body := map[string]any{
		"name":        name,
		"description": description,
		"tags":        tags,
	}
	if parentID != "" {
		body["parent"] = parentID
	}
	return s.Raw(ctx, http.MethodPost, "", ikos.Params{}, body, ikos.CallOptions{})
}

// GetAll lists every group of this type visible to the caller.
func (s *Service) GetAll(ctx context.Context) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodGet, "", nil, nil, ikos.CallOptions{})
}

// Get fetches one group.
func (s *Service) Get(ctx context.Context, groupID string) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodGet, ikos.EscapeSegment(groupID), nil, nil, ikos.CallOptions{})
}

var updateRules = validation.Map(
	validation.Key("_id", validation.Required),
).AllowExtraKeys()

// Update replaces a group. obj must carry the group's "_id".
func (s *Service) Update(ctx context.Context, obj ikos.Object) (ikos.Response, error) {
	if obj == nil {
		return nil, ikos.NewValidationError("group.Update", "Data group object is empty.", nil)
	}
	if err := validation.Validate(map[string]any(obj), updateRules); err != nil {
		return nil, ikos.NewValidationError("group.Update", "Cannot update a data group without an ID.", err)
	}
	return s.Raw(ctx, http.MethodPut, "", ikos.Params{}, obj, ikos.CallOptions{})
}

// Remove deletes a group.
func (s *Service) Remove(ctx context.Context, groupID string) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodDelete, ikos.EscapeSegment(groupID), nil, nil, ikos.CallOptions{})
}

// AddMembers adds memberIDs to a group. The call always resolves; callers
// inspect the returned envelope for per-member failures.
func (s *Service) AddMembers(ctx context.Context, groupID string, memberIDs []string) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodPost, ikos.EscapeSegment(groupID)+"/member", ikos.Params{}, memberIDs, ikos.CallOptions{AlwaysResolve: true})
}

// RemoveMembers removes memberIDs from a group. Like AddMembers, it always
// resolves.
func (s *Service) RemoveMembers(ctx context.Context, groupID string, memberIDs []string) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodDelete, ikos.EscapeSegment(groupID)+"/member", ikos.Params{}, memberIDs, ikos.CallOptions{AlwaysResolve: true})
}
