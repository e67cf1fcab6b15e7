// Package crud wraps the platform's bucket object storage under "crud/".
//
// Every call is addressed by a CRUD service, an access flag and the service
// identifier, compiled into a path by CompileParts.
package crud

import (
	"context"
	"net/http"
	"strings"

	"github.com/hashicorp-forge/ikos/pkg/ikos"
)

// BaseURI is the path prefix for every call in this package.
const BaseURI = "crud/"

// Service is the CRUD object storage service.
type Service struct {
	client ikos.Requester
}

// New returns a CRUD service that sends through client.
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

// CompileParts joins svc, rw and id into "svc/rw/id", escaping each one
// independently, and appends suffix unescaped.
func CompileParts(svc, rw, id, suffix string) string {
	return ikos.EscapeSegment(svc) + "/" + ikos.EscapeSegment(rw) + "/" + ikos.EscapeSegment(id) + suffix
}

// BucketParams builds the query parameters shared by every call. Empty buckets and a zero
// limit are left out.
func BucketParams(buckets []string, limit int) ikos.Params {
	params := ikos.Params{}
	if len(buckets) > 0 {
		params["buckets"] = strings.Join(buckets, BucketSplit)
	}
	if limit > 0 {
		params["limit"] = limit
	}
	return params
}

// CreateJSONObject stores object in buckets.
func (s *Service) CreateJSONObject(ctx context.Context, svc, rw, id string, buckets []string, object any) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodPost, CompileParts(svc, rw, id, "/object"), BucketParams(buckets, 0), object, ikos.CallOptions{})
}

// CreateBucketFile uploads file into buckets. file is sent as-is when it is
// a []byte or io.Reader.
func (s *Service) CreateBucketFile(ctx context.Context, svc, rw, id string, buckets []string, file any) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodPost, CompileParts(svc, rw, id, "/file"), BucketParams(buckets, 0), file, ikos.CallOptions{})
}

// SimpleQuery lists objects in buckets.
func (s *Service) SimpleQuery(ctx context.Context, svc, rw, id string, buckets []string, limit int) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodGet, CompileParts(svc, rw, id, "/query"), BucketParams(buckets, limit), nil, ikos.CallOptions{})
}

// AdvancedQuery runs query against buckets.
func (s *Service) AdvancedQuery(ctx context.Context, svc, rw, id string, query any, buckets []string, limit int) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodPost, CompileParts(svc, rw, id, "/query"), BucketParams(buckets, limit), query, ikos.CallOptions{})
}

// GetByID fetches a single object.
func (s *Service) GetByID(ctx context.Context, svc, rw, id, objectID string, buckets []string, limit int) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodGet, CompileParts(svc, rw, id, "/object/"+ikos.EscapeSegment(objectID)), BucketParams(buckets, limit), nil, ikos.CallOptions{})
}

// AdvancedCount counts the objects in buckets.
func (s *Service) AdvancedCount(ctx context.Context, svc, rw, id string, buckets []string) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodGet, CompileParts(svc, rw, id, "/count"), BucketParams(buckets, 0), nil, ikos.CallOptions{})
}

// UpdateJSON applies update to the objects in buckets.
func (s *Service) UpdateJSON(ctx context.Context, svc, rw, id string, buckets []string, update any) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodPut, CompileParts(svc, rw, id, "/object"), BucketParams(buckets, 0), update, ikos.CallOptions{})
}

// DeleteByQuery removes the objects matching query. The platform takes this
// as a PUT on the object collection.
func (s *Service) DeleteByQuery(ctx context.Context, svc, rw, id string, buckets []string, query any) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodPut, CompileParts(svc, rw, id, "/object"), BucketParams(buckets, 0), query, ikos.CallOptions{})
}

// DeleteByID is meant to remove a single object.
//
// It currently issues a GET on the object, identical to GetByID, and so does
// not delete anything. Callers rely on this request shape; use Raw with
// http.MethodDelete to send an actual delete.
func (s *Service) DeleteByID(ctx context.Context, svc, rw, id, objectID string, buckets []string, limit int) (ikos.Response, error) {
	return s.Raw(ctx, http.MethodGet, CompileParts(svc, rw, id, "/object/"+ikos.EscapeSegment(objectID)), BucketParams(buckets, limit), nil, ikos.CallOptions{})
}
