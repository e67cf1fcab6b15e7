package crud

import (
	"github.com/iancoleman/strcase"
)

// Platform constants used when addressing CRUD services and buckets.
const (
	BucketSplit     = ","
	BucketBinaryDir = "/data/"

	ServiceData       = "DATA_SERVICE"
	ServiceManagement = "MANAGEMENT_DB"

	AccessRead  = "READ"
	AccessWrite = "WRITE"

	DataSearchIndex = "SEARCH_INDEX"
	DataStorage     = "STORAGE"

	ManagementBucketStore   = "BUCKET_STORE"
	ManagementBucketStatus  = "BUCKET_STATUS"
	ManagementSharedLibrary = "SHARED_LIBRARY"
	ManagementBucketData    = "BUCKET_DATA"
)

var knownValues = map[string]struct{}{
	ServiceData:             {},
	ServiceManagement:       {},
	AccessRead:              {},
	AccessWrite:             {},
	DataSearchIndex:         {},
	DataStorage:             {},
	ManagementBucketStore:   {},
	ManagementBucketStatus:  {},
	ManagementSharedLibrary: {},
	ManagementBucketData:    {},
}

// NormalizeValue maps loosely written input such as "data-service",
// "searchIndex" or "read" onto the constant spelling. Values that do not
// match a known constant are returned unchanged.
func NormalizeValue(s string) string {
	v := strcase.ToScreamingSnake(s)
	if _, ok := knownValues[v]; ok {
		return v
	}
	return s
}
