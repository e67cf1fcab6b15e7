package ikos

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Response is the envelope every platform API call returns:
//
//	{
//	  "response": {"code": 200, "time": 12, "error": "...", "errorCode": "..."},
//	  "data": [...] | {...}
//	}
//
// It is kept as a decoded JSON object so key presence can be told apart
// from a null value.
type Response map[string]any

// ResponseMeta is the typed view of the "response" key.
type ResponseMeta struct {
	// Code is the HTTP response code the platform recorded.
	Code int `json:"code" yaml:"code"`

	// Time is the server side response time.
	Time float64 `json:"time" yaml:"time"`

	// Error is either a message string or an object with a "message" key.
	Error any `json:"error,omitempty" yaml:"error,omitempty"`

	// ErrorCode is the internal error code from the platform.
	ErrorCode string `json:"errorCode,omitempty" yaml:"errorCode,omitempty"`
}

// Object is any platform object. Objects that are persisted carry an "_id".
type Object map[string]any

// ID returns the object's "_id" as a string, or "" when it has none.
func (o Object) ID() string {
	id, ok := o["_id"]
	if !ok || id == nil {
		return ""
	}
	if s, ok := id.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", id)
}

// Decode copies a resolved value (typically the result of ResolveWithData)
// into out, matching fields by their json tags. Numbers and strings are
// converted where needed.
func Decode(v any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("error creating decoder: %w", err)
	}
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("error decoding api data: %w", err)
	}
	return nil
}

// DecodeResponseMeta resolves the "response" key and decodes it. A missing
// key yields a zero ResponseMeta.
func DecodeResponseMeta(r Response) (*ResponseMeta, error) {
	raw, err := ResolveWithResponseMeta(r)
	if err != nil {
		return nil, err
	}

	var meta ResponseMeta
	if raw == nil {
		return &meta, nil
	}
	if err := Decode(raw, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
