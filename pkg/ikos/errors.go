package ikos

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyResponse is returned by the resolvers when the envelope is nil
	// or carries no keys at all.
	ErrEmptyResponse = errors.New("empty api response")

	// ErrMissingField is returned when the envelope has no data key.
	ErrMissingField = errors.New("api response does not contain a data object")

	// ErrMissingIdentifier is returned when data has no _id.
	ErrMissingIdentifier = errors.New("data object does not contain an id")

	// ErrAPILogic marks a call the transport completed but the platform
	// reported as failed inside the envelope.
	ErrAPILogic = errors.New("platform api reported an error")

	// ErrTransport wraps any error the transport returned.
	ErrTransport = errors.New("transport error")

	// ErrValidation marks a call a service refused before touching the
	// network.
	ErrValidation = errors.New("validation failed")

	// ErrMalformedResponse is returned when a non-empty body is not a JSON
	// object.
	ErrMalformedResponse = errors.New("api response is not a json object")
)

// Error is the error type returned by every operation in this module.
type Error struct {
	// Op is the operation that failed, e.g. "Raw" or "group.Update".
	Op string

	// Err is the sentinel (and, when present, the underlying cause).
	Err error

	// Msg is the human readable message. For ErrAPILogic it is the message
	// the platform sent back.
	Msg string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the bare message without the operation prefix. For
// platform errors this is exactly what the API sent.
func (e *Error) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

// NewValidationError builds an ErrValidation error for op. cause may be nil.
func NewValidationError(op, msg string, cause error) *Error {
	err := ErrValidation
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrValidation, cause)
	}
	return &Error{Op: op, Err: err, Msg: msg}
}

// StatusError is returned by HTTPTransport for non-2xx responses.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("http %s: %s", e.Status, string(e.Body))
	}
	return fmt.Sprintf("http %s", e.Status)
}
