package ikos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "error with message",
			err: &Error{
				Op:  "Raw",
				Err: ErrAPILogic,
				Msg: "bad",
			},
			expected: "Raw: bad",
		},
		{
			name: "error without message",
			err: &Error{
				Op:  "Raw",
				Err: ErrTransport,
			},
			expected: "Raw: transport error",
		},
		{
			name:     "validation error",
			err:      NewValidationError("group.Add", "tags are required", nil),
			expected: "group.Add: tags are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_Is(t *testing.T) {
	cause := errors.New("tags: cannot be blank")

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "sentinel",
			err:    &Error{Op: "ResolveWithData", Err: ErrMissingField},
			target: ErrMissingField,
			want:   true,
		},
		{
			name:   "different sentinel",
			err:    &Error{Op: "ResolveWithData", Err: ErrMissingField},
			target: ErrEmptyResponse,
			want:   false,
		},
		{
			name:   "validation with cause matches sentinel",
			err:    NewValidationError("group.Add", "tags are required", cause),
			target: ErrValidation,
			want:   true,
		},
		{
			name:   "validation with cause matches cause",
			err:    NewValidationError("group.Add", "tags are required", cause),
			target: cause,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "bad", (&Error{Op: "Raw", Err: ErrAPILogic, Msg: "bad"}).Message())
	assert.Equal(t, "transport error", (&Error{Op: "Raw", Err: ErrTransport}).Message())
	assert.Equal(t, "", (&Error{Op: "Raw"}).Message())
}

func TestStatusError_Error(t *testing.T) {
	assert.Equal(t, "http 404 Not Found", (&StatusError{StatusCode: 404, Status: "404 Not Found"}).Error())
	assert.Equal(t, "http 500 Internal Server Error: boom",
		(&StatusError{StatusCode: 500, Status: "500 Internal Server Error", Body: []byte("boom")}).Error())
}
