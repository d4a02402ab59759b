package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("missing", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"method", NewMethodNotAllowedError("nope"), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"media type", NewUnsupportedMediaTypeError("json only"), http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
		{"rate", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestCustomCode(t *testing.T) {
	code := "ACCOUNT_NOT_FOUND"
	err := NewNotFoundError("Account not found", true, &code)
	assert.Equal(t, code, err.Code)
	assert.True(t, err.Override)
}

func TestHTTPError_IsAndAs(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("gone", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, "gone", httpErr.Error())
}

func TestWithMessage(t *testing.T) {
	base := NewBadRequestError("a", true, nil, []FieldError{{Field: "name", Error: "is required"}}, nil)
	copied := base.WithMessage("b")

	assert.Equal(t, "a", base.Message)
	assert.Equal(t, "b", copied.Message)
	assert.Equal(t, base.Errors, copied.Errors)
}

func TestValidationError(t *testing.T) {
	err := ValidationError(errors.New("name is required"))
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Validation failed: name is required", err.Message)
}
