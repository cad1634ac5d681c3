package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", NotFound("user not found"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", NotFound("x")), http.StatusNotFound},
		{"unauthorized", Unauthorized("missing API key"), http.StatusUnauthorized},
		{"forbidden", Forbidden("access denied"), http.StatusForbidden},
		{"bad request", BadRequest("invalid id"), http.StatusBadRequest},
		{"unsupported media", UnsupportedMedia("json required"), http.StatusUnsupportedMediaType},
		{"app error without sentinel", &AppError{Message: "boom", Err: errors.New("db")}, http.StatusInternalServerError},
		{"plain error", errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusCode(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "product not found", PublicMessage(NotFound("product not found")))
	assert.Equal(t, "Internal server error", PublicMessage(&AppError{Message: "secret detail", Err: errors.New("db down")}))
	assert.Equal(t, "Forbidden", PublicMessage(&AppError{Err: ErrForbidden}))
}

func TestAppError_Unwrap(t *testing.T) {
	err := NotFound("user not found")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "user not found: resource not found", err.Error())
}
