package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("review", "1700000000123")

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Contains(t, err.Message, "review")
	assert.Contains(t, err.Message, "1700000000123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("rating must be between 1 and 5")

	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPersistence(t *testing.T) {
	cause := stderrors.New("quota exceeded")
	err := Persistence(cause)

	assert.Equal(t, "PERSISTENCE", err.Code)
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
}

func TestWrap_PreservesIdentity(t *testing.T) {
	err := Wrap(ErrNotFound, "load review")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "load review")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NotFound("review", "42"), http.StatusNotFound},
		{"wrapped not found", Wrap(ErrNotFound, "ctx"), http.StatusNotFound},
		{"wrapped invalid input", Wrap(ErrInvalidInput, "ctx"), http.StatusBadRequest},
		{"wrapped persistence", Wrap(ErrPersistence, "ctx"), http.StatusServiceUnavailable},
		{"unknown error", stderrors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
