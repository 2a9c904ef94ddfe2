package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	apperror "logistics-route-service/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestMapToHTTPStatus_WrappedErrorKeepsCategory(t *testing.T) {
	err := fmt.Errorf("plan route: %w", apperror.NewUnsupportedAlgorithmError("bogus"))

	status, category, msg := apperror.MapToHTTPStatus(err)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "UNSUPPORTED_ALGORITHM", category)
	assert.Contains(t, msg, "bogus")
}

func TestMapToHTTPStatus_UntypedErrorIsInternal(t *testing.T) {
	status, category, msg := apperror.MapToHTTPStatus(fmt.Errorf("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", category)
	assert.Equal(t, "internal server error", msg)
}

func TestMapToHTTPStatus_Table(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperror.NewInvalidRequestError("destinations must not be empty"), http.StatusBadRequest},
		{apperror.NewInvalidGraphError("need at least 2 locations"), http.StatusUnprocessableEntity},
		{apperror.NewNotFoundError("item %q", "INV-404"), http.StatusNotFound},
		{apperror.NewConflictError("stock would go negative"), http.StatusConflict},
		{apperror.NewInternalError("db", fmt.Errorf("down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		status, _, _ := apperror.MapToHTTPStatus(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("forecast: %w", apperror.NewNotFoundError("item"))
	assert.True(t, apperror.Is(err, "NOT_FOUND"))
	assert.False(t, apperror.Is(err, "CONFLICT"))
	assert.False(t, apperror.Is(nil, "NOT_FOUND"))
}
