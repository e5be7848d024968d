package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"app error", ErrNotFound, http.StatusNotFound},
		{"wrapped app error", fmt.Errorf("list: %w", ErrNoUsers), http.StatusNotFound},
		{"upstream", NewUpstreamError("receipts", errors.New("dial tcp")), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, GetAppError(tt.err).Code)
		})
	}
}

func TestNewUpstreamErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamError("users", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to fetch users", err.Message)
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, IsAppError(err))
}
