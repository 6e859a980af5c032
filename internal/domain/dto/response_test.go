package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorResponse_WithRequestID(t *testing.T) {
	tests := []struct {
		name      string
		errCode   string
		message   string
		requestID string
		validate  func(*testing.T, ErrorResponse)
	}{
		{
			name:      "error response with request ID",
			errCode:   ErrCodeInternal,
			message:   "test error",
			requestID: "test-id",
			validate: func(t *testing.T, err ErrorResponse) {
				assert.Equal(t, "test-id", err.RequestID)
				assert.Equal(t, ErrCodeInternal, err.Error)
				assert.Equal(t, "test error", err.Message)
			},
		},
		{
			name:    "error response without request ID",
			errCode: ErrCodeInvalidRequest,
			message: "product_id: must be a positive integer",
			validate: func(t *testing.T, err ErrorResponse) {
				assert.Empty(t, err.RequestID)
				assert.Equal(t, ErrCodeInvalidRequest, err.Error)
				assert.False(t, err.Timestamp.IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewError(tt.errCode, tt.message)
			if tt.requestID != "" {
				err = err.WithRequestID(tt.requestID)
			}
			if tt.validate != nil {
				tt.validate(t, err)
			}
		})
	}
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status       int
		expectedCode string
	}{
		{400, ErrCodeInvalidRequest},
		{401, ErrCodeUnauthorized},
		{403, ErrCodeForbidden},
		{404, ErrCodeNotFound},
		{409, ErrCodeConflict},
		{429, ErrCodeRateLimit},
		{408, ErrCodeTimeout},
		{504, ErrCodeTimeout},
		{500, ErrCodeInternal},
		{502, ErrCodeInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expectedCode, ErrCodeFromStatus(tt.status))
	}
}
