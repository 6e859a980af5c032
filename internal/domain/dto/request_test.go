package dto

import (
	"testing"

	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
)

func TestAddLineRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		request       AddLineRequest
		expectedError bool
	}{
		{
			name:          "valid request",
			request:       AddLineRequest{ProductID: 5, Quantity: 2},
			expectedError: false,
		},
		{
			name:          "valid request with add-ons",
			request:       AddLineRequest{ProductID: 5, Quantity: 1, AddOns: model.AddOnSelection{GiftWrap: true, Message: "Happy Diwali"}},
			expectedError: false,
		},
		{
			name:          "zero product id",
			request:       AddLineRequest{ProductID: 0, Quantity: 1},
			expectedError: true,
		},
		{
			name:          "negative product id",
			request:       AddLineRequest{ProductID: -5, Quantity: 1},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyDiscountRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		request       ApplyDiscountRequest
		expectedError bool
		expectedField string
	}{
		{
			name:          "valid flat discount",
			request:       ApplyDiscountRequest{Type: "flat", Value: 50},
			expectedError: false,
		},
		{
			name:          "valid percent discount",
			request:       ApplyDiscountRequest{Type: "percent", Value: 15, Code: "FESTIVE15"},
			expectedError: false,
		},
		{
			name:          "hundred percent is allowed",
			request:       ApplyDiscountRequest{Type: "percent", Value: 100},
			expectedError: false,
		},
		{
			name:          "unknown type",
			request:       ApplyDiscountRequest{Type: "bogo", Value: 10},
			expectedError: true,
			expectedField: "type",
		},
		{
			name:          "zero value",
			request:       ApplyDiscountRequest{Type: "flat", Value: 0},
			expectedError: true,
			expectedField: "value",
		},
		{
			name:          "negative value",
			request:       ApplyDiscountRequest{Type: "flat", Value: -10},
			expectedError: true,
			expectedField: "value",
		},
		{
			name:          "percent above hundred",
			request:       ApplyDiscountRequest{Type: "percent", Value: 150},
			expectedError: true,
			expectedField: "value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectedError {
				assert.Error(t, err)
				validationErr, ok := err.(*ValidationError)
				assert.True(t, ok)
				assert.Equal(t, tt.expectedField, validationErr.Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name          string
		validationErr *ValidationError
		expected      string
	}{
		{
			name: "validation error message format",
			validationErr: &ValidationError{
				Field:   "product_id",
				Message: "must be a positive integer",
			},
			expected: "product_id: must be a positive integer",
		},
		{
			name: "validation error with different field",
			validationErr: &ValidationError{
				Field:   "pincode",
				Message: "must be 6 digits",
			},
			expected: "pincode: must be 6 digits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.validationErr.Error())
		})
	}
}
