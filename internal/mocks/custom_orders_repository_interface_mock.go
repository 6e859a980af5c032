// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kalakaari/storefront-service/internal/domain/model"
)

type MockCustomOrdersRepositoryInterface struct {
	mock.Mock
}

func (m *MockCustomOrdersRepositoryInterface) Create(ctx context.Context, request *model.CustomOrderRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockCustomOrdersRepositoryInterface) List(ctx context.Context, limit int) ([]model.CustomOrderRequest, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CustomOrderRequest), args.Error(1)
}
