// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/repository"
)

type MockOrdersRepositoryInterface struct {
	mock.Mock
}

func (m *MockOrdersRepositoryInterface) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrdersRepositoryInterface) AppendItem(ctx context.Context, reference string, item model.OrderItem) error {
	args := m.Called(ctx, reference, item)
	return args.Error(0)
}

func (m *MockOrdersRepositoryInterface) Finalize(ctx context.Context, reference string, skippedItems int, status model.CheckoutStatus) error {
	args := m.Called(ctx, reference, skippedItems, status)
	return args.Error(0)
}

func (m *MockOrdersRepositoryInterface) GetByReference(ctx context.Context, reference string) (*model.Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrdersRepositoryInterface) List(ctx context.Context, opts repository.OrderQueryOptions) ([]model.Order, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrdersRepositoryInterface) Count(ctx context.Context, opts repository.OrderQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrdersRepositoryInterface) UpdateStatus(ctx context.Context, reference string, status model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, reference, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}
