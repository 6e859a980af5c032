// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kalakaari/storefront-service/internal/domain/model"
)

type MockEventsRepositoryInterface struct {
	mock.Mock
}

func (m *MockEventsRepositoryInterface) Create(ctx context.Context, entry *model.EventEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEventsRepositoryInterface) CreateMany(ctx context.Context, entries []*model.EventEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockEventsRepositoryInterface) Query(ctx context.Context, opts model.EventQueryOptions) ([]*model.EventEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.EventEntry), args.Error(1)
}

func (m *MockEventsRepositoryInterface) Count(ctx context.Context, opts model.EventQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}
