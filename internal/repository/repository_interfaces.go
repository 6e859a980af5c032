// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"github.com/kalakaari/storefront-service/internal/domain/model"
)

// ProductsRepositoryInterface defines the interface for catalog product operations.
type ProductsRepositoryInterface interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, productID int) (*model.Product, error)
	Upsert(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, productID int) error
	AdjustStock(ctx context.Context, productID, delta int) error
}

// OrdersRepositoryInterface defines the interface for order operations.
type OrdersRepositoryInterface interface {
	Create(ctx context.Context, order *model.Order) error
	AppendItem(ctx context.Context, reference string, item model.OrderItem) error
	Finalize(ctx context.Context, reference string, skippedItems int, status model.CheckoutStatus) error
	GetByReference(ctx context.Context, reference string) (*model.Order, error)
	List(ctx context.Context, opts OrderQueryOptions) ([]model.Order, error)
	Count(ctx context.Context, opts OrderQueryOptions) (int64, error)
	UpdateStatus(ctx context.Context, reference string, status model.OrderStatus) (*model.Order, error)
}

// CustomOrdersRepositoryInterface defines the interface for custom order requests.
type CustomOrdersRepositoryInterface interface {
	Create(ctx context.Context, request *model.CustomOrderRequest) error
	List(ctx context.Context, limit int) ([]model.CustomOrderRequest, error)
}

// EventsRepositoryInterface defines the interface for audit event operations.
type EventsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.EventEntry) error
	CreateMany(ctx context.Context, entries []*model.EventEntry) error
	Query(ctx context.Context, opts model.EventQueryOptions) ([]*model.EventEntry, error)
	Count(ctx context.Context, opts model.EventQueryOptions) (int64, error)
}

// TokenRepositoryInterface defines the interface for token operations.
type TokenRepositoryInterface interface {
	Create(ctx context.Context, token *model.Token) error
	FindByToken(ctx context.Context, tokenString string) (*model.Token, error)
	DeleteByToken(ctx context.Context, tokenString string) error
	DeleteByEmail(ctx context.Context, email, tokenType string) error
	IsBlacklisted(ctx context.Context, tokenString string) (bool, error)
	CleanupExpired(ctx context.Context) error
}
