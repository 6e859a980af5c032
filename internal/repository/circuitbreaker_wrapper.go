// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"github.com/kalakaari/storefront-service/internal/circuitbreaker"
	"github.com/kalakaari/storefront-service/internal/domain/model"
)

// ProductsRepositoryWithCircuitBreaker wraps ProductsRepository with circuit breaker protection.
type ProductsRepositoryWithCircuitBreaker struct {
	repo           ProductsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewProductsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewProductsRepositoryWithCircuitBreaker(repo ProductsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ProductsRepositoryWithCircuitBreaker {
	return &ProductsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// List returns all products with circuit breaker protection. An open
// circuit returns no products and no error; the catalog then serves its
// previous snapshot.
func (r *ProductsRepositoryWithCircuitBreaker) List(ctx context.Context) ([]model.Product, error) {
	var result []model.Product
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx)
		return cbErr
	})
	if err == circuitbreaker.ErrCircuitOpen {
		return nil, nil
	}
	return result, err
}

// Get returns a product with circuit breaker protection.
func (r *ProductsRepositoryWithCircuitBreaker) Get(ctx context.Context, productID int) (*model.Product, error) {
	var result *model.Product
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Get(ctx, productID)
		return cbErr
	})
	return result, err
}

// Upsert creates or replaces a product with circuit breaker protection.
func (r *ProductsRepositoryWithCircuitBreaker) Upsert(ctx context.Context, product *model.Product) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Upsert(ctx, product)
	})
}

// Delete removes a product with circuit breaker protection.
func (r *ProductsRepositoryWithCircuitBreaker) Delete(ctx context.Context, productID int) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, productID)
	})
}

// AdjustStock changes available quantity with circuit breaker protection.
func (r *ProductsRepositoryWithCircuitBreaker) AdjustStock(ctx context.Context, productID, delta int) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.AdjustStock(ctx, productID, delta)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ProductsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// OrdersRepositoryWithCircuitBreaker wraps OrdersRepository with circuit breaker protection.
// Order writes are never swallowed on an open circuit; checkout's own
// retry-and-skip policy decides what to do with the failure.
type OrdersRepositoryWithCircuitBreaker struct {
	repo           OrdersRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewOrdersRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewOrdersRepositoryWithCircuitBreaker(repo OrdersRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *OrdersRepositoryWithCircuitBreaker {
	return &OrdersRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create inserts the order record with circuit breaker protection.
func (r *OrdersRepositoryWithCircuitBreaker) Create(ctx context.Context, order *model.Order) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, order)
	})
}

// AppendItem pushes a line item with circuit breaker protection.
func (r *OrdersRepositoryWithCircuitBreaker) AppendItem(ctx context.Context, reference string, item model.OrderItem) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.AppendItem(ctx, reference, item)
	})
}

// Finalize records the checkout outcome with circuit breaker protection.
func (r *OrdersRepositoryWithCircuitBreaker) Finalize(ctx context.Context, reference string, skippedItems int, status model.CheckoutStatus) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Finalize(ctx, reference, skippedItems, status)
	})
}

// GetByReference returns an order with circuit breaker protection.
func (r *OrdersRepositoryWithCircuitBreaker) GetByReference(ctx context.Context, reference string) (*model.Order, error) {
	var result *model.Order
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetByReference(ctx, reference)
		return cbErr
	})
	return result, err
}

// List returns orders with circuit breaker protection.
func (r *OrdersRepositoryWithCircuitBreaker) List(ctx context.Context, opts OrderQueryOptions) ([]model.Order, error) {
	var result []model.Order
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the order count with circuit breaker protection.
func (r *OrdersRepositoryWithCircuitBreaker) Count(ctx context.Context, opts OrderQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// UpdateStatus moves the order's fulfillment status with circuit breaker protection.
func (r *OrdersRepositoryWithCircuitBreaker) UpdateStatus(ctx context.Context, reference string, status model.OrderStatus) (*model.Order, error) {
	var result *model.Order
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.UpdateStatus(ctx, reference, status)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *OrdersRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// EventsRepositoryWithCircuitBreaker wraps EventsRepository with circuit breaker protection.
type EventsRepositoryWithCircuitBreaker struct {
	repo           EventsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewEventsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewEventsRepositoryWithCircuitBreaker(repo EventsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *EventsRepositoryWithCircuitBreaker {
	return &EventsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores an event entry. Audit events are non-critical: an open
// circuit drops the entry silently.
func (r *EventsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *model.EventEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		return nil
	}
	return err
}

// CreateMany stores multiple event entries, dropped silently on an open circuit.
func (r *EventsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*model.EventEntry) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		return nil
	}
	return err
}

// Query retrieves event entries with circuit breaker protection.
func (r *EventsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.EventQueryOptions) ([]*model.EventEntry, error) {
	var result []*model.EventEntry
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the event count with circuit breaker protection.
func (r *EventsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.EventQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *EventsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
