package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kalakaari/storefront-service/internal/domain/model"
)

// OrderQueryOptions filters order listings from the dashboard.
type OrderQueryOptions struct {
	Status    model.OrderStatus
	SessionID string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}

// OrdersRepository provides order persistence.
type OrdersRepository struct {
	collection *mongo.Collection
}

// NewOrdersRepository creates a new orders repository.
func NewOrdersRepository(db *MongoDB) *OrdersRepository {
	return &OrdersRepository{
		collection: db.Orders,
	}
}

// Create inserts the order record.
func (r *OrdersRepository) Create(ctx context.Context, order *model.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, order)
	return err
}

// AppendItem pushes a single line item onto the order.
func (r *OrdersRepository) AppendItem(ctx context.Context, reference string, item model.OrderItem) error {
	res, err := r.collection.UpdateOne(
		ctx,
		bson.M{"reference": reference},
		bson.M{
			"$push": bson.M{"items": item},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Finalize records the checkout outcome on the order.
func (r *OrdersRepository) Finalize(ctx context.Context, reference string, skippedItems int, status model.CheckoutStatus) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"reference": reference},
		bson.M{"$set": bson.M{
			"skipped_items":   skippedItems,
			"checkout_status": status,
			"updated_at":      time.Now(),
		}},
	)
	return err
}

// GetByReference returns the order with the given reference, or nil.
func (r *OrdersRepository) GetByReference(ctx context.Context, reference string) (*model.Order, error) {
	var order model.Order
	err := r.collection.FindOne(ctx, bson.M{"reference": reference}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders matching the query options, newest first.
func (r *OrdersRepository) List(ctx context.Context, opts OrderQueryOptions) ([]model.Order, error) {
	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}
	if opts.SessionID != "" {
		filter["session_id"] = opts.SessionID
	}
	if opts.StartTime != nil || opts.EndTime != nil {
		timeFilter := bson.M{}
		if opts.StartTime != nil {
			timeFilter["$gte"] = *opts.StartTime
		}
		if opts.EndTime != nil {
			timeFilter["$lte"] = *opts.EndTime
		}
		filter["created_at"] = timeFilter
	}

	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var orders []model.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Count returns the number of orders matching the query options.
func (r *OrdersRepository) Count(ctx context.Context, opts OrderQueryOptions) (int64, error) {
	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}
	if opts.SessionID != "" {
		filter["session_id"] = opts.SessionID
	}
	return r.collection.CountDocuments(ctx, filter)
}

// UpdateStatus moves the order to a new fulfillment status.
func (r *OrdersRepository) UpdateStatus(ctx context.Context, reference string, status model.OrderStatus) (*model.Order, error) {
	var order model.Order
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"reference": reference},
		bson.M{"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
