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

// CustomOrdersRepository persists free-form commission requests.
type CustomOrdersRepository struct {
	collection *mongo.Collection
}

// NewCustomOrdersRepository creates a new custom orders repository.
func NewCustomOrdersRepository(db *MongoDB) *CustomOrdersRepository {
	return &CustomOrdersRepository{
		collection: db.CustomOrders,
	}
}

// Create inserts a new custom order request.
func (r *CustomOrdersRepository) Create(ctx context.Context, request *model.CustomOrderRequest) error {
	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, request)
	return err
}

// List returns custom order requests, newest first.
func (r *CustomOrdersRepository) List(ctx context.Context, limit int) ([]model.CustomOrderRequest, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var requests []model.CustomOrderRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}
