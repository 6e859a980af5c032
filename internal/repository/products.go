package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kalakaari/storefront-service/internal/domain/model"
)

// ProductsRepository provides catalog product persistence.
type ProductsRepository struct {
	collection *mongo.Collection
}

// NewProductsRepository creates a new products repository.
func NewProductsRepository(db *MongoDB) *ProductsRepository {
	return &ProductsRepository{
		collection: db.Products,
	}
}

// List returns all catalog products sorted by ID.
func (r *ProductsRepository) List(ctx context.Context) ([]model.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var products []model.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get returns a product by ID, or nil when absent.
func (r *ProductsRepository) Get(ctx context.Context, productID int) (*model.Product, error) {
	var product model.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Upsert creates or replaces a product.
func (r *ProductsRepository) Upsert(ctx context.Context, product *model.Product) error {
	now := time.Now()
	product.UpdatedAt = now
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": product.ID},
		product,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Delete removes a product from the catalog.
func (r *ProductsRepository) Delete(ctx context.Context, productID int) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": productID})
	return err
}

// AdjustStock changes the available quantity by delta, flooring at zero.
func (r *ProductsRepository) AdjustStock(ctx context.Context, productID, delta int) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": productID},
		bson.A{
			bson.M{"$set": bson.M{
				"available_quantity": bson.M{"$max": bson.A{0, bson.M{"$add": bson.A{"$available_quantity", delta}}}},
				"updated_at":         time.Now(),
			}},
		},
	)
	return err
}
