//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalakaari/storefront-service/internal/domain/model"
)

func TestProductsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewProductsRepository(db)

	t.Run("list when empty", func(t *testing.T) {
		products, err := repo.List(ctx)
		assert.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("upsert and get", func(t *testing.T) {
		product := &model.Product{
			ID:                5,
			Name:              "Terracotta Planter",
			UnitPrice:         200,
			AvailableQuantity: 12,
			LengthCm:          20,
			WidthCm:           15,
			HeightCm:          10,
			WeightGrams:       850,
		}
		require.NoError(t, repo.Upsert(ctx, product))

		got, err := repo.Get(ctx, 5)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Terracotta Planter", got.Name)
		assert.Equal(t, 200.0, got.UnitPrice)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("get missing returns nil", func(t *testing.T) {
		got, err := repo.Get(ctx, 404)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("upsert replaces existing", func(t *testing.T) {
		product := &model.Product{ID: 5, Name: "Terracotta Planter", UnitPrice: 220, AvailableQuantity: 10}
		require.NoError(t, repo.Upsert(ctx, product))

		got, err := repo.Get(ctx, 5)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 220.0, got.UnitPrice)

		products, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("adjust stock floors at zero", func(t *testing.T) {
		require.NoError(t, repo.AdjustStock(ctx, 5, -3))
		got, err := repo.Get(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, 7, got.AvailableQuantity)

		require.NoError(t, repo.AdjustStock(ctx, 5, -100))
		got, err = repo.Get(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, 0, got.AvailableQuantity)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, 5))
		got, err := repo.Get(ctx, 5)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
