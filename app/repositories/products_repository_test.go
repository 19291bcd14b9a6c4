package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/testutil"
)

func TestProductRepositoryCRUD(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := &models.Product{
		Name:          "Shirt",
		Price:         decimal.NewFromInt(100),
		DiscountPrice: decimal.NewNullDecimal(decimal.NewFromInt(80)),
	}
	require.NoError(t, repo.Create(ctx, product))
	assert.Equal(t, uint(1), product.ID)

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Price))
	assert.True(t, got.DiscountPrice.Valid)
	assert.False(t, got.DiscountPercentage.Valid)

	got.DiscountPrice = decimal.NullDecimal{}
	got.Description = ""
	require.NoError(t, repo.Update(ctx, got))

	reloaded, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.DiscountPrice.Valid)

	deleted, err := repo.Delete(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	missing, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepositoryNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "new", "newest"} {
		require.NoError(t, repo.Create(ctx, &models.Product{
			Name:      name,
			Price:     decimal.NewFromInt(10),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	products, err := repo.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "newest", products[0].Name)
	assert.Equal(t, "old", products[2].Name)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestDeletingProductCascadesToImages(t *testing.T) {
	db := testutil.NewDB(t)
	products := NewProductRepository(db)
	images := NewProductImageRepository(db)
	ctx := context.Background()

	product := &models.Product{Name: "Mug", Price: decimal.NewFromInt(5)}
	require.NoError(t, products.Create(ctx, product))
	for i := 0; i < 2; i++ {
		require.NoError(t, images.Create(ctx, &models.ProductImage{ProductID: product.ID, ImagePath: "/uploads/x.jpg", DisplayOrder: i}))
	}

	_, err := products.Delete(ctx, product.ID)
	require.NoError(t, err)

	count, err := images.CountByProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProductRepositoryStorageFailure(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `products`").WillReturnError(assert.AnError)

	_, err := repo.GetProducts(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
