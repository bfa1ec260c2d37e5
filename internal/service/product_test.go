package service

import (
	"context"
	"testing"

	"github.com/RajaDani/antique-watches-sub001/internal/apperr"
	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductListFilters(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	require.NoError(t, db.Create(&model.Brand{ID: "brand-2", Name: "Omega", Slug: "omega"}).Error)

	createTestProduct(t, db, "p1", "sub-date", 800_000, 1)
	createTestProduct(t, db, "p2", "gmt-master", 1_200_000, 0)
	p3 := &model.Product{
		ID: "p3", BrandID: "brand-2", Name: "Speedmaster", Slug: "speedmaster",
		Condition: "good", PriceCents: 400_000, StockQuantity: 2,
	}
	require.NoError(t, db.Create(p3).Error)

	svc := NewProductService(db)
	ctx := context.Background()

	resp, err := svc.List(ctx, ProductFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalItems)

	resp, err = svc.List(ctx, ProductFilters{BrandSlug: "omega"})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "p3", resp.Products[0].ID)

	resp, err = svc.List(ctx, ProductFilters{MinPriceCents: 500_000, MaxPriceCents: 1_000_000})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "p1", resp.Products[0].ID)

	resp, err = svc.List(ctx, ProductFilters{InStock: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalItems)

	resp, err = svc.List(ctx, ProductFilters{Search: "Speed"})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Speedmaster", resp.Products[0].Name)
}

func TestProductListPagination(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		createTestProduct(t, db, "p-"+id, "watch-"+id, 100_000, 1)
	}

	svc := NewProductService(db)
	resp, err := svc.List(context.Background(), ProductFilters{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.TotalItems)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Len(t, resp.Products, 2)
}

func TestProductGetBySlug(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	createTestProduct(t, db, "p1", "sub-date", 800_000, 1)

	svc := NewProductService(db)
	ctx := context.Background()

	product, err := svc.GetBySlug(ctx, "sub-date")
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)
	require.NotNil(t, product.Brand)
	assert.Equal(t, "rolex", product.Brand.Slug)

	_, err = svc.GetBySlug(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestProductUpdateReplacesImages(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)

	svc := NewProductService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.ProductRequest{
		BrandID: "brand-1", Name: "Submariner", Slug: "submariner",
		Condition: "excellent", PriceCents: 800_000, StockQuantity: 1,
		Images: []model.ProductImageRequest{
			{URL: "https://img.example.com/a.jpg"},
			{URL: "https://img.example.com/b.jpg"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Images, 2)

	updated, err := svc.Update(ctx, created.ID, &model.ProductRequest{
		BrandID: "brand-1", Name: "Submariner Date", Slug: "submariner",
		Condition: "excellent", PriceCents: 850_000, StockQuantity: 1,
		Images: []model.ProductImageRequest{
			{URL: "https://img.example.com/c.jpg"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Submariner Date", updated.Name)
	require.Len(t, updated.Images, 1)
	assert.Equal(t, "https://img.example.com/c.jpg", updated.Images[0].URL)
}

func TestProductDelete(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	createTestProduct(t, db, "p1", "sub-date", 800_000, 1)

	svc := NewProductService(db)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "p1"))

	err := svc.Delete(ctx, "p1")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
