package service

import (
	"testing"

	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database with the full
// schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps the pool from opening a second, empty
	// in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.AdminUser{},
		&model.AdminSession{},
		&model.AdminActivityLog{},
		&model.Brand{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderAddress{},
		&model.WishlistItem{},
	))

	return db
}

func createTestBrand(t *testing.T, db *gorm.DB) *model.Brand {
	t.Helper()
	brand := &model.Brand{ID: "brand-1", Name: "Rolex", Slug: "rolex"}
	require.NoError(t, db.Create(brand).Error)
	return brand
}

func createTestProduct(t *testing.T, db *gorm.DB, id, slug string, priceCents int64, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		ID:            id,
		BrandID:       "brand-1",
		Name:          "Watch " + id,
		Slug:          slug,
		Condition:     "excellent",
		PriceCents:    priceCents,
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createTestUser(t *testing.T, db *gorm.DB, id, email string) *model.User {
	t.Helper()
	user := &model.User{ID: id, Email: email, Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestOrder(t *testing.T, db *gorm.DB, id, userID, status string, items []model.OrderItem) *model.Order {
	t.Helper()
	order := &model.Order{
		ID:          id,
		OrderNumber: "VW-TEST-" + id,
		UserID:      userID,
		Status:      status,
	}
	require.NoError(t, db.Create(order).Error)
	for i := range items {
		items[i].OrderID = id
		require.NoError(t, db.Create(&items[i]).Error)
	}
	return order
}
