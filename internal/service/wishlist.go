package service

import (
	"context"
	"errors"

	"github.com/RajaDani/antique-watches-sub001/internal/apperr"
	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WishlistService manages per-customer wishlists.
type WishlistService interface {
	List(ctx context.Context, userID string) ([]model.WishlistItem, error)
	Add(ctx context.Context, userID, productID string) (*model.WishlistItem, error)
	Remove(ctx context.Context, userID, productID string) error
}

type wishlistServiceImpl struct {
	db *gorm.DB
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(db *gorm.DB) WishlistService {
	return &wishlistServiceImpl{db: db}
}

func (s *wishlistServiceImpl) List(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	if err := s.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Brand").
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to list wishlist", err)
	}
	return items, nil
}

// Add puts a product on the wishlist. Adding it twice is a Conflict.
func (s *wishlistServiceImpl) Add(ctx context.Context, userID, productID string) (*model.WishlistItem, error) {
	var product model.Product
	if err := s.db.WithContext(ctx).Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to get product", err)
	}

	item := &model.WishlistItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "product already on wishlist")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to add to wishlist", err)
	}

	item.Product = &product
	return item, nil
}

func (s *wishlistServiceImpl) Remove(ctx context.Context, userID, productID string) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WishlistItem{})
	if result.Error != nil {
		return apperr.Wrap(apperr.OperationFailed, "failed to remove from wishlist", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "product not on wishlist")
	}
	return nil
}
