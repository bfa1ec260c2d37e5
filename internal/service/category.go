package service

import (
	"context"

	"github.com/RajaDani/antique-watches-sub001/internal/apperr"
	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"gorm.io/gorm"
)

// CategoryService lists product categories. Categories are seeded and rarely
// change, so there is no CRUD surface beyond the listing.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
}

type categoryServiceImpl struct {
	db *gorm.DB
}

// NewCategoryService creates a new category service.
func NewCategoryService(db *gorm.DB) CategoryService {
	return &categoryServiceImpl{db: db}
}

func (s *categoryServiceImpl) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to list categories", err)
	}
	return categories, nil
}
