package service

import (
	"context"
	"errors"

	"github.com/RajaDani/antique-watches-sub001/internal/apperr"
	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BrandService manages watch brands.
type BrandService interface {
	List(ctx context.Context) ([]model.Brand, error)
	GetBySlug(ctx context.Context, slug string) (*model.Brand, []model.Product, error)
	Create(ctx context.Context, req *model.BrandRequest) (*model.Brand, error)
	Update(ctx context.Context, id string, req *model.BrandRequest) (*model.Brand, error)
	Delete(ctx context.Context, id string) error
}

type brandServiceImpl struct {
	db *gorm.DB
}

// NewBrandService creates a new brand service.
func NewBrandService(db *gorm.DB) BrandService {
	return &brandServiceImpl{db: db}
}

func (s *brandServiceImpl) List(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to list brands", err)
	}
	return brands, nil
}

// GetBySlug returns a brand and its products.
func (s *brandServiceImpl) GetBySlug(ctx context.Context, slug string) (*model.Brand, []model.Product, error) {
	var brand model.Brand
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.New(apperr.NotFound, "brand not found")
		}
		return nil, nil, apperr.Wrap(apperr.OperationFailed, "failed to get brand", err)
	}

	var products []model.Product
	if err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("brand_id = ?", brand.ID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, nil, apperr.Wrap(apperr.OperationFailed, "failed to list brand products", err)
	}

	return &brand, products, nil
}

func (s *brandServiceImpl) Create(ctx context.Context, req *model.BrandRequest) (*model.Brand, error) {
	brand := &model.Brand{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		FoundedYear: req.FoundedYear,
		Country:     req.Country,
	}

	if err := s.db.WithContext(ctx).Create(brand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "brand name or slug already in use")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to create brand", err)
	}

	return brand, nil
}

func (s *brandServiceImpl) Update(ctx context.Context, id string, req *model.BrandRequest) (*model.Brand, error) {
	var brand model.Brand
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "brand not found")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to get brand", err)
	}

	brand.Name = req.Name
	brand.Slug = req.Slug
	brand.Description = req.Description
	brand.FoundedYear = req.FoundedYear
	brand.Country = req.Country

	if err := s.db.WithContext(ctx).Save(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "brand name or slug already in use")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to update brand", err)
	}

	return &brand, nil
}

// Delete removes a brand. Brands with products cannot be deleted.
func (s *brandServiceImpl) Delete(ctx context.Context, id string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Product{}).Where("brand_id = ?", id).Count(&count).Error; err != nil {
		return apperr.Wrap(apperr.OperationFailed, "failed to check brand products", err)
	}
	if count > 0 {
		return apperr.New(apperr.InvalidState, "brand still has products")
	}

	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Brand{})
	if result.Error != nil {
		return apperr.Wrap(apperr.OperationFailed, "failed to delete brand", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "brand not found")
	}
	return nil
}
