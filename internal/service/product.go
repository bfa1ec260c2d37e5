package service

import (
	"context"
	"errors"

	"github.com/RajaDani/antique-watches-sub001/internal/apperr"
	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService manages the watch catalog.
type ProductService interface {
	List(ctx context.Context, filters ProductFilters) (*model.ProductListResponse, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)
	Update(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductFilters narrows product listings.
type ProductFilters struct {
	BrandSlug     string
	CategorySlug  string
	Condition     string
	MinPriceCents int64
	MaxPriceCents int64
	Featured      *bool
	InStock       bool
	Search        string
	Page          int
	Limit         int
}

type productServiceImpl struct {
	db *gorm.DB
}

// NewProductService creates a new product service.
func NewProductService(db *gorm.DB) ProductService {
	return &productServiceImpl{db: db}
}

// List returns a paginated, filtered product listing with brand, category
// and images preloaded.
func (s *productServiceImpl) List(ctx context.Context, filters ProductFilters) (*model.ProductListResponse, error) {
	query := s.db.WithContext(ctx).Model(&model.Product{})

	if filters.BrandSlug != "" {
		query = query.Where("brand_id IN (?)",
			s.db.Model(&model.Brand{}).Select("id").Where("slug = ?", filters.BrandSlug))
	}
	if filters.CategorySlug != "" {
		query = query.Where("category_id IN (?)",
			s.db.Model(&model.Category{}).Select("id").Where("slug = ?", filters.CategorySlug))
	}
	if filters.Condition != "" {
		query = query.Where("condition = ?", filters.Condition)
	}
	if filters.MinPriceCents > 0 {
		query = query.Where("price_cents >= ?", filters.MinPriceCents)
	}
	if filters.MaxPriceCents > 0 {
		query = query.Where("price_cents <= ?", filters.MaxPriceCents)
	}
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}
	if filters.InStock {
		query = query.Where("stock_quantity > 0")
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("name LIKE ? OR reference_number LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to count products", err)
	}

	page, limit := normalizePage(filters.Page, filters.Limit)
	var products []model.Product
	if err := query.
		Preload("Brand").Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to list products", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &model.ProductListResponse{
		Products:   products,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		TotalItems: total,
	}, nil
}

func (s *productServiceImpl) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return s.getOne(ctx, "slug = ?", slug)
}

func (s *productServiceImpl) GetByID(ctx context.Context, id string) (*model.Product, error) {
	return s.getOne(ctx, "id = ?", id)
}

func (s *productServiceImpl) getOne(ctx context.Context, cond string, arg string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).
		Preload("Brand").Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where(cond, arg).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to get product", err)
	}
	return &product, nil
}

func (s *productServiceImpl) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	product := &model.Product{
		ID:              uuid.NewString(),
		BrandID:         req.BrandID,
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Slug:            req.Slug,
		ReferenceNumber: req.ReferenceNumber,
		Description:     req.Description,
		Year:            req.Year,
		Condition:       req.Condition,
		PriceCents:      req.PriceCents,
		StockQuantity:   req.StockQuantity,
		Featured:        req.Featured,
	}
	for i, img := range req.Images {
		product.Images = append(product.Images, model.ProductImage{
			ID:        uuid.NewString(),
			ProductID: product.ID,
			URL:       img.URL,
			Alt:       img.Alt,
			Position:  positionOrIndex(img.Position, i),
		})
	}

	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "product slug already in use")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to create product", err)
	}

	return s.GetByID(ctx, product.ID)
}

// Update rewrites the product row and replaces its image set.
func (s *productServiceImpl) Update(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.BrandID = req.BrandID
	product.CategoryID = req.CategoryID
	product.Name = req.Name
	product.Slug = req.Slug
	product.ReferenceNumber = req.ReferenceNumber
	product.Description = req.Description
	product.Year = req.Year
	product.Condition = req.Condition
	product.PriceCents = req.PriceCents
	product.StockQuantity = req.StockQuantity
	product.Featured = req.Featured

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images").Save(product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.New(apperr.Conflict, "product slug already in use")
			}
			return err
		}

		if err := tx.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		for i, img := range req.Images {
			image := model.ProductImage{
				ID:        uuid.NewString(),
				ProductID: id,
				URL:       img.URL,
				Alt:       img.Alt,
				Position:  positionOrIndex(img.Position, i),
			}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.Conflict {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to update product", err)
	}

	return s.GetByID(ctx, id)
}

func (s *productServiceImpl) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if result.Error != nil {
		return apperr.Wrap(apperr.OperationFailed, "failed to delete product", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "product not found")
	}
	return nil
}

func positionOrIndex(position, index int) int {
	if position > 0 {
		return position
	}
	return index
}
