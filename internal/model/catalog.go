package model

import "time"

// Brand is a watch manufacturer (Rolex, Omega, ...).
type Brand struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Slug        string    `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	FoundedYear int       `json:"founded_year"`
	Country     string    `json:"country" gorm:"type:varchar(100)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Category groups products (dress, diver, chronograph, ...).
type Category struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Slug        string    `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product is a vintage watch listing. StockQuantity must never go negative:
// it is decremented inside the checkout transaction (guarded in SQL) and
// restored by the order-cancellation transaction.
type Product struct {
	ID              string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	BrandID         string         `json:"brand_id" gorm:"type:varchar(36);not null;index"`
	CategoryID      string         `json:"category_id" gorm:"type:varchar(36);index"`
	Name            string         `json:"name" gorm:"type:varchar(255);not null"`
	Slug            string         `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	ReferenceNumber string         `json:"reference_number" gorm:"type:varchar(100)"`
	Description     string         `json:"description" gorm:"type:text"`
	Year            int            `json:"year"`
	Condition       string         `json:"condition" gorm:"type:varchar(50)"` // "mint", "excellent", "good", "fair"
	PriceCents      int64          `json:"price_cents" gorm:"not null"`
	StockQuantity   int            `json:"stock_quantity" gorm:"not null;default:0"`
	Featured        bool           `json:"featured" gorm:"default:false"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Brand           *Brand         `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Category        *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images          []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// ProductImage is one photo of a product, ordered by Position.
type ProductImage struct {
	ID        string `json:"id" gorm:"type:varchar(36);primaryKey"`
	ProductID string `json:"product_id" gorm:"type:varchar(36);not null;index"`
	URL       string `json:"url" gorm:"type:varchar(500);not null"`
	Alt       string `json:"alt" gorm:"type:varchar(255)"`
	Position  int    `json:"position" gorm:"default:0"`
}

// BrandRequest creates or updates a brand.
type BrandRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	FoundedYear int    `json:"founded_year"`
	Country     string `json:"country"`
}

// ProductRequest creates or updates a product.
type ProductRequest struct {
	BrandID         string                `json:"brand_id" binding:"required"`
	CategoryID      string                `json:"category_id"`
	Name            string                `json:"name" binding:"required"`
	Slug            string                `json:"slug" binding:"required"`
	ReferenceNumber string                `json:"reference_number"`
	Description     string                `json:"description"`
	Year            int                   `json:"year"`
	Condition       string                `json:"condition"`
	PriceCents      int64                 `json:"price_cents" binding:"required,gt=0"`
	StockQuantity   int                   `json:"stock_quantity" binding:"gte=0"`
	Featured        bool                  `json:"featured"`
	Images          []ProductImageRequest `json:"images"`
}

// ProductImageRequest is one image in a ProductRequest. The full image set is
// replaced on update.
type ProductImageRequest struct {
	URL      string `json:"url" binding:"required"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
}

// ProductListResponse is a paginated product listing.
type ProductListResponse struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
	TotalItems int64     `json:"total_items"`
}
