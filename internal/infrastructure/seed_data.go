package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RajaDani/antique-watches-sub001/internal/model"
	"github.com/RajaDani/antique-watches-sub001/internal/service"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedDataManager populates an empty database with development data.
type SeedDataManager struct {
	db *gorm.DB
}

// NewSeedDataManager creates a new seed data manager.
func NewSeedDataManager(db *gorm.DB) *SeedDataManager {
	return &SeedDataManager{db: db}
}

// SeedAll inserts sample admins, catalog data and products. Each step skips
// itself when rows already exist, so restarts are safe.
func (s *SeedDataManager) SeedAll(ctx context.Context) error {
	if err := s.seedAdminUsers(ctx); err != nil {
		return fmt.Errorf("failed to seed admin users: %w", err)
	}
	if err := s.seedCatalog(ctx); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}

func (s *SeedDataManager) seedAdminUsers(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.AdminUser{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		slog.Info("admin users already exist, skipping seed")
		return nil
	}

	admins := []struct {
		email string
		name  string
		role  string
	}{
		{"owner@vintagewatch.example", "Store Owner", model.RoleSuperAdmin},
		{"manager@vintagewatch.example", "Store Manager", model.RoleAdmin},
		{"editor@vintagewatch.example", "Catalog Editor", model.RoleEditor},
		{"viewer@vintagewatch.example", "Analyst", model.RoleViewer},
	}

	for _, a := range admins {
		hashed, err := service.HashPassword("changeme123")
		if err != nil {
			return err
		}
		admin := &model.AdminUser{
			ID:       uuid.NewString(),
			Email:    a.email,
			Password: hashed,
			Name:     a.name,
			Role:     a.role,
			Active:   true,
		}
		if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
			return err
		}
	}

	slog.Info("seeded admin users", "count", len(admins))
	return nil
}

func (s *SeedDataManager) seedCatalog(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Brand{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		slog.Info("catalog already exists, skipping seed")
		return nil
	}

	brands := []model.Brand{
		{ID: uuid.NewString(), Name: "Rolex", Slug: "rolex", FoundedYear: 1905, Country: "Switzerland"},
		{ID: uuid.NewString(), Name: "Omega", Slug: "omega", FoundedYear: 1848, Country: "Switzerland"},
		{ID: uuid.NewString(), Name: "Patek Philippe", Slug: "patek-philippe", FoundedYear: 1839, Country: "Switzerland"},
		{ID: uuid.NewString(), Name: "Seiko", Slug: "seiko", FoundedYear: 1881, Country: "Japan"},
	}
	for i := range brands {
		if err := s.db.WithContext(ctx).Create(&brands[i]).Error; err != nil {
			return err
		}
	}

	categories := []model.Category{
		{ID: uuid.NewString(), Name: "Dress", Slug: "dress"},
		{ID: uuid.NewString(), Name: "Diver", Slug: "diver"},
		{ID: uuid.NewString(), Name: "Chronograph", Slug: "chronograph"},
		{ID: uuid.NewString(), Name: "Field", Slug: "field"},
	}
	for i := range categories {
		if err := s.db.WithContext(ctx).Create(&categories[i]).Error; err != nil {
			return err
		}
	}

	products := []model.Product{
		{
			ID: uuid.NewString(), BrandID: brands[0].ID, CategoryID: categories[1].ID,
			Name: "Rolex Submariner 5513", Slug: "rolex-submariner-5513",
			ReferenceNumber: "5513", Year: 1968, Condition: "excellent",
			PriceCents: 1_850_000, StockQuantity: 1, Featured: true,
			Description: "Matte dial Submariner with faded ghost bezel.",
		},
		{
			ID: uuid.NewString(), BrandID: brands[1].ID, CategoryID: categories[2].ID,
			Name: "Omega Speedmaster 145.022", Slug: "omega-speedmaster-145-022",
			ReferenceNumber: "145.022", Year: 1971, Condition: "good",
			PriceCents: 620_000, StockQuantity: 2,
			Description: "Pre-moon style caseback, cal. 861.",
		},
		{
			ID: uuid.NewString(), BrandID: brands[3].ID, CategoryID: categories[1].ID,
			Name: "Seiko 6105-8110", Slug: "seiko-6105-8110",
			ReferenceNumber: "6105-8110", Year: 1974, Condition: "fair",
			PriceCents: 180_000, StockQuantity: 3,
			Description: "Willard cushion case diver, original dial.",
		},
	}
	for i := range products {
		if err := s.db.WithContext(ctx).Create(&products[i]).Error; err != nil {
			return err
		}
	}

	slog.Info("seeded catalog", "brands", len(brands), "categories", len(categories), "products", len(products))
	return nil
}
