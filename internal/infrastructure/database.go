package infrastructure

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

// DefaultDatabaseConfig returns default database configuration for development
func DefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		Database: getEnv("DB_NAME", "watchstore"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

// ConnectDatabase establishes a connection to PostgreSQL database using GORM
func ConnectDatabase(config *DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host,
		config.Port,
		config.User,
		config.Password,
		config.Database,
		config.SSLMode,
	)

	gormConfig := &gorm.Config{
		// Surface unique violations as gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Silent, // Set to logger.Info for more verbose logging
				IgnoreRecordNotFoundError: true,
				Colorful:                  true,
			},
		),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// MigrateAllSchemas performs all database migrations in the correct order
func MigrateAllSchemas(db *gorm.DB) error {
	// 1. Accounts first, everything else references them
	if err := db.AutoMigrate(
		&model.User{},
		&model.AdminUser{},
		&model.AdminSession{},
		&model.AdminActivityLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate account tables: %w", err)
	}

	// 2. Catalog
	if err := db.AutoMigrate(
		&model.Brand{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
	); err != nil {
		return fmt.Errorf("failed to migrate catalog tables: %w", err)
	}

	// 3. Orders and wishlist
	if err := db.AutoMigrate(
		&model.Order{},
		&model.OrderItem{},
		&model.OrderAddress{},
		&model.WishlistItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate order tables: %w", err)
	}

	// 4. Additional indexes beyond what the model tags declare
	if err := createAdditionalIndexes(db); err != nil {
		return fmt.Errorf("failed to create additional indexes: %w", err)
	}

	return nil
}

// createAdditionalIndexes creates additional indexes for performance
func createAdditionalIndexes(db *gorm.DB) error {
	// Orders are listed by customer and by status, newest first
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_orders_user_created
		ON orders(user_id, created_at DESC)
	`).Error; err != nil {
		return err
	}

	// Storefront filters on brand/category plus price range
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_products_brand_price
		ON products(brand_id, price_cents)
	`).Error; err != nil {
		return err
	}

	// Activity log is queried per admin, newest first
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_admin_activity_logs_created
		ON admin_activity_logs(admin_user_id, created_at DESC)
	`).Error; err != nil {
		return err
	}

	return nil
}
