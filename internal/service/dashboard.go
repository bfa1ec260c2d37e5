package service

import (
	"context"
	"time"

	"github.com/RajaDani/antique-watches-sub001/internal/apperr"
	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"gorm.io/gorm"
)

// Products at or below this stock level show up on the dashboard.
const lowStockThreshold = 2

// DashboardStats aggregates back-office sales statistics.
type DashboardStats struct {
	TotalOrders       int64            `json:"total_orders"`
	TotalRevenueCents int64            `json:"total_revenue_cents"` // non-cancelled orders only
	TotalCustomers    int64            `json:"total_customers"`
	TotalProducts     int64            `json:"total_products"`
	OrdersByStatus    map[string]int64 `json:"orders_by_status"`
	LowStockProducts  []model.Product  `json:"low_stock_products"`
	RecentOrders      []model.Order    `json:"recent_orders"`
	RevenueByDay      []DailyRevenue   `json:"revenue_by_day"`
}

// DailyRevenue is one day of the 30-day revenue series.
type DailyRevenue struct {
	Day          string `json:"day"`
	Orders       int64  `json:"orders"`
	RevenueCents int64  `json:"revenue_cents"`
}

// DashboardService computes the admin dashboard aggregates.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardServiceImpl struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(db *gorm.DB) DashboardService {
	return &dashboardServiceImpl{db: db}
}

func (s *dashboardServiceImpl) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{OrdersByStatus: make(map[string]int64)}
	db := s.db.WithContext(ctx)

	if err := db.Model(&model.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to count orders", err)
	}
	if err := db.Model(&model.User{}).Count(&stats.TotalCustomers).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to count customers", err)
	}
	if err := db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to count products", err)
	}

	// Revenue excludes cancelled orders
	if err := db.Model(&model.Order{}).
		Where("status <> ?", model.OrderStatusCancelled).
		Select("COALESCE(SUM(total_cents), 0)").
		Scan(&stats.TotalRevenueCents).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to sum revenue", err)
	}

	var statusCounts []struct {
		Status string
		Count  int64
	}
	if err := db.Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to count orders by status", err)
	}
	for _, sc := range statusCounts {
		stats.OrdersByStatus[sc.Status] = sc.Count
	}

	if err := db.
		Preload("Brand").
		Where("stock_quantity <= ?", lowStockThreshold).
		Order("stock_quantity ASC").
		Limit(20).
		Find(&stats.LowStockProducts).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to list low-stock products", err)
	}

	if err := db.
		Preload("Items").
		Order("created_at DESC").
		Limit(10).
		Find(&stats.RecentOrders).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to list recent orders", err)
	}

	since := time.Now().AddDate(0, 0, -30)
	if err := db.Model(&model.Order{}).
		Select("DATE(created_at) as day, COUNT(*) as orders, COALESCE(SUM(total_cents), 0) as revenue_cents").
		Where("created_at >= ? AND status <> ?", since, model.OrderStatusCancelled).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&stats.RevenueByDay).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to build revenue series", err)
	}

	return stats, nil
}
