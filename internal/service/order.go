package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/RajaDani/antique-watches-sub001/internal/apperr"
	"github.com/RajaDani/antique-watches-sub001/internal/cache"
	"github.com/RajaDani/antique-watches-sub001/internal/events"
	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order pricing rules.
const (
	taxRatePercent             = 8
	shippingFlatCents          = 5000
	freeShippingThresholdCents = 500_000
)

// OrderService places, lists and transitions orders.
type OrderService interface {
	Checkout(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.Order, error)
	ListForUser(ctx context.Context, userID string) ([]model.Order, error)
	GetForUser(ctx context.Context, orderID, userID string) (*model.Order, error)
	Cancel(ctx context.Context, orderID, userID string) (*model.CancelOrderResponse, error)
	AdminList(ctx context.Context, filters OrderFilters) ([]model.Order, int64, error)
	AdminGet(ctx context.Context, orderID string) (*model.Order, error)
	AdminUpdateStatus(ctx context.Context, orderID, newStatus string) (*model.Order, error)
}

// OrderFilters narrows the admin order listing.
type OrderFilters struct {
	Status string
	UserID string
	Page   int
	Limit  int
}

type orderServiceImpl struct {
	db        *gorm.DB
	carts     cache.CartStore
	publisher events.Publisher
}

// NewOrderService creates a new order service.
func NewOrderService(db *gorm.DB, carts cache.CartStore, publisher events.Publisher) OrderService {
	return &orderServiceImpl{db: db, carts: carts, publisher: publisher}
}

// Checkout drains the caller's cart into a new order. Stock is decremented
// inside the transaction with a non-negative guard in the UPDATE itself;
// insufficient stock for any line aborts the whole order.
func (s *orderServiceImpl) Checkout(ctx context.Context, userID string, req *model.CheckoutRequest) (*model.Order, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to load cart", err)
	}
	if len(cart.Items) == 0 {
		return nil, apperr.New(apperr.InvalidState, "cart is empty")
	}

	order := &model.Order{
		ID:          uuid.NewString(),
		OrderNumber: generateOrderNumber(),
		UserID:      userID,
		Status:      model.OrderStatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subtotal int64
		for _, line := range cart.Items {
			var product model.Product
			if err := tx.Where("id = ?", line.ProductID).First(&product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.Newf(apperr.NotFound, "product %s no longer exists", line.ProductID)
				}
				return err
			}

			// Guarded decrement: the WHERE clause is what keeps stock
			// from ever going negative under concurrent checkouts.
			result := tx.Model(&model.Product{}).
				Where("id = ? AND stock_quantity >= ?", line.ProductID, line.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return apperr.Newf(apperr.Conflict, "insufficient stock for %s", product.Name)
			}

			item := model.OrderItem{
				ID:             uuid.NewString(),
				OrderID:        order.ID,
				ProductID:      product.ID,
				ProductName:    product.Name,
				Quantity:       line.Quantity,
				UnitPriceCents: product.PriceCents,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			subtotal += product.PriceCents * int64(line.Quantity)
		}

		order.SubtotalCents = subtotal
		order.TaxCents = subtotal * taxRatePercent / 100
		if subtotal < freeShippingThresholdCents {
			order.ShippingCents = shippingFlatCents
		}
		order.TotalCents = order.SubtotalCents + order.TaxCents + order.ShippingCents - order.DiscountCents

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		address := &model.OrderAddress{
			ID:         uuid.NewString(),
			OrderID:    order.ID,
			Recipient:  req.Address.Recipient,
			Line1:      req.Address.Line1,
			Line2:      req.Address.Line2,
			City:       req.Address.City,
			State:      req.Address.State,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
			Phone:      req.Address.Phone,
		}
		return tx.Create(address).Error
	})
	if err != nil {
		if kind := apperr.KindOf(err); kind == apperr.NotFound || kind == apperr.Conflict {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to place order", err)
	}

	// Cart clearing is best-effort; the order is already committed and a
	// failure here must not turn a placed order into a client error.
	if err := s.carts.Clear(ctx, userID); err != nil {
		slog.Error("failed to clear cart after checkout",
			"user_id", userID, "order_id", order.ID, "error", err)
	}

	placed, err := s.AdminGet(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	s.publisher.OrderCreated(ctx, placed)
	return placed, nil
}

func (s *orderServiceImpl) ListForUser(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to list orders", err)
	}
	return orders, nil
}

// GetForUser returns an order only if it belongs to the caller.
func (s *orderServiceImpl) GetForUser(ctx context.Context, orderID, userID string) (*model.Order, error) {
	order, err := s.AdminGet(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperr.New(apperr.Forbidden, "order belongs to another customer")
	}
	return order, nil
}

// Cancel transitions the caller's order to cancelled and restores reserved
// stock, atomically. Preconditions are checked in order: existence,
// ownership, then cancellable status. Any failure inside the transaction
// rolls back every stock update and the status change.
func (s *orderServiceImpl) Cancel(ctx context.Context, orderID, userID string) (*model.CancelOrderResponse, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperr.New(apperr.Forbidden, "order belongs to another customer")
	}
	if !model.CanTransitionOrder(order.Status, model.OrderStatusCancelled) {
		return nil, apperr.New(apperr.InvalidState, "only pending or processing orders can be cancelled")
	}

	restored, err := s.cancelTx(ctx, order)
	if err != nil {
		return nil, classifyCancelErr(err)
	}

	return &model.CancelOrderResponse{
		Success:       true,
		Message:       fmt.Sprintf("order %s cancelled", order.OrderNumber),
		RestoredItems: restored,
		OrderNumber:   order.OrderNumber,
	}, nil
}

// cancelTx runs the stock-restoring cancellation transaction. The caller has
// already validated preconditions; the status is re-checked in the UPDATE's
// WHERE clause so a concurrent transition still cannot double-restore.
func (s *orderServiceImpl) cancelTx(ctx context.Context, order *model.Order) (int, error) {
	restored := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []model.OrderItem
		if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			return err
		}

		// Restoration is a pure additive update per product, so ordering
		// across items does not matter.
		for _, item := range items {
			result := tx.Model(&model.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("product %s missing during stock restoration", item.ProductID)
			}
		}

		now := time.Now()
		result := tx.Model(&model.Order{}).
			Where("id = ? AND status IN ?", order.ID,
				[]string{model.OrderStatusPending, model.OrderStatusProcessing}).
			Updates(map[string]interface{}{
				"status":       model.OrderStatusCancelled,
				"cancelled_at": now,
				"updated_at":   now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.New(apperr.InvalidState, "only pending or processing orders can be cancelled")
		}

		restored = len(items)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return restored, nil
}

func (s *orderServiceImpl) AdminList(ctx context.Context, filters OrderFilters) ([]model.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Order{})
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.OperationFailed, "failed to count orders", err)
	}

	page, limit := normalizePage(filters.Page, filters.Limit)
	var orders []model.Order
	if err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, apperr.Wrap(apperr.OperationFailed, "failed to list orders", err)
	}

	return orders, total, nil
}

func (s *orderServiceImpl) AdminGet(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items").Preload("Address").
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to get order", err)
	}
	return &order, nil
}

// AdminUpdateStatus moves an order along the transition table. A transition
// to cancelled runs the same stock-restoring transaction as the customer
// cancel route.
func (s *orderServiceImpl) AdminUpdateStatus(ctx context.Context, orderID, newStatus string) (*model.Order, error) {
	if !model.ValidOrderStatus(newStatus) {
		return nil, apperr.Newf(apperr.Invalid, "unknown order status %q", newStatus)
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !model.CanTransitionOrder(order.Status, newStatus) {
		return nil, apperr.Newf(apperr.InvalidState, "cannot move order from %s to %s", order.Status, newStatus)
	}

	prevStatus := order.Status
	if newStatus == model.OrderStatusCancelled {
		if _, err := s.cancelTx(ctx, order); err != nil {
			return nil, classifyCancelErr(err)
		}
		return s.AdminGet(ctx, orderID)
	}

	now := time.Now()
	updates := map[string]interface{}{"status": newStatus, "updated_at": now}
	switch newStatus {
	case model.OrderStatusShipped:
		updates["shipped_at"] = now
	case model.OrderStatusDelivered:
		updates["delivered_at"] = now
	}

	// The WHERE clause re-checks the loaded status so a concurrent
	// transition (a customer cancellation, another admin) cannot be
	// silently overwritten.
	result := s.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, prevStatus).
		Updates(updates)
	if result.Error != nil {
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.Newf(apperr.Conflict, "order status changed concurrently, no longer %s", prevStatus)
	}

	updated, err := s.AdminGet(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.publisher.OrderStatusChanged(ctx, updated, prevStatus)
	return updated, nil
}

// classifyCancelErr keeps classified failures from cancelTx (a lost status
// race is InvalidState, not an internal error) and wraps the rest.
func classifyCancelErr(err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Wrap(apperr.OperationFailed, "failed to cancel order", err)
}

// loadOrder fetches an order without associations for precondition checks.
func (s *orderServiceImpl) loadOrder(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	if err := s.db.WithContext(ctx).Where("id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, apperr.Wrap(apperr.OperationFailed, "failed to get order", err)
	}
	return &order, nil
}

// generateOrderNumber returns a short human-readable order reference. The
// unique index on order_number guards the unlikely collision.
func generateOrderNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("VW-%s", raw[:10])
}
