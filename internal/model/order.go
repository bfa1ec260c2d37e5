package model

import "time"

// Order statuses. Transitions are one-directional except cancellation, which
// is only legal from pending or processing.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// orderTransitions is the single authority on status-transition legality.
// Both the customer cancel route and the admin status update consult it.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// ValidOrderStatus reports whether s is one of the enumerated statuses.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionOrder reports whether an order may move from one status to
// another.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a placed order. Orders are never physically deleted; cancellation
// sets the status and restores reserved stock.
type Order struct {
	ID            string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	OrderNumber   string     `json:"order_number" gorm:"type:varchar(30);uniqueIndex;not null"`
	UserID        string     `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Status        string     `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	SubtotalCents int64      `json:"subtotal_cents" gorm:"not null"`
	TaxCents      int64      `json:"tax_cents" gorm:"not null"`
	ShippingCents int64      `json:"shipping_cents" gorm:"not null"`
	DiscountCents int64      `json:"discount_cents" gorm:"not null;default:0"`
	TotalCents    int64      `json:"total_cents" gorm:"not null"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ShippedAt     *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	Items         []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Address       *OrderAddress `json:"address,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is one line of an order. Name and unit price are snapshots taken
// at order time, decoupled from the current product row. Rows are immutable
// after creation.
type OrderItem struct {
	ID             string `json:"id" gorm:"type:varchar(36);primaryKey"`
	OrderID        string `json:"order_id" gorm:"type:varchar(36);not null;index"`
	ProductID      string `json:"product_id" gorm:"type:varchar(36);not null;index"`
	ProductName    string `json:"product_name" gorm:"type:varchar(255);not null"`
	Quantity       int    `json:"quantity" gorm:"not null"`
	UnitPriceCents int64  `json:"unit_price_cents" gorm:"not null"`
}

// OrderAddress is the shipping address captured at checkout.
type OrderAddress struct {
	ID         string `json:"id" gorm:"type:varchar(36);primaryKey"`
	OrderID    string `json:"order_id" gorm:"type:varchar(36);uniqueIndex;not null"`
	Recipient  string `json:"recipient" gorm:"type:varchar(200);not null"`
	Line1      string `json:"line1" gorm:"type:varchar(255);not null"`
	Line2      string `json:"line2" gorm:"type:varchar(255)"`
	City       string `json:"city" gorm:"type:varchar(100);not null"`
	State      string `json:"state" gorm:"type:varchar(100)"`
	PostalCode string `json:"postal_code" gorm:"type:varchar(20);not null"`
	Country    string `json:"country" gorm:"type:varchar(100);not null"`
	Phone      string `json:"phone" gorm:"type:varchar(30)"`
}

// CheckoutAddress is the address part of a checkout request.
type CheckoutAddress struct {
	Recipient  string `json:"recipient" binding:"required"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone"`
}

// CheckoutRequest places an order from the caller's cart.
type CheckoutRequest struct {
	Address CheckoutAddress `json:"address" binding:"required"`
}

// CancelOrderResponse is returned by the customer cancel route.
type CancelOrderResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	RestoredItems int    `json:"restoredItems"`
	OrderNumber   string `json:"order_number"`
}

// UpdateOrderStatusRequest is the admin status-update payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
