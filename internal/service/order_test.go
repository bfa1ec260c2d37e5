package service

import (
	"context"
	"errors"
	"testing"

	"github.com/RajaDani/antique-watches-sub001/internal/apperr"
	"github.com/RajaDani/antique-watches-sub001/internal/cache"
	"github.com/RajaDani/antique-watches-sub001/internal/events"
	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB, carts cache.CartStore) OrderService {
	return NewOrderService(db, carts, events.NewNoopPublisher())
}

func productStock(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var product model.Product
	require.NoError(t, db.Where("id = ?", id).First(&product).Error)
	return product.StockQuantity
}

func orderStatus(t *testing.T, db *gorm.DB, id string) string {
	t.Helper()
	var order model.Order
	require.NoError(t, db.Where("id = ?", id).First(&order).Error)
	return order.Status
}

// The concrete scenario: order #42 in processing with items
// [(product 7, qty 2), (product 9, qty 1)], product 7 stock 3, product 9
// stock 0. After cancellation the order is cancelled, stocks are 5 and 1,
// and the response reports two restored items.
func TestCancelRestoresStock(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	createTestProduct(t, db, "7", "watch-7", 100_000, 3)
	createTestProduct(t, db, "9", "watch-9", 50_000, 0)
	createTestUser(t, db, "u1", "alice@example.com")
	createTestOrder(t, db, "42", "u1", model.OrderStatusProcessing, []model.OrderItem{
		{ID: "i1", ProductID: "7", ProductName: "Watch 7", Quantity: 2, UnitPriceCents: 100_000},
		{ID: "i2", ProductID: "9", ProductName: "Watch 9", Quantity: 1, UnitPriceCents: 50_000},
	})

	svc := newOrderService(db, cache.NewMemoryCartStore())
	resp, err := svc.Cancel(context.Background(), "42", "u1")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.RestoredItems)
	assert.Equal(t, "VW-TEST-42", resp.OrderNumber)

	assert.Equal(t, model.OrderStatusCancelled, orderStatus(t, db, "42"))
	assert.Equal(t, 5, productStock(t, db, "7"))
	assert.Equal(t, 1, productStock(t, db, "9"))

	var cancelled model.Order
	require.NoError(t, db.Where("id = ?", "42").First(&cancelled).Error)
	assert.NotNil(t, cancelled.CancelledAt)
}

func TestCancelFromPending(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	createTestProduct(t, db, "p1", "watch-p1", 100_000, 1)
	createTestUser(t, db, "u1", "alice@example.com")
	createTestOrder(t, db, "o1", "u1", model.OrderStatusPending, []model.OrderItem{
		{ID: "i1", ProductID: "p1", ProductName: "Watch p1", Quantity: 1, UnitPriceCents: 100_000},
	})

	svc := newOrderService(db, cache.NewMemoryCartStore())
	resp, err := svc.Cancel(context.Background(), "o1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.RestoredItems)
	assert.Equal(t, 2, productStock(t, db, "p1"))
}

// Shipped, delivered and already-cancelled orders are not cancellable and
// must be left untouched.
func TestCancelRejectsNonCancellableStatus(t *testing.T) {
	for _, status := range []string{
		model.OrderStatusShipped, model.OrderStatusDelivered, model.OrderStatusCancelled,
	} {
		t.Run(status, func(t *testing.T) {
			db := newTestDB(t)
			createTestBrand(t, db)
			createTestProduct(t, db, "p1", "watch-p1", 100_000, 3)
			createTestUser(t, db, "u1", "alice@example.com")
			createTestOrder(t, db, "o1", "u1", status, []model.OrderItem{
				{ID: "i1", ProductID: "p1", ProductName: "Watch p1", Quantity: 2, UnitPriceCents: 100_000},
			})

			svc := newOrderService(db, cache.NewMemoryCartStore())
			_, err := svc.Cancel(context.Background(), "o1", "u1")
			require.Error(t, err)
			assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))

			// no partial effect
			assert.Equal(t, status, orderStatus(t, db, "o1"))
			assert.Equal(t, 3, productStock(t, db, "p1"))
		})
	}
}

func TestCancelRejectsForeignOrder(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	createTestProduct(t, db, "p1", "watch-p1", 100_000, 3)
	createTestUser(t, db, "u1", "alice@example.com")
	createTestUser(t, db, "u2", "bob@example.com")
	createTestOrder(t, db, "o1", "u1", model.OrderStatusPending, []model.OrderItem{
		{ID: "i1", ProductID: "p1", ProductName: "Watch p1", Quantity: 1, UnitPriceCents: 100_000},
	})

	svc := newOrderService(db, cache.NewMemoryCartStore())
	_, err := svc.Cancel(context.Background(), "o1", "u2")
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	assert.Equal(t, model.OrderStatusPending, orderStatus(t, db, "o1"))
	assert.Equal(t, 3, productStock(t, db, "p1"))
}

func TestCancelUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, cache.NewMemoryCartStore())

	_, err := svc.Cancel(context.Background(), "missing", "u1")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

// Atomicity: an order item referencing a product row that has vanished makes
// the restoration fail mid-transaction. Nothing may stick — not the stock
// update for the first item, not the status change.
func TestCancelRollsBackOnPartialFailure(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	createTestProduct(t, db, "p1", "watch-p1", 100_000, 3)
	createTestUser(t, db, "u1", "alice@example.com")
	createTestOrder(t, db, "o1", "u1", model.OrderStatusProcessing, []model.OrderItem{
		{ID: "i1", ProductID: "p1", ProductName: "Watch p1", Quantity: 2, UnitPriceCents: 100_000},
		{ID: "i2", ProductID: "ghost", ProductName: "Gone", Quantity: 1, UnitPriceCents: 50_000},
	})

	svc := newOrderService(db, cache.NewMemoryCartStore())
	_, err := svc.Cancel(context.Background(), "o1", "u1")
	require.Error(t, err)
	assert.Equal(t, apperr.OperationFailed, apperr.KindOf(err))

	assert.Equal(t, 3, productStock(t, db, "p1"))
	assert.Equal(t, model.OrderStatusProcessing, orderStatus(t, db, "o1"))
}

// Cancelling twice cannot restore stock twice: the second attempt fails the
// status precondition.
func TestCancelTwiceIsSafe(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	createTestProduct(t, db, "p1", "watch-p1", 100_000, 3)
	createTestUser(t, db, "u1", "alice@example.com")
	createTestOrder(t, db, "o1", "u1", model.OrderStatusPending, []model.OrderItem{
		{ID: "i1", ProductID: "p1", ProductName: "Watch p1", Quantity: 2, UnitPriceCents: 100_000},
	})

	svc := newOrderService(db, cache.NewMemoryCartStore())
	_, err := svc.Cancel(context.Background(), "o1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, productStock(t, db, "p1"))

	_, err = svc.Cancel(context.Background(), "o1", "u1")
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
	assert.Equal(t, 5, productStock(t, db, "p1"))
}

func TestCheckoutPlacesOrderAndDecrementsStock(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	createTestProduct(t, db, "p1", "watch-p1", 100_000, 3)
	createTestProduct(t, db, "p2", "watch-p2", 50_000, 1)
	createTestUser(t, db, "u1", "alice@example.com")

	carts := cache.NewMemoryCartStore()
	ctx := context.Background()
	require.NoError(t, carts.Save(ctx, "u1", &model.Cart{Items: []model.CartItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}}))

	svc := newOrderService(db, carts)
	order, err := svc.Checkout(ctx, "u1", &model.CheckoutRequest{Address: model.CheckoutAddress{
		Recipient: "Alice", Line1: "1 Main St", City: "Geneva", PostalCode: "1200", Country: "CH",
	}})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, int64(250_000), order.SubtotalCents)
	assert.Equal(t, int64(250_000*8/100), order.TaxCents)
	assert.Equal(t, int64(5000), order.ShippingCents)
	assert.Equal(t, order.SubtotalCents+order.TaxCents+order.ShippingCents, order.TotalCents)
	require.NotNil(t, order.Address)
	assert.Equal(t, "Alice", order.Address.Recipient)

	assert.Equal(t, 1, productStock(t, db, "p1"))
	assert.Equal(t, 0, productStock(t, db, "p2"))

	// cart is drained
	cart, err := carts.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

// Insufficient stock for any line aborts the whole order, including the
// lines already decremented.
func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	createTestProduct(t, db, "p1", "watch-p1", 100_000, 3)
	createTestProduct(t, db, "p2", "watch-p2", 50_000, 1)
	createTestUser(t, db, "u1", "alice@example.com")

	carts := cache.NewMemoryCartStore()
	ctx := context.Background()
	require.NoError(t, carts.Save(ctx, "u1", &model.Cart{Items: []model.CartItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 2}, // only 1 in stock
	}}))

	svc := newOrderService(db, carts)
	_, err := svc.Checkout(ctx, "u1", &model.CheckoutRequest{Address: model.CheckoutAddress{
		Recipient: "Alice", Line1: "1 Main St", City: "Geneva", PostalCode: "1200", Country: "CH",
	}})
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	assert.Equal(t, 3, productStock(t, db, "p1"))
	assert.Equal(t, 1, productStock(t, db, "p2"))

	var count int64
	require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
	assert.Zero(t, count)

	// cart stays intact for another attempt
	cart, err := carts.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "u1", "alice@example.com")

	svc := newOrderService(db, cache.NewMemoryCartStore())
	_, err := svc.Checkout(context.Background(), "u1", &model.CheckoutRequest{Address: model.CheckoutAddress{
		Recipient: "Alice", Line1: "1 Main St", City: "Geneva", PostalCode: "1200", Country: "CH",
	}})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
}

func TestAdminUpdateStatusFollowsTransitionTable(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	createTestUser(t, db, "u1", "alice@example.com")
	createTestOrder(t, db, "o1", "u1", model.OrderStatusPending, nil)

	svc := newOrderService(db, cache.NewMemoryCartStore())
	ctx := context.Background()

	order, err := svc.AdminUpdateStatus(ctx, "o1", model.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, order.Status)

	order, err = svc.AdminUpdateStatus(ctx, "o1", model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, order.Status)
	assert.NotNil(t, order.ShippedAt)

	// shipped orders cannot be cancelled
	_, err = svc.AdminUpdateStatus(ctx, "o1", model.OrderStatusCancelled)
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))

	order, err = svc.AdminUpdateStatus(ctx, "o1", model.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, order.Status)
	assert.NotNil(t, order.DeliveredAt)
}

// An admin moving an order to cancelled goes through the same
// stock-restoring transaction as the customer route.
func TestAdminCancelRestoresStock(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	createTestProduct(t, db, "p1", "watch-p1", 100_000, 0)
	createTestUser(t, db, "u1", "alice@example.com")
	createTestOrder(t, db, "o1", "u1", model.OrderStatusProcessing, []model.OrderItem{
		{ID: "i1", ProductID: "p1", ProductName: "Watch p1", Quantity: 2, UnitPriceCents: 100_000},
	})

	svc := newOrderService(db, cache.NewMemoryCartStore())
	order, err := svc.AdminUpdateStatus(context.Background(), "o1", model.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, order.Status)
	assert.Equal(t, 2, productStock(t, db, "p1"))
}

func TestAdminUpdateStatusUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "u1", "alice@example.com")
	createTestOrder(t, db, "o1", "u1", model.OrderStatusPending, nil)

	svc := newOrderService(db, cache.NewMemoryCartStore())
	_, err := svc.AdminUpdateStatus(context.Background(), "o1", "paid")
	require.Error(t, err)
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err))
}

// interceptOrderStatusUpdate runs the given statements once, right before
// the next UPDATE on the orders table, simulating a concurrent writer
// sneaking in between the status precondition check and the guarded UPDATE.
func interceptOrderStatusUpdate(t *testing.T, db *gorm.DB, stmts ...string) {
	t.Helper()
	fired := false
	err := db.Callback().Update().Before("gorm:update").Register("test_concurrent_writer", func(tx *gorm.DB) {
		if fired {
			return
		}
		if _, ok := tx.Statement.Model.(*model.Order); !ok {
			return
		}
		fired = true
		for _, stmt := range stmts {
			if _, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context, stmt); err != nil {
				tx.AddError(err)
				return
			}
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Callback().Update().Remove("test_concurrent_writer") })
}

// A customer cancellation committing between the admin's status load and the
// forward UPDATE must not be overwritten: a cancelled order shipping would
// double-count the restored stock.
func TestAdminUpdateStatusLosesRaceToCancellation(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	createTestProduct(t, db, "p1", "watch-p1", 100_000, 0)
	createTestUser(t, db, "u1", "alice@example.com")
	createTestOrder(t, db, "o1", "u1", model.OrderStatusProcessing, []model.OrderItem{
		{ID: "i1", ProductID: "p1", ProductName: "Watch p1", Quantity: 2, UnitPriceCents: 100_000},
	})

	interceptOrderStatusUpdate(t, db,
		"UPDATE orders SET status = 'cancelled' WHERE id = 'o1'",
		"UPDATE products SET stock_quantity = stock_quantity + 2 WHERE id = 'p1'",
	)

	svc := newOrderService(db, cache.NewMemoryCartStore())
	_, err := svc.AdminUpdateStatus(context.Background(), "o1", model.OrderStatusShipped)
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	// the cancellation wins; status and restored stock stay untouched
	assert.Equal(t, model.OrderStatusCancelled, orderStatus(t, db, "o1"))
	assert.Equal(t, 2, productStock(t, db, "p1"))
}

// When a concurrent transition beats the cancellation transaction, the
// in-SQL status re-check fails and surfaces as InvalidState, not as an
// internal error.
func TestCancelLosesRaceToStatusChange(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	createTestProduct(t, db, "p1", "watch-p1", 100_000, 0)
	createTestUser(t, db, "u1", "alice@example.com")
	createTestOrder(t, db, "o1", "u1", model.OrderStatusProcessing, []model.OrderItem{
		{ID: "i1", ProductID: "p1", ProductName: "Watch p1", Quantity: 2, UnitPriceCents: 100_000},
	})

	interceptOrderStatusUpdate(t, db, "UPDATE orders SET status = 'shipped' WHERE id = 'o1'")

	svc := newOrderService(db, cache.NewMemoryCartStore())
	_, err := svc.Cancel(context.Background(), "o1", "u1")
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))

	// the whole transaction rolled back, stock restoration included
	assert.Equal(t, 0, productStock(t, db, "p1"))
}

// brokenClearCartStore fails every Clear, like a Redis outage right after
// the checkout transaction commits.
type brokenClearCartStore struct {
	cache.CartStore
}

func (s brokenClearCartStore) Clear(ctx context.Context, userID string) error {
	return errors.New("connection refused")
}

// A cart-clear failure after the order committed must not surface as an
// error: the client would retry and place the order twice.
func TestCheckoutSucceedsWhenCartClearFails(t *testing.T) {
	db := newTestDB(t)
	createTestBrand(t, db)
	createTestProduct(t, db, "p1", "watch-p1", 100_000, 3)
	createTestUser(t, db, "u1", "alice@example.com")

	carts := brokenClearCartStore{cache.NewMemoryCartStore()}
	ctx := context.Background()
	require.NoError(t, carts.Save(ctx, "u1", &model.Cart{Items: []model.CartItem{
		{ProductID: "p1", Quantity: 1},
	}}))

	svc := newOrderService(db, carts)
	order, err := svc.Checkout(ctx, "u1", &model.CheckoutRequest{Address: model.CheckoutAddress{
		Recipient: "Alice", Line1: "1 Main St", City: "Geneva", PostalCode: "1200", Country: "CH",
	}})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, 2, productStock(t, db, "p1"))

	var count int64
	require.NoError(t, db.Model(&model.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetForUserEnforcesOwnership(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "u1", "alice@example.com")
	createTestUser(t, db, "u2", "bob@example.com")
	createTestOrder(t, db, "o1", "u1", model.OrderStatusPending, nil)

	svc := newOrderService(db, cache.NewMemoryCartStore())
	ctx := context.Background()

	order, err := svc.GetForUser(ctx, "o1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)

	_, err = svc.GetForUser(ctx, "o1", "u2")
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}
