package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RajaDani/antique-watches-sub001/internal/auth"
	"github.com/RajaDani/antique-watches-sub001/internal/cache"
	"github.com/RajaDani/antique-watches-sub001/internal/events"
	"github.com/RajaDani/antique-watches-sub001/internal/middleware"
	"github.com/RajaDani/antique-watches-sub001/internal/model"
	"github.com/RajaDani/antique-watches-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type cancelRouteFixture struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *auth.TokenService
}

// newCancelRouteFixture wires the real middleware, handler and service over
// an in-memory database, the way main.go does.
func newCancelRouteFixture(t *testing.T) *cancelRouteFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Brand{}, &model.Product{},
		&model.Order{}, &model.OrderItem{}, &model.OrderAddress{},
	))

	tokens := auth.NewTokenService([]byte("test-secret"))
	orders := service.NewOrderService(db, cache.NewMemoryCartStore(), events.NewNoopPublisher())
	h := NewOrderHandler(orders)

	router := gin.New()
	account := router.Group("/api", middleware.UserAuth(tokens))
	account.PATCH("/orders/:id/cancel", h.Cancel)

	return &cancelRouteFixture{router: router, db: db, tokens: tokens}
}

func (f *cancelRouteFixture) seedOrder(t *testing.T, status string) {
	t.Helper()
	require.NoError(t, f.db.Create(&model.Brand{ID: "b1", Name: "Omega", Slug: "omega"}).Error)
	require.NoError(t, f.db.Create(&model.Product{
		ID: "p1", BrandID: "b1", Name: "Speedmaster", Slug: "speedmaster",
		Condition: "excellent", PriceCents: 100_000, StockQuantity: 3,
	}).Error)
	require.NoError(t, f.db.Create(&model.User{ID: "u1", Email: "alice@example.com", Password: "x"}).Error)
	require.NoError(t, f.db.Create(&model.User{ID: "u2", Email: "bob@example.com", Password: "x"}).Error)
	require.NoError(t, f.db.Create(&model.Order{
		ID: "o1", OrderNumber: "VW-TEST-o1", UserID: "u1", Status: status,
	}).Error)
	require.NoError(t, f.db.Create(&model.OrderItem{
		ID: "i1", OrderID: "o1", ProductID: "p1", ProductName: "Speedmaster",
		Quantity: 2, UnitPriceCents: 100_000,
	}).Error)
}

func (f *cancelRouteFixture) cancel(t *testing.T, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/o1/cancel", nil)
	if userID != "" {
		token, err := f.tokens.IssueUserToken(&model.User{ID: userID, Email: userID + "@example.com"})
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestCancelRouteRequiresAuth(t *testing.T) {
	f := newCancelRouteFixture(t)
	f.seedOrder(t, model.OrderStatusPending)

	rec := f.cancel(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCancelRouteRejectsGarbageToken(t *testing.T) {
	f := newCancelRouteFixture(t)
	f.seedOrder(t, model.OrderStatusPending)

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/o1/cancel", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "not-a-token"})
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCancelRouteForeignOrder(t *testing.T) {
	f := newCancelRouteFixture(t)
	f.seedOrder(t, model.OrderStatusPending)

	rec := f.cancel(t, "u2")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCancelRouteShippedOrder(t *testing.T) {
	f := newCancelRouteFixture(t)
	f.seedOrder(t, model.OrderStatusShipped)

	rec := f.cancel(t, "u1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "cancelled")
}

func TestCancelRouteUnknownOrder(t *testing.T) {
	f := newCancelRouteFixture(t)
	f.seedOrder(t, model.OrderStatusPending)

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/missing/cancel", nil)
	token, err := f.tokens.IssueUserToken(&model.User{ID: "u1", Email: "alice@example.com"})
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelRouteSuccess(t *testing.T) {
	f := newCancelRouteFixture(t)
	f.seedOrder(t, model.OrderStatusProcessing)

	rec := f.cancel(t, "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.CancelOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.RestoredItems)
	assert.Equal(t, "VW-TEST-o1", resp.OrderNumber)

	var product model.Product
	require.NoError(t, f.db.Where("id = ?", "p1").First(&product).Error)
	assert.Equal(t, 5, product.StockQuantity)

	var order model.Order
	require.NoError(t, f.db.Where("id = ?", "o1").First(&order).Error)
	assert.Equal(t, model.OrderStatusCancelled, order.Status)
}
