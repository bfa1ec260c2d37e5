package handler

import (
	"net/http"
	"strconv"

	"github.com/RajaDani/antique-watches-sub001/internal/middleware"
	"github.com/RajaDani/antique-watches-sub001/internal/model"
	"github.com/RajaDani/antique-watches-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminOrderHandler serves the back-office order screens.
type AdminOrderHandler struct {
	orders   service.OrderService
	activity service.ActivityLogger
}

// NewAdminOrderHandler creates a new admin order handler.
func NewAdminOrderHandler(orders service.OrderService, activity service.ActivityLogger) *AdminOrderHandler {
	return &AdminOrderHandler{orders: orders, activity: activity}
}

// List returns a filtered, paginated order listing.
func (h *AdminOrderHandler) List(c *gin.Context) {
	filters := service.OrderFilters{
		Status: c.Query("status"),
		UserID: c.Query("user_id"),
	}
	if page := c.Query("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			filters.Page = p
		}
	}
	if limit := c.Query("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			filters.Limit = l
		}
	}

	orders, total, err := h.orders.AdminList(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "total_items": total})
}

// Get returns one order with items and address.
func (h *AdminOrderHandler) Get(c *gin.Context) {
	order, err := h.orders.AdminGet(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateStatus moves an order along the transition table. Transitioning to
// cancelled restores the order's reserved stock.
func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	var req model.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.AdminUpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	if admin, ok := middleware.AdminFromContext(c); ok {
		h.activity.Log(c.Request.Context(), admin.ID, "update_status", "order", order.ID, order.Status)
	}
	c.JSON(http.StatusOK, order)
}
