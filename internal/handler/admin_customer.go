package handler

import (
	"net/http"
	"strconv"

	"github.com/RajaDani/antique-watches-sub001/internal/middleware"
	"github.com/RajaDani/antique-watches-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminCustomerHandler serves the back-office customer screens.
type AdminCustomerHandler struct {
	users    service.UserService
	activity service.ActivityLogger
}

// NewAdminCustomerHandler creates a new admin customer handler.
func NewAdminCustomerHandler(users service.UserService, activity service.ActivityLogger) *AdminCustomerHandler {
	return &AdminCustomerHandler{users: users, activity: activity}
}

// List returns a searchable, paginated customer listing.
func (h *AdminCustomerHandler) List(c *gin.Context) {
	filters := service.CustomerFilters{Search: c.Query("q")}
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

	customers, total, err := h.users.ListCustomers(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers, "total_items": total})
}

// Get returns a customer and their order history.
func (h *AdminCustomerHandler) Get(c *gin.Context) {
	customer, orders, err := h.users.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer, "orders": orders})
}

// Update edits a customer account.
func (h *AdminCustomerHandler) Update(c *gin.Context) {
	var req service.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.users.UpdateCustomer(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if admin, ok := middleware.AdminFromContext(c); ok {
		h.activity.Log(c.Request.Context(), admin.ID, "update", "customer", customer.ID, customer.Email)
	}
	c.JSON(http.StatusOK, customer)
}
