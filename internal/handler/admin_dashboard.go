package handler

import (
	"net/http"

	"github.com/RajaDani/antique-watches-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminDashboardHandler serves the back-office dashboard.
type AdminDashboardHandler struct {
	dashboard service.DashboardService
}

// NewAdminDashboardHandler creates a new dashboard handler.
func NewAdminDashboardHandler(dashboard service.DashboardService) *AdminDashboardHandler {
	return &AdminDashboardHandler{dashboard: dashboard}
}

// Stats returns the aggregate sales statistics.
func (h *AdminDashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
