package handler

import (
	"net/http"
	"strconv"

	"github.com/RajaDani/antique-watches-sub001/internal/middleware"
	"github.com/RajaDani/antique-watches-sub001/internal/model"
	"github.com/RajaDani/antique-watches-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminUserHandler serves back-office account management and the activity
// log. All routes require the manage_admins capability.
type AdminUserHandler struct {
	admins   service.AdminUserService
	activity service.ActivityLogger
}

// NewAdminUserHandler creates a new admin user handler.
func NewAdminUserHandler(admins service.AdminUserService, activity service.ActivityLogger) *AdminUserHandler {
	return &AdminUserHandler{admins: admins, activity: activity}
}

// List returns all back-office accounts.
func (h *AdminUserHandler) List(c *gin.Context) {
	admins, err := h.admins.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admins": admins})
}

// Create adds a back-office account.
func (h *AdminUserHandler) Create(c *gin.Context) {
	var req model.CreateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.admins.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if actor, ok := middleware.AdminFromContext(c); ok {
		h.activity.Log(c.Request.Context(), actor.ID, "create", "admin_user", admin.ID, admin.Email)
	}
	c.JSON(http.StatusCreated, admin)
}

// Update edits a back-office account (role, name, password, active flag).
func (h *AdminUserHandler) Update(c *gin.Context) {
	var req model.UpdateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.admins.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if actor, ok := middleware.AdminFromContext(c); ok {
		h.activity.Log(c.Request.Context(), actor.ID, "update", "admin_user", admin.ID, admin.Email)
	}
	c.JSON(http.StatusOK, admin)
}

// ActivityLog returns the audit trail, optionally filtered by admin.
func (h *AdminUserHandler) ActivityLog(c *gin.Context) {
	page, limit := 0, 0
	if raw := c.Query("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 0 {
			page = p
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 {
			limit = l
		}
	}

	entries, total, err := h.activity.List(c.Request.Context(), c.Query("admin_user_id"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "total_items": total})
}
