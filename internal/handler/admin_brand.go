package handler

import (
	"net/http"

	"github.com/RajaDani/antique-watches-sub001/internal/middleware"
	"github.com/RajaDani/antique-watches-sub001/internal/model"
	"github.com/RajaDani/antique-watches-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminBrandHandler serves the back-office brand CRUD.
type AdminBrandHandler struct {
	brands   service.BrandService
	activity service.ActivityLogger
}

// NewAdminBrandHandler creates a new admin brand handler.
func NewAdminBrandHandler(brands service.BrandService, activity service.ActivityLogger) *AdminBrandHandler {
	return &AdminBrandHandler{brands: brands, activity: activity}
}

// List returns all brands.
func (h *AdminBrandHandler) List(c *gin.Context) {
	brands, err := h.brands.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// Create adds a brand.
func (h *AdminBrandHandler) Create(c *gin.Context) {
	var req model.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand, err := h.brands.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if admin, ok := middleware.AdminFromContext(c); ok {
		h.activity.Log(c.Request.Context(), admin.ID, "create", "brand", brand.ID, brand.Name)
	}
	c.JSON(http.StatusCreated, brand)
}

// Update rewrites a brand.
func (h *AdminBrandHandler) Update(c *gin.Context) {
	var req model.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand, err := h.brands.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if admin, ok := middleware.AdminFromContext(c); ok {
		h.activity.Log(c.Request.Context(), admin.ID, "update", "brand", brand.ID, brand.Name)
	}
	c.JSON(http.StatusOK, brand)
}

// Delete removes a brand without products.
func (h *AdminBrandHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.brands.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	if admin, ok := middleware.AdminFromContext(c); ok {
		h.activity.Log(c.Request.Context(), admin.ID, "delete", "brand", id, "")
	}
	c.JSON(http.StatusOK, gin.H{"message": "brand deleted"})
}
