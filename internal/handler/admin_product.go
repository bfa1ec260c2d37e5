package handler

import (
	"net/http"

	"github.com/RajaDani/antique-watches-sub001/internal/middleware"
	"github.com/RajaDani/antique-watches-sub001/internal/model"
	"github.com/RajaDani/antique-watches-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminProductHandler serves the back-office product CRUD.
type AdminProductHandler struct {
	products service.ProductService
	activity service.ActivityLogger
}

// NewAdminProductHandler creates a new admin product handler.
func NewAdminProductHandler(products service.ProductService, activity service.ActivityLogger) *AdminProductHandler {
	return &AdminProductHandler{products: products, activity: activity}
}

// List returns the full catalog with admin filters.
func (h *AdminProductHandler) List(c *gin.Context) {
	// reuse the storefront listing; admins see the same projection
	storefront := NewProductHandler(h.products)
	storefront.List(c)
}

// Get returns one product by ID.
func (h *AdminProductHandler) Get(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create adds a product.
func (h *AdminProductHandler) Create(c *gin.Context) {
	var req model.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if admin, ok := middleware.AdminFromContext(c); ok {
		h.activity.Log(c.Request.Context(), admin.ID, "create", "product", product.ID, product.Name)
	}
	c.JSON(http.StatusCreated, product)
}

// Update rewrites a product and replaces its images.
func (h *AdminProductHandler) Update(c *gin.Context) {
	var req model.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if admin, ok := middleware.AdminFromContext(c); ok {
		h.activity.Log(c.Request.Context(), admin.ID, "update", "product", product.ID, product.Name)
	}
	c.JSON(http.StatusOK, product)
}

// Delete removes a product.
func (h *AdminProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	if admin, ok := middleware.AdminFromContext(c); ok {
		h.activity.Log(c.Request.Context(), admin.ID, "delete", "product", id, "")
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
