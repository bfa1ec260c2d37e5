package handler

import (
	"net/http"

	"github.com/RajaDani/antique-watches-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves brands and categories for the storefront.
type CatalogHandler struct {
	brands     service.BrandService
	categories service.CategoryService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(brands service.BrandService, categories service.CategoryService) *CatalogHandler {
	return &CatalogHandler{brands: brands, categories: categories}
}

// ListBrands returns all brands.
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.brands.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// GetBrand returns a brand and its products.
func (h *CatalogHandler) GetBrand(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "brand slug is required"})
		return
	}

	brand, products, err := h.brands.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"brand": brand, "products": products})
}

// ListCategories returns all categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
