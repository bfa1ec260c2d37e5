package handler

import (
	"net/http"
	"strconv"

	"github.com/RajaDani/antique-watches-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves the storefront catalog.
type ProductHandler struct {
	products service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(products service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns a filtered, paginated product listing.
func (h *ProductHandler) List(c *gin.Context) {
	filters := service.ProductFilters{
		BrandSlug:    c.Query("brand"),
		CategorySlug: c.Query("category"),
		Condition:    c.Query("condition"),
		Search:       c.Query("q"),
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
	if minPrice := c.Query("min_price_cents"); minPrice != "" {
		if v, err := strconv.ParseInt(minPrice, 10, 64); err == nil {
			filters.MinPriceCents = v
		}
	}
	if maxPrice := c.Query("max_price_cents"); maxPrice != "" {
		if v, err := strconv.ParseInt(maxPrice, 10, 64); err == nil {
			filters.MaxPriceCents = v
		}
	}
	if featured := c.Query("featured"); featured == "true" {
		f := true
		filters.Featured = &f
	}
	if c.Query("in_stock") == "true" {
		filters.InStock = true
	}

	listing, err := h.products.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Get returns one product by slug.
func (h *ProductHandler) Get(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product slug is required"})
		return
	}

	product, err := h.products.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}
