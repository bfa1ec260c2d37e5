package handler

import (
	"net/http"

	"github.com/RajaDani/antique-watches-sub001/internal/middleware"
	"github.com/RajaDani/antique-watches-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// WishlistHandler serves the authenticated customer's wishlist.
type WishlistHandler struct {
	wishlist service.WishlistService
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(wishlist service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

// List returns the wishlist with products preloaded.
func (h *WishlistHandler) List(c *gin.Context) {
	claims, exists := middleware.UserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	items, err := h.wishlist.List(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Add puts a product on the wishlist.
func (h *WishlistHandler) Add(c *gin.Context) {
	claims, exists := middleware.UserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	item, err := h.wishlist.Add(c.Request.Context(), claims.UserID, c.Param("productId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Remove drops a product from the wishlist.
func (h *WishlistHandler) Remove(c *gin.Context) {
	claims, exists := middleware.UserFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.wishlist.Remove(c.Request.Context(), claims.UserID, c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "removed from wishlist"})
}
