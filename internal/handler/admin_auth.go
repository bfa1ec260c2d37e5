package handler

import (
	"net/http"

	"github.com/RajaDani/antique-watches-sub001/internal/auth"
	"github.com/RajaDani/antique-watches-sub001/internal/middleware"
	"github.com/RajaDani/antique-watches-sub001/internal/model"
	"github.com/RajaDani/antique-watches-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminAuthHandler serves back-office sign-in and sign-out.
type AdminAuthHandler struct {
	admins service.AdminUserService
}

// NewAdminAuthHandler creates a new admin auth handler.
func NewAdminAuthHandler(admins service.AdminUserService) *AdminAuthHandler {
	return &AdminAuthHandler{admins: admins}
}

// Signin validates credentials and delivers the session token as an
// http-only cookie with an 8-hour expiry.
func (h *AdminAuthHandler) Signin(c *gin.Context) {
	var req model.AdminSigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, admin, err := h.admins.Signin(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(middleware.AdminSessionCookie, token, int(auth.AdminTokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

// Signout revokes the session and clears the cookie.
func (h *AdminAuthHandler) Signout(c *gin.Context) {
	sessionID, exists := middleware.AdminSessionFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.admins.Signout(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(middleware.AdminSessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// Me returns the acting admin.
func (h *AdminAuthHandler) Me(c *gin.Context) {
	admin, exists := middleware.AdminFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, admin)
}
