package middleware

import (
	"net/http"

	"github.com/RajaDani/antique-watches-sub001/internal/apperr"
	"github.com/RajaDani/antique-watches-sub001/internal/auth"
	"github.com/RajaDani/antique-watches-sub001/internal/model"
	"github.com/RajaDani/antique-watches-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminSessionCookie is the http-only cookie carrying the admin token.
const AdminSessionCookie = "admin_session"

const (
	adminContextKey        = "admin_user"
	adminSessionContextKey = "admin_session_id"
)

// AdminAuth authenticates back-office requests: parse the cookie token, then
// check the session row so a revoked or expired session fails even while the
// JWT itself is still valid.
func AdminAuth(tokens *auth.TokenService, admins service.AdminUserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(AdminSessionCookie)
		if err != nil || cookie == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		claims, err := tokens.ParseAdminToken(cookie)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		admin, err := admins.ValidateSession(c.Request.Context(), claims, cookie)
		if err != nil {
			c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
			c.Abort()
			return
		}

		c.Set(adminContextKey, admin)
		c.Set(adminSessionContextKey, claims.SessionID)
		c.Next()
	}
}

// AdminFromContext returns the authenticated admin.
func AdminFromContext(c *gin.Context) (*model.AdminUser, bool) {
	value, exists := c.Get(adminContextKey)
	if !exists {
		return nil, false
	}
	admin, ok := value.(*model.AdminUser)
	return admin, ok
}

// AdminSessionFromContext returns the authenticated admin's session ID.
func AdminSessionFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(adminSessionContextKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}

// RequireCapability gates a route on the fixed role→capability table.
func RequireCapability(permissions *auth.Permissions, capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, exists := AdminFromContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		if !permissions.RoleHasCapability(admin.Role, capability) {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}
