package middleware

import (
	"net/http"
	"strings"

	"github.com/RajaDani/antique-watches-sub001/internal/auth"
	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the customer session cookie name.
const SessionCookie = "session"

const userContextKey = "user"

// UserAuth authenticates storefront requests. The token comes from the
// session cookie, with an Authorization bearer header as fallback for API
// clients.
func UserAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		claims, err := tokens.ParseUserToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(userContextKey, claims)
		c.Next()
	}
}

// UserFromContext returns the authenticated customer's claims.
func UserFromContext(c *gin.Context) (*model.UserClaims, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*model.UserClaims)
	return claims, ok
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
