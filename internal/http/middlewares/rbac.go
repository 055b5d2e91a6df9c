package middlewares

import (
	"net/http"

	"github.com/geocoder89/hallulies/internal/auth"
	"github.com/gin-gonic/gin"
)

// RequireRole must run after RequireAuth. admin passes every role check.
func (m *AuthMiddleware) RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok {
			abortJSON(c, http.StatusUnauthorized, "missing_auth", "Authorization header required")
			return
		}
		if !auth.Allows(role, required) {
			abortJSON(c, http.StatusForbidden, "forbidden", "Insufficient permissions")
			return
		}
		c.Next()
	}
}
