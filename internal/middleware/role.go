package middleware

import (
	"minicrm/internal/domain"
	"minicrm/internal/pkg/response"
	"minicrm/internal/web"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only for the given role. Anyone else
// is sent to /login.
func RequireRole(requiredRole domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := web.SessionFrom(c)
		if !sess.Valid() || sess.User.Role != requiredRole {
			response.Found(c, "/login")
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
