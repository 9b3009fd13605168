package middleware

import (
	"net/http"

	"club-site/internal/api/auth"

	"github.com/gin-gonic/gin"
)

// RequireSuperAdmin must run after RequireAdmin.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := auth.CurrentAdmin(c)
		if admin == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}
		if !admin.IsSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Forbidden"})
			return
		}
		c.Next()
	}
}
