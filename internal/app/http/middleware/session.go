package middleware

import (
	"log"
	"net/http"

	"club-site/internal/api/auth"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequireAdmin resolves the session token to an allowlisted admin. No or an
// invalid token is 401; a valid token for someone no longer on the list is 403.
func RequireAdmin(db *gorm.DB, secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		if len(key) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "JWT secret not configured"})
			return
		}

		tokenString := auth.TokenFromRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		claims, err := auth.ParseSession(key, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		admin, err := auth.FindAdmin(db.WithContext(c.Request.Context()), claims.GithubID)
		if err != nil {
			log.Printf("❌ allowlist lookup %s: %v", claims.GithubID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
			return
		}
		if admin == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Forbidden"})
			return
		}

		auth.SetCurrentAdmin(c, admin)
		c.Next()
	}
}
