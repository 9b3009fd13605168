package auth

import (
	"net/http"

	"club-site/internal/domain/admins"

	"github.com/gin-gonic/gin"
)

type SessionResponse struct {
	Success      bool                 `json:"success"`
	Admin        *admins.AllowedAdmin `json:"admin"`
	Capabilities []string             `json:"capabilities"`
}

// POST /auth/logout
func (h *Handler) Logout(c *gin.Context) {
	setSessionCookie(c, "", -1, h.cfg.CookieSecure)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /auth/session (admin)
func (h *Handler) Session(c *gin.Context) {
	admin := CurrentAdmin(c)
	if admin == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, SessionResponse{
		Success:      true,
		Admin:        admin,
		Capabilities: admins.CapabilitiesFor(admin),
	})
}
