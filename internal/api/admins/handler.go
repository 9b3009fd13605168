package adminapi

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"club-site/internal/api/auth"
	"club-site/internal/domain/admins"
	"club-site/internal/domain/events"
	"club-site/internal/domain/media"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler { return &Handler{db: db} }

type AddAdminRequest struct {
	GithubID       string  `json:"githubId"`
	GithubUsername string  `json:"githubUsername"`
	Email          *string `json:"email"`
}

type RemoveAdminRequest struct {
	GithubID string `json:"githubId"`
}

type Stats struct {
	TotalEvents    int64 `json:"totalEvents"`
	UpcomingEvents int64 `json:"upcomingEvents"`
	FeaturedEvents int64 `json:"featuredEvents"`
	TotalImages    int64 `json:"totalImages"`
	DraftImages    int64 `json:"draftImages"`
	Admins         int64 `json:"admins"`
}

// GET /api/admins (admin)
func (h *Handler) ListAdmins(c *gin.Context) {
	list := []admins.AllowedAdmin{}
	if err := h.db.WithContext(c.Request.Context()).Order("added_at ASC, id ASC").Find(&list).Error; err != nil {
		log.Printf("❌ list admins: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load admins"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/admins (super-admin)
func (h *Handler) AddAdmin(c *gin.Context) {
	me := auth.CurrentAdmin(c)

	var req AddAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}
	req.GithubID = strings.TrimSpace(req.GithubID)
	req.GithubUsername = strings.TrimSpace(req.GithubUsername)
	if req.GithubID == "" || req.GithubUsername == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "githubId and githubUsername are required"})
		return
	}
	if req.Email != nil {
		if e := strings.TrimSpace(*req.Email); e == "" {
			req.Email = nil
		} else {
			req.Email = &e
		}
	}

	a := admins.AllowedAdmin{
		GithubID:       req.GithubID,
		GithubUsername: req.GithubUsername,
		Email:          req.Email,
	}
	if me != nil {
		a.AddedBy = &me.GithubUsername
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&a).Error; err != nil {
		log.Printf("⚠️ add admin %s: %v", req.GithubUsername, err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to add admin. They may already exist."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "admin": a})
}

// DELETE /api/admins (super-admin)
func (h *Handler) RemoveAdmin(c *gin.Context) {
	me := auth.CurrentAdmin(c)

	var req RemoveAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input"})
		return
	}
	req.GithubID = strings.TrimSpace(req.GithubID)
	if req.GithubID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "githubId is required"})
		return
	}
	if me != nil && me.GithubID == req.GithubID {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cannot remove yourself"})
		return
	}

	res := h.db.WithContext(c.Request.Context()).Where("github_id = ?", req.GithubID).Delete(&admins.AllowedAdmin{})
	if res.Error != nil {
		log.Printf("❌ remove admin %s: %v", req.GithubID, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to remove admin"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Admin not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/admin/stats (admin)
func (h *Handler) GetStats(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())
	var s Stats

	err := errors.Join(
		db.Model(&events.Event{}).Count(&s.TotalEvents).Error,
		db.Model(&events.Event{}).
			Where("COALESCE(date_end, date_start) >= ?", time.Now()).
			Count(&s.UpcomingEvents).Error,
		db.Model(&events.Event{}).Where("is_featured = ?", true).Count(&s.FeaturedEvents).Error,
		db.Model(&media.Image{}).Count(&s.TotalImages).Error,
		db.Model(&media.Image{}).Where("is_draft = ?", true).Count(&s.DraftImages).Error,
		db.Model(&admins.AllowedAdmin{}).Count(&s.Admins).Error,
	)
	if err != nil {
		log.Printf("❌ admin stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, s)
}
