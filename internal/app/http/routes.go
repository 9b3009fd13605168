package routes

import (
	adminapi "club-site/internal/api/admins"
	authapi "club-site/internal/api/auth"
	eventsapi "club-site/internal/api/events"
	imagesapi "club-site/internal/api/images"
	"club-site/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Deps are the handles the routes are served from.
type Deps struct {
	DB        *gorm.DB
	JWTSecret string
	Auth      *authapi.Handler
	Events    *eventsapi.Service
	Images    *imagesapi.Service
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	events := eventsapi.NewHandler(d.Events)
	images := imagesapi.NewHandler(d.Images)
	admins := adminapi.NewHandler(d.DB)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.GET("/auth/github", d.Auth.GithubStart)
	r.GET("/auth/github/callback", d.Auth.GithubCallback)
	r.POST("/auth/logout", d.Auth.Logout)

	r.GET("/api/events", events.ListEvents)
	r.GET("/api/events/:id", events.GetEvent)

	// Admins
	admin := r.Group("/")
	admin.Use(middleware.RequireAdmin(d.DB, d.JWTSecret), middleware.SanitizeAndCleanInputMiddleware())

	admin.GET("/auth/session", d.Auth.Session)

	admin.POST("/api/events", events.CreateEvent)
	admin.PUT("/api/events/:id", events.UpdateEvent)
	admin.DELETE("/api/events/:id", events.DeleteEvent)

	admin.POST("/api/images/upload", images.Upload)
	admin.GET("/api/images", images.List)
	admin.POST("/api/images/:id/publish", images.Publish)
	admin.DELETE("/api/images/:id", images.Delete)

	admin.GET("/api/admins", admins.ListAdmins)
	admin.GET("/api/admin/stats", admins.GetStats)

	// Super-admins
	super := admin.Group("/")
	super.Use(middleware.RequireSuperAdmin())
	super.POST("/api/admins", admins.AddAdmin)
	super.DELETE("/api/admins", admins.RemoveAdmin)
}
