package imagesapi

import (
	"io"
	"net/http"
	"strings"

	"club-site/internal/api/auth"
	"club-site/internal/errmodel"

	"github.com/gin-gonic/gin"
)

// MaxUploadBytes caps the multipart file read.
const MaxUploadBytes = 20 << 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// POST /api/images/upload (admin)
func (h *Handler) Upload(c *gin.Context) {
	admin := auth.CurrentAdmin(c)
	if admin == nil {
		fail(c, errmodel.Unauthorized())
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No file provided"})
		return
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "File must be an image"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No file provided"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		fail(c, errmodel.Unexpected("Internal server error", err))
		return
	}
	if len(data) > MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "error": "File too large"})
		return
	}

	img, dup, err := h.svc.Upload(c.Request.Context(), admin, data)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "image": img, "isDuplicate": dup})
}

// GET /api/images?drafts=true (admin)
func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), auth.CurrentAdmin(c), c.Query("drafts") == "true")
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/images/:id/publish (admin)
func (h *Handler) Publish(c *gin.Context) {
	if err := h.svc.Publish(c.Request.Context(), auth.CurrentAdmin(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/images/:id (admin)
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.CurrentAdmin(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func fail(c *gin.Context, err error) {
	c.JSON(errmodel.HTTPStatus(err), gin.H{"success": false, "error": errmodel.From(err).Message})
}
