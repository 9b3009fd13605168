package eventsapi

import (
	"errors"
	"net/http"
	"strconv"

	"club-site/internal/api/auth"
	"club-site/internal/errmodel"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// GET /api/events?limit=&featured=&upcoming=
func (h *Handler) ListEvents(c *gin.Context) {
	opts := ListOptions{
		FeaturedOnly: c.Query("featured") == "true",
		Upcoming:     c.Query("upcoming") == "true",
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, Result{Error: "Invalid limit"})
			return
		}
		opts.Limit = n
	}

	list, err := h.svc.GetEvents(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Result{Error: "Failed to load events"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/events/:id
func (h *Handler) GetEvent(c *gin.Context) {
	ev, err := h.svc.GetEventByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, Result{Error: "Failed to load event"})
		return
	}
	if ev == nil {
		c.JSON(http.StatusNotFound, Result{Error: "Event not found"})
		return
	}
	c.JSON(http.StatusOK, ev)
}

// POST /api/events (admin)
func (h *Handler) CreateEvent(c *gin.Context) {
	var in EventFormData
	if !bindForm(c, &in) {
		return
	}

	id, err := h.svc.CreateEvent(c.Request.Context(), auth.CurrentAdmin(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, Result{Success: true, ID: id})
}

// PUT /api/events/:id (admin)
func (h *Handler) UpdateEvent(c *gin.Context) {
	var in EventFormData
	if !bindForm(c, &in) {
		return
	}

	if err := h.svc.UpdateEvent(c.Request.Context(), auth.CurrentAdmin(c), c.Param("id"), in); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Result{Success: true})
}

// DELETE /api/events/:id (admin)
func (h *Handler) DeleteEvent(c *gin.Context) {
	if err := h.svc.DeleteEvent(c.Request.Context(), auth.CurrentAdmin(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Result{Success: true})
}

func bindForm(c *gin.Context, in *EventFormData) bool {
	if err := c.ShouldBindJSON(in); err != nil {
		msg := "Invalid input"
		var de *DateError
		if errors.As(err, &de) {
			msg = "Invalid date"
		}
		c.JSON(http.StatusBadRequest, Result{Error: msg})
		return false
	}
	return true
}

func respondError(c *gin.Context, err error) {
	c.JSON(errmodel.HTTPStatus(err), Result{Error: errmodel.From(err).Message})
}
