package mood

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler provides HTTP endpoints for mood history and trends.
type Handler struct {
	service *Service
}

// NewHandler creates a new mood handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes sets up mood routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/mood/:userId", h.Record)
	r.GET("/mood/:userId/history", h.History)
	r.GET("/mood/:userId/trend", h.Trend)
}

// Record handles POST /v1/mood/:userId for self-reported check-ins.
func (h *Handler) Record(c *gin.Context) {
	var req CheckIn
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "request body must be valid JSON",
		})
		return
	}

	event, err := h.service.RecordCheckIn(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		if errors.Is(err, ErrUnknownMood) || errors.Is(err, ErrUnsupportedLanguage) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_input",
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// History handles GET /v1/mood/:userId/history?limit=20
func (h *Handler) History(c *gin.Context) {
	limit := 20
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	events, err := h.service.History(c.Request.Context(), c.Param("userId"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// Trend handles GET /v1/mood/:userId/trend
func (h *Handler) Trend(c *gin.Context) {
	trend, err := h.service.TrendForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, ErrNoHistory) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "no_history",
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"trend": trend})
}
