package alerts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler provides HTTP endpoints for the counsellor alert queue.
type Handler struct {
	service *Service
}

// NewHandler creates a new alert handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes sets up alert routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/alerts", h.ListPending)
	r.POST("/alerts/:id/acknowledge", h.Acknowledge)
}

// ListPending handles GET /v1/alerts?limit=50
func (h *Handler) ListPending(c *gin.Context) {
	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	pending, err := h.service.ListPending(c.Request.Context(), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": pending,
		"count":  len(pending),
	})
}

type acknowledgeRequest struct {
	AcknowledgedBy string `json:"acknowledgedBy"`
}

// Acknowledge handles POST /v1/alerts/:id/acknowledge
func (h *Handler) Acknowledge(c *gin.Context) {
	var req acknowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "request body must be valid JSON",
		})
		return
	}

	alert, err := h.service.Acknowledge(c.Request.Context(), c.Param("id"), req.AcknowledgedBy)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alert": alert})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case errors.Is(err, ErrAlertNotFound):
		status = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, ErrAlreadyAcknowledged):
		status = http.StatusConflict
		code = "already_acknowledged"
	}
	c.JSON(status, gin.H{"error": code, "message": err.Error()})
}
