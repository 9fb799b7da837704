package violence

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler provides HTTP endpoints for violence reports.
type Handler struct {
	service *Service
	store   Store
}

// NewHandler creates a new violence-report handler.
func NewHandler(service *Service, store Store) *Handler {
	return &Handler{service: service, store: store}
}

// RegisterRoutes sets up report routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/reports", h.Submit)
	r.POST("/reports/analyze", h.Analyze)
	r.GET("/reports", h.List)
	r.GET("/reports/:id", h.Get)
	r.POST("/reports/:id/review", h.transitionTo(StatusReviewed))
	r.POST("/reports/:id/escalate", h.transitionTo(StatusEscalated))
	r.POST("/reports/:id/resolve", h.transitionTo(StatusResolved))
}

type submitRequest struct {
	ReporterID string    `json:"reporterId"`
	Type       string    `json:"type"`
	Content    string    `json:"content"`
	Entities   *Entities `json:"entities,omitempty"`
}

// Submit handles POST /v1/reports
func (h *Handler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "request body must be valid JSON",
		})
		return
	}

	report, err := h.service.Submit(c.Request.Context(), req.ReporterID, req.Content, ReportType(req.Type), req.Entities)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": report})
}

// Analyze handles POST /v1/reports/analyze: scoring without persistence,
// for clients that hold their own records.
func (h *Handler) Analyze(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "request body must be valid JSON",
		})
		return
	}

	assessment, err := h.service.AnalyzeReport(c.Request.Context(), req.Content, ReportType(req.Type), req.Entities)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessment": assessment})
}

// Get handles GET /v1/reports/:id
func (h *Handler) Get(c *gin.Context) {
	report, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// List handles GET /v1/reports?status=pending&limit=50
func (h *Handler) List(c *gin.Context) {
	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	reports, err := h.store.ListByStatus(c.Request.Context(), Status(c.Query("status")), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"count":   len(reports),
	})
}

func (h *Handler) transitionTo(to Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, err := h.service.Transition(c.Request.Context(), c.Param("id"), to)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"report": report})
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case errors.Is(err, ErrReportNotFound):
		status = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, ErrInvalidTransition):
		status = http.StatusConflict
		code = "invalid_transition"
	case errors.Is(err, ErrUnknownReportType),
		errors.Is(err, ErrEmptyContent),
		errors.Is(err, ErrContentTooLong):
		status = http.StatusBadRequest
		code = "invalid_input"
	}
	c.JSON(status, gin.H{"error": code, "message": err.Error()})
}
