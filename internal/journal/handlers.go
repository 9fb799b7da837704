package journal

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nmorris876/yaadmind/internal/lexicon"
	"github.com/nmorris876/yaadmind/internal/responses"
	"github.com/nmorris876/yaadmind/internal/triage"
	"github.com/nmorris876/yaadmind/internal/validation"
)

// Handler provides HTTP endpoints for journal entries.
type Handler struct {
	service    *Service
	maxContent int
}

// NewHandler creates a new journal handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// WithMaxContentLength caps entry content length. Zero disables the cap.
func (h *Handler) WithMaxContentLength(n int) *Handler {
	h.maxContent = n
	return h
}

// RegisterRoutes sets up journal routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/journal", h.Create)
	r.GET("/journal", h.List)
	r.GET("/journal/:id", h.Get)
	r.PUT("/journal/:id", h.Update)
	r.DELETE("/journal/:id", h.Delete)
}

type createRequest struct {
	UserID   string `json:"userId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

// Create handles POST /v1/journal
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "request body must be valid JSON",
		})
		return
	}

	validators := []func() *validation.ValidationError{
		validation.Required("content", req.Content),
		validation.ValidLanguage("language", req.Language),
	}
	if h.maxContent > 0 {
		validators = append(validators, validation.MaxLength("content", req.Content, h.maxContent))
	}
	if errs := validation.Validate(validators...); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation_failed",
			"message": errs.Error(),
			"details": errs,
		})
		return
	}

	entry, err := h.service.Create(c.Request.Context(), CreateInput{
		UserID:   req.UserID,
		Title:    req.Title,
		Content:  req.Content,
		Language: lexicon.Language(req.Language),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"entry":    entry,
		"greeting": responses.Greeting(time.Now(), entry.Language),
		"response": responses.ForMood(entry.Assessment.Mood, entry.Language),
	})
}

// Get handles GET /v1/journal/:id
func (h *Handler) Get(c *gin.Context) {
	entry, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// List handles GET /v1/journal?userId=u1&limit=20&cursor=...
func (h *Handler) List(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "userId query parameter is required",
		})
		return
	}

	limit := 20
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, next, err := h.service.List(c.Request.Context(), userID, limit, c.Query("cursor"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := gin.H{
		"entries": entries,
		"count":   len(entries),
	}
	if next != "" {
		resp["nextCursor"] = next
	}
	c.JSON(http.StatusOK, resp)
}

type updateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Update handles PUT /v1/journal/:id
func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "request body must be valid JSON",
		})
		return
	}

	entry, err := h.service.UpdateContent(c.Request.Context(), c.Param("id"), req.Title, req.Content)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry})
}

// Delete handles DELETE /v1/journal/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case errors.Is(err, ErrEntryNotFound):
		status = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, ErrInvalidCursor):
		status = http.StatusBadRequest
		code = "invalid_cursor"
	case triage.IsInvalidInput(err):
		status = http.StatusBadRequest
		code = "invalid_input"
	}
	c.JSON(status, gin.H{"error": code, "message": err.Error()})
}
