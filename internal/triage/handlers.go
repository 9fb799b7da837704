package triage

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nmorris876/yaadmind/internal/lexicon"
	"github.com/nmorris876/yaadmind/internal/logging"
	"github.com/nmorris876/yaadmind/internal/metrics"
)

// SentimentProvider supplies the external classifier's verdict for a text.
// Implementations must return a usable degraded default rather than
// blocking the pipeline when the collaborator is down.
type SentimentProvider interface {
	Sentiment(ctx context.Context, text string, lang lexicon.Language) (Sentiment, error)
}

// Handler provides HTTP endpoints for ad-hoc risk analysis.
type Handler struct {
	engine    *Engine
	sentiment SentimentProvider
	store     Store
}

// NewHandler creates a new triage handler.
func NewHandler(engine *Engine, sentiment SentimentProvider, store Store) *Handler {
	return &Handler{engine: engine, sentiment: sentiment, store: store}
}

// RegisterRoutes sets up analysis routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/analyze", h.Analyze)
	r.GET("/analyze/recent", h.ListRecent)
}

type analyzeRequest struct {
	Text      string     `json:"text"`
	Language  string     `json:"language"`
	Sentiment *Sentiment `json:"sentiment,omitempty"`
}

// Analyze handles POST /v1/analyze
func (h *Handler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "request body must be valid JSON",
		})
		return
	}

	lang := lexicon.Language(req.Language)
	if req.Language == "" {
		// Clients that don't declare a language get the Patois sniffer.
		lang = lexicon.LangEnglish
		if lexicon.IsPatois(req.Text) {
			lang = lexicon.LangPatois
		}
	}

	ctx := c.Request.Context()
	sentiment := Sentiment{Label: SentimentNeutral, Confidence: 0}
	if req.Sentiment != nil {
		sentiment = *req.Sentiment
	} else if h.sentiment != nil {
		s, err := h.sentiment.Sentiment(ctx, req.Text, lang)
		if err != nil {
			logging.L(ctx).Warn("sentiment collaborator unavailable, using neutral fallback", "error", err)
		} else {
			sentiment = s
		}
	}

	assessment, err := h.engine.Analyze(ctx, Input{Text: req.Text, Language: lang, Sentiment: sentiment})
	if err != nil {
		if IsInvalidInput(err) {
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

	metrics.AnalysesTotal.WithLabelValues(string(assessment.RiskLevel)).Inc()
	if assessment.SuicideRisk {
		metrics.CrisisFlagsTotal.WithLabelValues("suicide").Inc()
	}
	if assessment.SelfHarmRisk {
		metrics.CrisisFlagsTotal.WithLabelValues("self_harm").Inc()
	}

	c.JSON(http.StatusOK, gin.H{"assessment": assessment})
}

// ListRecent handles GET /v1/analyze/recent
func (h *Handler) ListRecent(c *gin.Context) {
	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	assessments, err := h.store.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessments": assessments,
		"count":       len(assessments),
	})
}
