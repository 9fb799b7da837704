// Package inference is the HTTP client for the external model server: the
// sentiment classifier and the NER entity extractor the engines consume.
//
// Both collaborators are black boxes. The client wraps each endpoint in a
// circuit breaker and reports failures to the caller, which is expected to
// substitute a degraded default (neutral sentiment, empty entities) so the
// scoring pipeline never crashes on collaborator outages.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nmorris876/yaadmind/internal/circuitbreaker"
	"github.com/nmorris876/yaadmind/internal/lexicon"
	"github.com/nmorris876/yaadmind/internal/metrics"
	"github.com/nmorris876/yaadmind/internal/triage"
	"github.com/nmorris876/yaadmind/internal/violence"
)

// ErrUnavailable is returned when the model server cannot be reached or
// its circuit is open.
var ErrUnavailable = errors.New("model server unavailable")

const (
	sentimentPath = "/analyze/sentiment"
	entitiesPath  = "/extract/entities"

	requestTimeout = 30 * time.Second

	breakerThreshold = 5
	breakerOpenFor   = 30 * time.Second
)

// Client calls the model server over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *circuitbreaker.Breaker
}

// NewClient creates a model-server client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		breaker: circuitbreaker.New(breakerThreshold, breakerOpenFor),
	}
}

// Sentiment implements triage.SentimentProvider.
func (c *Client) Sentiment(ctx context.Context, text string, lang lexicon.Language) (triage.Sentiment, error) {
	var resp struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	err := c.post(ctx, sentimentPath, map[string]any{
		"text":     text,
		"language": string(lang),
	}, &resp)
	if err != nil {
		return triage.Sentiment{}, err
	}

	label := triage.SentimentLabel(resp.Label)
	switch label {
	case triage.SentimentPositive, triage.SentimentNegative, triage.SentimentNeutral:
	default:
		label = triage.SentimentNeutral
	}
	return triage.Sentiment{Label: label, Confidence: resp.Confidence}, nil
}

// Entities implements violence.EntityProvider.
func (c *Client) Entities(ctx context.Context, text string, reportType violence.ReportType) (violence.Entities, error) {
	var resp struct {
		Entities violence.Entities `json:"entities"`
	}
	err := c.post(ctx, entitiesPath, map[string]any{
		"text":        text,
		"report_type": string(reportType),
	}, &resp)
	if err != nil {
		return violence.Entities{}, err
	}
	return resp.Entities, nil
}

// Ping checks model server reachability. Used by the health registry.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	if !c.breaker.Allow(path) {
		metrics.ModelServerRequestsTotal.WithLabelValues(path, "circuit_open").Inc()
		return fmt.Errorf("%w: circuit open for %s", ErrUnavailable, path)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	timer := prometheusTimer(path)
	resp, err := c.http.Do(req)
	timer()
	if err != nil {
		c.breaker.RecordFailure(path)
		metrics.ModelServerRequestsTotal.WithLabelValues(path, "error").Inc()
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.breaker.RecordFailure(path)
		metrics.ModelServerRequestsTotal.WithLabelValues(path, "error").Inc()
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.breaker.RecordFailure(path)
		metrics.ModelServerRequestsTotal.WithLabelValues(path, "error").Inc()
		return fmt.Errorf("%w: bad response: %v", ErrUnavailable, err)
	}

	c.breaker.RecordSuccess(path)
	metrics.ModelServerRequestsTotal.WithLabelValues(path, "ok").Inc()
	return nil
}

func prometheusTimer(path string) func() {
	start := time.Now()
	return func() {
		metrics.ModelServerRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}
