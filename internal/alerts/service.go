package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nmorris876/yaadmind/internal/idgen"
	"github.com/nmorris876/yaadmind/internal/metrics"
	"github.com/nmorris876/yaadmind/internal/retry"
	"github.com/nmorris876/yaadmind/internal/triage"
)

const (
	webhookTimeout       = 10 * time.Second
	webhookAttempts      = 3
	webhookRetryBackoff  = 500 * time.Millisecond
	webhookDeliveryLimit = 30 * time.Second
)

// Broadcaster pushes new alerts to connected dashboard clients.
type Broadcaster interface {
	BroadcastCrisisAlert(alert *CrisisAlert)
}

// Service creates and reviews crisis alerts.
type Service struct {
	store       Store
	webhookURL  string
	broadcaster Broadcaster
	logger      *slog.Logger
	httpClient  *http.Client
}

// NewService creates an alert service backed by the given store.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		logger:     logger,
		httpClient: &http.Client{Timeout: webhookTimeout},
	}
}

// WithWebhook enables best-effort webhook delivery for new alerts.
func (s *Service) WithWebhook(url string) *Service {
	s.webhookURL = url
	return s
}

// WithBroadcaster attaches a realtime broadcaster for new alerts.
func (s *Service) WithBroadcaster(b Broadcaster) *Service {
	s.broadcaster = b
	return s
}

// CreateFromAssessment raises an alert for an assessment that crossed the
// intervention threshold. Webhook delivery is fire-and-forget: a counsellor
// endpoint being down must never fail the analysis that raised the alert.
func (s *Service) CreateFromAssessment(ctx context.Context, userID string, a *triage.Assessment) (*CrisisAlert, error) {
	alert := &CrisisAlert{
		ID:           idgen.WithPrefix("alr_"),
		UserID:       userID,
		AssessmentID: a.ID,
		RiskScore:    a.RiskScore,
		RiskLevel:    a.RiskLevel,
		Flags: triage.CrisisFlags{
			SuicideRisk:  a.SuicideRisk,
			SelfHarmRisk: a.SelfHarmRisk,
		},
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Create(ctx, alert); err != nil {
		return nil, err
	}
	metrics.AlertsTotal.Inc()

	if s.webhookURL != "" {
		go s.deliverWebhook(alert)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastCrisisAlert(alert)
	}
	return alert, nil
}

// Acknowledge marks a pending alert as reviewed. The transition is one-way.
func (s *Service) Acknowledge(ctx context.Context, id, by string) (*CrisisAlert, error) {
	alert, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.Status == StatusAcknowledged {
		return nil, ErrAlreadyAcknowledged
	}

	now := time.Now().UTC()
	alert.Status = StatusAcknowledged
	alert.AcknowledgedBy = by
	alert.AcknowledgedAt = &now

	if err := s.store.Update(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// ListPending returns unreviewed alerts, newest first.
func (s *Service) ListPending(ctx context.Context, limit int) ([]*CrisisAlert, error) {
	return s.store.ListPending(ctx, limit)
}

func (s *Service) deliverWebhook(alert *CrisisAlert) {
	ctx, cancel := context.WithTimeout(context.Background(), webhookDeliveryLimit)
	defer cancel()

	body, err := json.Marshal(alert)
	if err != nil {
		return
	}

	// Transient failures get retried with backoff; a 4xx means the endpoint
	// rejected the payload and retrying cannot help.
	err = retry.Do(ctx, webhookAttempts, webhookRetryBackoff, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
		if err != nil {
			return retry.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("webhook returned status %d", resp.StatusCode)
		case resp.StatusCode >= 300:
			return retry.Permanent(fmt.Errorf("webhook rejected with status %d", resp.StatusCode))
		}
		return nil
	})
	if err != nil {
		metrics.AlertWebhookDeliveriesTotal.WithLabelValues("error").Inc()
		s.logger.Warn("alert webhook delivery failed", "alert", alert.ID, "error", err)
		return
	}
	metrics.AlertWebhookDeliveriesTotal.WithLabelValues("ok").Inc()
}
