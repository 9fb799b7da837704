package violence

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/nmorris876/yaadmind/internal/idgen"
	"github.com/nmorris876/yaadmind/internal/logging"
	"github.com/nmorris876/yaadmind/internal/metrics"
	"github.com/nmorris876/yaadmind/internal/privacy"
	"github.com/nmorris876/yaadmind/internal/traces"
)

// MaxContentChars is the report content limit.
const MaxContentChars = 5000

// EntityProvider supplies NER entity spans for report text. Implementations
// return empty entities rather than failing the pipeline when the
// collaborator is down.
type EntityProvider interface {
	Entities(ctx context.Context, text string, reportType ReportType) (Entities, error)
}

// Broadcaster pushes escalated-report events to connected dashboard
// clients. Optional.
type Broadcaster interface {
	BroadcastReportEscalated(r *Report)
}

// Service orchestrates report submission: validation, PII scrubbing,
// entity extraction, urgency scoring, routing, and persistence.
type Service struct {
	store       Store
	entities    EntityProvider
	broadcaster Broadcaster
}

// NewService creates a violence-report service.
func NewService(store Store, entities EntityProvider) *Service {
	return &Service{store: store, entities: entities}
}

// WithBroadcaster attaches a realtime broadcaster for escalations.
func (s *Service) WithBroadcaster(b Broadcaster) *Service {
	s.broadcaster = b
	return s
}

// AnalyzeReport runs the pure scoring path over report text and optional
// pre-extracted entities. Exposed separately from Submit so callers with
// their own persistence can use the engine directly.
func (s *Service) AnalyzeReport(ctx context.Context, text string, reportType ReportType, entities *Entities) (Assessment, error) {
	if strings.TrimSpace(text) == "" {
		return Assessment{}, ErrEmptyContent
	}
	if len(text) > MaxContentChars {
		return Assessment{}, ErrContentTooLong
	}
	if !KnownType(reportType) {
		return Assessment{}, ErrUnknownReportType
	}

	var ents Entities
	if entities != nil {
		ents = *entities
	} else if s.entities != nil {
		extracted, err := s.entities.Entities(ctx, text, reportType)
		if err != nil {
			logging.L(ctx).Warn("entity collaborator unavailable, continuing without entities", "error", err)
		} else {
			ents = extracted
		}
	}

	urgency := ReportUrgency(text)
	return Assessment{
		Entities:       ents,
		UrgencyScore:   urgency,
		ShouldEscalate: ShouldEscalate(urgency, reportType, text),
		RoutedTo:       RouteAgencies(urgency, reportType, text),
	}, nil
}

// Submit analyzes and persists a new report. Stored content is
// PII-scrubbed; the raw submission is never persisted.
func (s *Service) Submit(ctx context.Context, reporterID, text string, reportType ReportType, entities *Entities) (_ *Report, retErr error) {
	ctx, span := traces.StartSpan(ctx, "violence.Submit",
		attribute.String("report.type", string(reportType)),
	)
	defer func() {
		if retErr != nil {
			span.RecordError(retErr)
			span.SetStatus(codes.Error, retErr.Error())
		}
		span.End()
	}()

	assessment, err := s.AnalyzeReport(ctx, text, reportType, entities)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Float64("report.urgency", assessment.UrgencyScore),
		attribute.Bool("report.escalate", assessment.ShouldEscalate),
	)

	now := time.Now().UTC()
	report := &Report{
		ID:         idgen.WithPrefix("rpt_"),
		ReporterID: reporterID,
		Type:       reportType,
		Content:    privacy.ScrubPII(text),
		Assessment: assessment,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.Create(ctx, report); err != nil {
		return nil, err
	}

	metrics.ReportsTotal.WithLabelValues(string(reportType)).Inc()
	for _, agency := range assessment.RoutedTo {
		metrics.ReportRoutingsTotal.WithLabelValues(string(agency)).Inc()
	}
	if assessment.ShouldEscalate {
		metrics.ReportEscalationsTotal.Inc()
		if s.broadcaster != nil {
			s.broadcaster.BroadcastReportEscalated(report)
		}
	}

	return report, nil
}

// Transition moves a report through its status state machine. Invalid
// transitions are rejected; escalated and resolved are terminal.
func (s *Service) Transition(ctx context.Context, id string, to Status) (*Report, error) {
	report, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(report.Status, to) {
		return nil, ErrInvalidTransition
	}

	now := time.Now().UTC()
	if err := s.store.UpdateStatus(ctx, id, to, now); err != nil {
		return nil, err
	}
	report.Status = to
	report.UpdatedAt = now
	return report, nil
}
