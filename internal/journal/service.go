package journal

import (
	"context"
	"time"

	"github.com/nmorris876/yaadmind/internal/alerts"
	"github.com/nmorris876/yaadmind/internal/idgen"
	"github.com/nmorris876/yaadmind/internal/lexicon"
	"github.com/nmorris876/yaadmind/internal/logging"
	"github.com/nmorris876/yaadmind/internal/metrics"
	"github.com/nmorris876/yaadmind/internal/mood"
	"github.com/nmorris876/yaadmind/internal/pagination"
	"github.com/nmorris876/yaadmind/internal/traces"
	"github.com/nmorris876/yaadmind/internal/triage"

	"go.opentelemetry.io/otel/codes"
)

// MoodRecorder appends a mood event for a completed analysis.
type MoodRecorder interface {
	RecordFromAssessment(ctx context.Context, userID string, a *triage.Assessment) (*mood.Event, error)
}

// AlertRaiser queues a crisis alert for a concerning analysis.
type AlertRaiser interface {
	CreateFromAssessment(ctx context.Context, userID string, a *triage.Assessment) (*alerts.CrisisAlert, error)
}

// Service runs the journal write path: analyze, persist, fan out.
type Service struct {
	store     Store
	engine    *triage.Engine
	sentiment triage.SentimentProvider
	moods     MoodRecorder
	alerts    AlertRaiser
}

// NewService creates a journal service.
func NewService(store Store, engine *triage.Engine) *Service {
	return &Service{store: store, engine: engine}
}

// WithSentiment attaches the sentiment collaborator.
func (s *Service) WithSentiment(p triage.SentimentProvider) *Service {
	s.sentiment = p
	return s
}

// WithMoodRecorder attaches the mood history projection.
func (s *Service) WithMoodRecorder(m MoodRecorder) *Service {
	s.moods = m
	return s
}

// WithAlertRaiser attaches the crisis alert queue.
func (s *Service) WithAlertRaiser(a AlertRaiser) *Service {
	s.alerts = a
	return s
}

// CreateInput is a request to create a journal entry.
type CreateInput struct {
	UserID   string
	Title    string
	Content  string
	Language lexicon.Language
}

// Create analyzes the content and persists the entry. Mood history and
// crisis alerts are best-effort side effects: their failures are logged,
// never surfaced, because the entry itself is already safely stored.
func (s *Service) Create(ctx context.Context, in CreateInput) (_ *Entry, retErr error) {
	ctx, span := traces.StartSpan(ctx, "journal.Create", traces.UserID(in.UserID))
	defer func() {
		if retErr != nil {
			span.RecordError(retErr)
			span.SetStatus(codes.Error, retErr.Error())
		}
		span.End()
	}()

	lang := in.Language
	if lang == "" {
		lang = lexicon.LangEnglish
		if lexicon.IsPatois(in.Content) {
			lang = lexicon.LangPatois
		}
	}

	assessment, err := s.engine.Analyze(ctx, triage.Input{
		Text:      in.Content,
		Language:  lang,
		Sentiment: s.sentimentFor(ctx, in.Content, lang),
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(traces.RiskLevel(string(assessment.RiskLevel)), traces.Language(string(lang)))

	now := time.Now().UTC()
	words := WordCount(in.Content)
	entry := &Entry{
		ID:             idgen.WithPrefix("jrn_"),
		UserID:         in.UserID,
		Title:          in.Title,
		Content:        in.Content,
		Language:       lang,
		WordCount:      words,
		ReadingTimeMin: ReadingTime(words),
		Keywords:       ExtractKeywords(in.Content, DefaultKeywordLimit),
		Assessment:     assessment,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.Create(ctx, entry); err != nil {
		return nil, err
	}
	metrics.JournalEntriesTotal.Inc()

	if s.moods != nil && in.UserID != "" {
		if _, err := s.moods.RecordFromAssessment(ctx, in.UserID, assessment); err != nil {
			logging.L(ctx).Warn("failed to record mood event", "entry", entry.ID, "error", err)
		}
	}
	if s.alerts != nil && (assessment.NeedsSupport || assessment.SuicideRisk || assessment.SelfHarmRisk) {
		if _, err := s.alerts.CreateFromAssessment(ctx, in.UserID, assessment); err != nil {
			logging.L(ctx).Warn("failed to raise crisis alert", "entry", entry.ID, "error", err)
		}
	}

	return entry, nil
}

// Get returns an entry by ID.
func (s *Service) Get(ctx context.Context, id string) (*Entry, error) {
	return s.store.Get(ctx, id)
}

// List returns one page of a user's entries, newest first, plus an opaque
// cursor for the next page. The cursor is empty when the page came up short.
func (s *Service) List(ctx context.Context, userID string, limit int, cursor string) ([]*Entry, string, error) {
	before, err := pagination.Decode(cursor)
	if err != nil {
		return nil, "", ErrInvalidCursor
	}

	entries, err := s.store.ListByUser(ctx, userID, limit, before)
	if err != nil {
		return nil, "", err
	}

	next := ""
	if limit > 0 && len(entries) == limit {
		last := entries[len(entries)-1]
		next = pagination.Encode(last.CreatedAt, last.ID)
	}
	return entries, next, nil
}

// UpdateContent replaces an entry's title and content and re-analyzes it.
func (s *Service) UpdateContent(ctx context.Context, id, title, content string) (*Entry, error) {
	entry, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	lang := entry.Language
	assessment, err := s.engine.Analyze(ctx, triage.Input{
		Text:      content,
		Language:  lang,
		Sentiment: s.sentimentFor(ctx, content, lang),
	})
	if err != nil {
		return nil, err
	}

	words := WordCount(content)
	entry.Title = title
	entry.Content = content
	entry.WordCount = words
	entry.ReadingTimeMin = ReadingTime(words)
	entry.Keywords = ExtractKeywords(content, DefaultKeywordLimit)
	entry.Assessment = assessment
	entry.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// sentimentFor asks the collaborator for sentiment, falling back to a
// zero-confidence neutral reading when it is unavailable.
func (s *Service) sentimentFor(ctx context.Context, text string, lang lexicon.Language) triage.Sentiment {
	if s.sentiment == nil {
		return triage.Sentiment{Label: triage.SentimentNeutral}
	}
	sentiment, err := s.sentiment.Sentiment(ctx, text, lang)
	if err != nil {
		logging.L(ctx).Warn("sentiment collaborator unavailable, using neutral fallback", "error", err)
		return triage.Sentiment{Label: triage.SentimentNeutral}
	}
	return sentiment
}
