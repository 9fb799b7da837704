package mood

import (
	"context"
	"time"

	"github.com/nmorris876/yaadmind/internal/idgen"
	"github.com/nmorris876/yaadmind/internal/lexicon"
	"github.com/nmorris876/yaadmind/internal/triage"
)

// Service records mood events and computes trends.
type Service struct {
	store Store
}

// NewService creates a mood service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// RecordFromAssessment appends one mood event for a completed analysis.
func (s *Service) RecordFromAssessment(ctx context.Context, userID string, a *triage.Assessment) (*Event, error) {
	event := &Event{
		ID:           idgen.WithPrefix("mev_"),
		UserID:       userID,
		AssessmentID: a.ID,
		Mood:         a.Mood,
		RiskScore:    a.RiskScore,
		SuicideRisk:  a.SuicideRisk,
		SelfHarmRisk: a.SelfHarmRisk,
		Language:     a.Language,
		RecordedAt:   time.Now().UTC(),
	}
	if err := s.store.Append(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// CheckIn is a self-reported mood, recorded outside the analysis pipeline.
type CheckIn struct {
	Mood     triage.Mood      `json:"mood"`
	Language lexicon.Language `json:"language"`
}

// RecordCheckIn appends a self-reported mood event. Check-ins carry no
// assessment, so risk score and crisis flags stay zero.
func (s *Service) RecordCheckIn(ctx context.Context, userID string, in CheckIn) (*Event, error) {
	switch in.Mood {
	case triage.MoodHappy, triage.MoodSad, triage.MoodAngry, triage.MoodAnxious, triage.MoodNeutral:
	default:
		return nil, ErrUnknownMood
	}

	lang := in.Language
	if lang == "" {
		lang = lexicon.LangEnglish
	}
	if !lexicon.Supported(lang) {
		return nil, ErrUnsupportedLanguage
	}

	event := &Event{
		ID:         idgen.WithPrefix("mev_"),
		UserID:     userID,
		Mood:       in.Mood,
		Language:   lang,
		RecordedAt: time.Now().UTC(),
	}
	if err := s.store.Append(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// History returns a user's most recent mood events, newest first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]*Event, error) {
	return s.store.ListRecentByUser(ctx, userID, limit)
}

// TrendForUser computes the trend over the user's last TrendWindow events.
func (s *Service) TrendForUser(ctx context.Context, userID string) (*Trend, error) {
	events, err := s.store.ListRecentByUser(ctx, userID, TrendWindow)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrNoHistory
	}
	return computeTrend(userID, events), nil
}

// computeTrend summarizes a window of events. Concern grading counts crisis
// flags across the window: repeated suicide signals outrank everything, and
// a single suicide flag already clears the moderate bar.
func computeTrend(userID string, events []*Event) *Trend {
	trend := &Trend{
		UserID:     userID,
		Window:     len(events),
		MoodCounts: make(map[triage.Mood]int),
	}

	var riskSum float64
	for _, e := range events {
		trend.MoodCounts[e.Mood]++
		riskSum += e.RiskScore
		if e.SuicideRisk {
			trend.SuicideFlags++
		}
		if e.SelfHarmRisk {
			trend.SelfHarmFlags++
		}
	}
	trend.AverageRisk = triage.Round2(riskSum / float64(len(events)))
	trend.DominantMood = dominantMood(events, trend.MoodCounts)

	switch {
	case trend.SuicideFlags >= 2 || trend.SelfHarmFlags >= 3:
		trend.ConcernLevel = ConcernHigh
	case trend.SuicideFlags >= 1 || trend.SelfHarmFlags >= 2:
		trend.ConcernLevel = ConcernModerate
	default:
		trend.ConcernLevel = ConcernNone
	}
	trend.NeedsIntervention = trend.ConcernLevel == ConcernHigh || trend.AverageRisk > 0.6

	return trend
}

// dominantMood picks the most frequent mood; ties go to the most recent
// occurrence so the trend tracks where the user is heading.
func dominantMood(events []*Event, counts map[triage.Mood]int) triage.Mood {
	best := events[0].Mood
	for _, e := range events {
		if counts[e.Mood] > counts[best] {
			best = e.Mood
		}
	}
	return best
}
