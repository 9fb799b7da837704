// Package mood keeps a per-user history of mood readings and derives
// short-window trends from it. Every completed analysis appends one event;
// the trend looks at the most recent events and surfaces sustained concern
// that a single reading cannot show.
package mood

import (
	"context"
	"errors"
	"time"

	"github.com/nmorris876/yaadmind/internal/lexicon"
	"github.com/nmorris876/yaadmind/internal/triage"
)

// TrendWindow is how many recent events a trend considers.
const TrendWindow = 10

var (
	// ErrNoHistory is returned when a user has no recorded events.
	ErrNoHistory = errors.New("no mood history for user")
	// ErrUnknownMood is returned for a check-in with an unrecognized mood.
	ErrUnknownMood = errors.New("unknown mood")
	// ErrUnsupportedLanguage is returned for a check-in with a bad language tag.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// ConcernLevel grades sustained crisis signals across the trend window.
type ConcernLevel string

const (
	ConcernNone     ConcernLevel = "none"
	ConcernModerate ConcernLevel = "moderate"
	ConcernHigh     ConcernLevel = "high"
)

// Event is one mood reading, projected from an assessment.
type Event struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	AssessmentID string           `json:"assessment_id"`
	Mood         triage.Mood      `json:"mood"`
	RiskScore    float64          `json:"risk_score"`
	SuicideRisk  bool             `json:"suicide_risk"`
	SelfHarmRisk bool             `json:"self_harm_risk"`
	Language     lexicon.Language `json:"language"`
	RecordedAt   time.Time        `json:"recorded_at"`
}

// Trend summarizes a user's recent mood history.
type Trend struct {
	UserID            string              `json:"user_id"`
	Window            int                 `json:"window"`
	DominantMood      triage.Mood         `json:"dominant_mood"`
	MoodCounts        map[triage.Mood]int `json:"mood_counts"`
	AverageRisk       float64             `json:"average_risk"`
	SuicideFlags      int                 `json:"suicide_flags"`
	SelfHarmFlags     int                 `json:"self_harm_flags"`
	ConcernLevel      ConcernLevel        `json:"concern_level"`
	NeedsIntervention bool                `json:"needs_intervention"`
}

// Store persists mood events.
type Store interface {
	Append(ctx context.Context, event *Event) error
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]*Event, error)
}
