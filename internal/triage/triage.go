// Package triage implements the bilingual mental-health risk engine.
//
// Every disclosure (journal entry, chat message) is scored against the
// lexicon's six risk categories plus the binary suicide/self-harm crisis
// flags, combined into a composite [0,1] risk score via fixed weights, and
// discretized into a risk level with an ordered set of actionable
// recommendations. The engine is a pure synchronous computation: no I/O,
// no shared mutable state, safe for unlimited concurrent calls. It is an
// explainable heuristic triage layer, not a clinical screening instrument.
package triage

import (
	"context"
	"errors"
	"time"

	"github.com/nmorris876/yaadmind/internal/lexicon"
)

// Mood is the normalized mood label derived from the external sentiment
// classifier plus category dominance.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
	MoodAnxious Mood = "anxious"
	MoodNeutral Mood = "neutral"
)

// RiskLevel is the discretized band of the composite risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// CategoryLevel is the per-category discretization. Trauma uses the
// present/none_detected pair; the graded categories use low/moderate/high.
type CategoryLevel string

const (
	LevelLow          CategoryLevel = "low"
	LevelModerate     CategoryLevel = "moderate"
	LevelHigh         CategoryLevel = "high"
	LevelPresent      CategoryLevel = "present"
	LevelNoneDetected CategoryLevel = "none_detected"
)

// SentimentLabel is the 3-way label from the external classifier.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Sentiment is the external classifier output consumed as an opaque input.
// Callers supply a degraded default (neutral, confidence 0) when the
// classifier is unavailable; the engine never calls it.
type Sentiment struct {
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
}

// CategoryScores maps each risk category to its distinct-phrase hit count.
// Computed fresh per input, immutable once produced.
type CategoryScores map[lexicon.Category]int

// CrisisFlags are the binary suicide/self-harm indicators. They are
// monotonic in keyword presence: no score can unset a flag once a matching
// phrase exists in the input.
type CrisisFlags struct {
	SuicideRisk  bool `json:"suicideRisk"`
	SelfHarmRisk bool `json:"selfHarmRisk"`
}

// Recommendation is one actionable next step. Order in the assessment is
// significant: the crisis recommendation always sorts first.
type Recommendation struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

// Recommendation types and actions.
const (
	RecCrisis           = "crisis"
	RecProfessionalHelp = "professional_help"
	RecCommunity        = "community"
	RecCopingTechnique  = "coping_technique"
	RecPositive         = "positive_reinforcement"

	ActionShowCrisisResources = "show_crisis_resources"
	ActionShowProfessionals   = "show_professionals"
	ActionShowCommunities     = "show_communities"
	ActionShowCopingTools     = "show_coping_tools"
	ActionEncourage           = "encourage_continuation"
)

// Assessment is the full output of one analysis call. Constructed fresh
// per call and never mutated afterwards; callers persist it attached to
// the originating entry or message.
type Assessment struct {
	ID              string                             `json:"id"`
	Mood            Mood                               `json:"mood"`
	Confidence      float64                            `json:"confidence"`
	SuicideRisk     bool                               `json:"suicideRisk"`
	SelfHarmRisk    bool                               `json:"selfHarmRisk"`
	NeedsSupport    bool                               `json:"needsSupport"`
	CategoryScores  CategoryScores                     `json:"categoryScores"`
	CategoryLevels  map[lexicon.Category]CategoryLevel `json:"categoryLevels"`
	CopingPresent   bool                               `json:"copingPresent"`
	RiskScore       float64                            `json:"riskScore"`
	RiskLevel       RiskLevel                          `json:"riskLevel"`
	Recommendations []Recommendation                   `json:"recommendations"`
	Language        lexicon.Language                   `json:"language"`
	EvaluatedAt     time.Time                          `json:"evaluatedAt"`
}

// Input validation errors. All are rejected before any scoring begins; no
// partial assessment is ever produced.
var (
	ErrEmptyText           = errors.New("text is empty after trimming")
	ErrTextTooLong         = errors.New("text exceeds maximum length")
	ErrUnsupportedLanguage = errors.New("language must be \"en\" or \"patois\"")
)

// IsInvalidInput reports whether err is one of the input validation errors.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrEmptyText) ||
		errors.Is(err, ErrTextTooLong) ||
		errors.Is(err, ErrUnsupportedLanguage)
}

// Store persists assessments for the audit trail.
type Store interface {
	Record(ctx context.Context, a *Assessment) error
	ListRecent(ctx context.Context, limit int) ([]*Assessment, error)
}
