package triage

import (
	"context"
	"time"

	"github.com/nmorris876/yaadmind/internal/idgen"
	"github.com/nmorris876/yaadmind/internal/lexicon"
)

// DefaultMaxChars is the journal-entry text limit. Messages and violence
// reports use the tighter limit below.
const (
	DefaultMaxChars = 10000
	MessageMaxChars = 5000
)

// Input is one analysis request. Sentiment comes from the external
// classifier; callers in degraded mode pass {neutral, 0} rather than
// skipping the field.
type Input struct {
	Text      string
	Language  lexicon.Language
	Sentiment Sentiment
}

// Engine runs the full risk analysis pipeline. Stateless apart from the
// optional audit store; one engine serves all requests concurrently.
type Engine struct {
	store    Store
	maxChars int
}

// NewEngine creates an engine backed by the given audit store. A nil
// store disables the audit trail.
func NewEngine(store Store) *Engine {
	return &Engine{store: store, maxChars: DefaultMaxChars}
}

// WithMaxChars overrides the text length limit.
func (e *Engine) WithMaxChars(n int) *Engine {
	e.maxChars = n
	return e
}

// Analyze validates the input and produces a fresh Assessment.
//
// Validation failures return before any scoring begins; past validation
// the pipeline cannot fail. Identical inputs always produce identical
// assessments (modulo ID and timestamp).
func (e *Engine) Analyze(ctx context.Context, in Input) (*Assessment, error) {
	if err := e.validate(in); err != nil {
		return nil, err
	}

	normalized := Normalize(in.Text)
	scores, flags := ScoreCategories(normalized, in.Language)
	mood := DeriveMood(in.Sentiment.Label, scores, in.Language, normalized)
	score := CompositeScore(flags, scores)

	levels := make(map[lexicon.Category]CategoryLevel, len(lexicon.Categories)-1)
	for _, cat := range lexicon.Categories {
		if cat == lexicon.Coping {
			continue
		}
		levels[cat] = CategoryLevelFor(cat, scores[cat])
	}

	a := &Assessment{
		ID:              idgen.WithPrefix("asm_"),
		Mood:            mood,
		Confidence:      in.Sentiment.Confidence,
		SuicideRisk:     flags.SuicideRisk,
		SelfHarmRisk:    flags.SelfHarmRisk,
		NeedsSupport:    flags.SuicideRisk || flags.SelfHarmRisk || score > NeedsSupportThreshold,
		CategoryScores:  scores,
		CategoryLevels:  levels,
		CopingPresent:   scores[lexicon.Coping] > 1,
		RiskScore:       Round2(score),
		RiskLevel:       LevelFor(score),
		Recommendations: Recommend(flags, score, scores),
		Language:        in.Language,
		EvaluatedAt:     time.Now().UTC(),
	}

	// Persist asynchronously (best-effort audit trail)
	if e.store != nil {
		go func() {
			_ = e.store.Record(context.Background(), a)
		}()
	}

	return a, nil
}

func (e *Engine) validate(in Input) error {
	trimmed := Normalize(in.Text)
	if trimmed == "" {
		return ErrEmptyText
	}
	if len(in.Text) > e.maxChars {
		return ErrTextTooLong
	}
	if !lexicon.Supported(in.Language) {
		return ErrUnsupportedLanguage
	}
	return nil
}
