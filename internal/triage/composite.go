package triage

import (
	"math"

	"github.com/nmorris876/yaadmind/internal/lexicon"
)

// Composite score weights. Suicide and self-harm are near-deterministic
// triggers; the graded categories escalate incrementally; coping is the
// only subtractive term.
const (
	weightSuicide    = 1.00
	weightSelfHarm   = 0.80
	weightDepression = 0.10
	weightAnxiety    = 0.08
	weightAnger      = 0.06
	weightTrauma     = 0.12
	weightIsolation  = 0.09
	weightCoping     = 0.10

	// NeedsSupportThreshold is deliberately below the critical cutoff: a
	// disclosure can warrant a support nudge before it warrants the most
	// severe classification.
	NeedsSupportThreshold = 0.7
)

// CompositeScore combines crisis flags and category scores into a single
// clamped [0,1] risk score. The returned value is unrounded; thresholding
// must use this value, never the 2dp presentation form, to avoid boundary
// flips from rounding.
func CompositeScore(flags CrisisFlags, scores CategoryScores) float64 {
	score := 0.0
	if flags.SuicideRisk {
		score += weightSuicide
	}
	if flags.SelfHarmRisk {
		score += weightSelfHarm
	}
	score += float64(scores[lexicon.Depression]) * weightDepression
	score += float64(scores[lexicon.Anxiety]) * weightAnxiety
	score += float64(scores[lexicon.Anger]) * weightAnger
	score += float64(scores[lexicon.Trauma]) * weightTrauma
	score += float64(scores[lexicon.Isolation]) * weightIsolation
	score -= float64(scores[lexicon.Coping]) * weightCoping

	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return score
}

// Round2 rounds a score to 2 decimal places for reporting.
func Round2(score float64) float64 {
	return math.Round(score*100) / 100
}

// LevelFor discretizes an unrounded composite score. Highest band first,
// first match wins; all thresholds are strict.
func LevelFor(score float64) RiskLevel {
	switch {
	case score > 0.8:
		return RiskCritical
	case score > 0.6:
		return RiskHigh
	case score > 0.3:
		return RiskModerate
	default:
		return RiskLow
	}
}

// CategoryLevelFor discretizes one category's score. Depression, anxiety
// and isolation share the >3/>1 and >2/>1 gradings; trauma is binary.
// Coping has no level of its own; it surfaces as CopingPresent.
func CategoryLevelFor(cat lexicon.Category, score int) CategoryLevel {
	switch cat {
	case lexicon.Depression, lexicon.Anxiety:
		switch {
		case score > 3:
			return LevelHigh
		case score > 1:
			return LevelModerate
		default:
			return LevelLow
		}
	case lexicon.Anger:
		switch {
		case score > 2:
			return LevelHigh
		case score > 1:
			return LevelModerate
		default:
			return LevelLow
		}
	case lexicon.Trauma:
		if score > 0 {
			return LevelPresent
		}
		return LevelNoneDetected
	case lexicon.Isolation:
		switch {
		case score > 2:
			return LevelHigh
		case score > 1:
			return LevelModerate
		default:
			return LevelLow
		}
	default:
		return LevelLow
	}
}
