package triage

import "github.com/nmorris876/yaadmind/internal/lexicon"

// DeriveMood maps the external sentiment label to a mood, disambiguating
// negative sentiment by category dominance, then applies the Patois
// override markers.
//
// Dominance thresholds are strict (> 2, not >= 2); changing them shifts
// calibration. The Patois override runs last and wins even when it
// contradicts the base classifier: dialect idioms like "irie" or
// "mash up" carry mood the model was never trained on.
func DeriveMood(label SentimentLabel, scores CategoryScores, lang lexicon.Language, normalized string) Mood {
	var mood Mood
	switch label {
	case SentimentPositive:
		mood = MoodHappy
	case SentimentNegative:
		switch {
		case scores[lexicon.Anger] > 2:
			mood = MoodAngry
		case scores[lexicon.Anxiety] > 2:
			mood = MoodAnxious
		default:
			mood = MoodSad
		}
	default:
		mood = MoodNeutral
	}

	if lang == lexicon.LangPatois {
		switch {
		case lexicon.ContainsAny(normalized, lexicon.PatoisPositiveMarkers):
			mood = MoodHappy
		case lexicon.ContainsAny(normalized, lexicon.PatoisNegativeMarkers):
			mood = MoodSad
		case lexicon.ContainsAny(normalized, lexicon.PatoisAngerMarkers):
			mood = MoodAngry
		}
	}
	return mood
}
