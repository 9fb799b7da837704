package triage

import "github.com/nmorris876/yaadmind/internal/lexicon"

// Recommend derives the ordered recommendation list. Rules fire
// independently and the output preserves rule order, which places the
// crisis recommendation first whenever it fires. An empty list is valid.
// The score argument must be the unrounded composite score.
func Recommend(flags CrisisFlags, score float64, scores CategoryScores) []Recommendation {
	var recs []Recommendation

	if flags.SuicideRisk || score > 0.8 {
		recs = append(recs, Recommendation{
			Type:    RecCrisis,
			Message: "Immediate support needed. Please reach out to a crisis counselor.",
			Action:  ActionShowCrisisResources,
		})
	}

	if scores[lexicon.Depression] > 3 {
		recs = append(recs, Recommendation{
			Type:    RecProfessionalHelp,
			Message: "Consider speaking with a mental health professional",
			Action:  ActionShowProfessionals,
		})
	}

	if scores[lexicon.Isolation] > 2 {
		recs = append(recs, Recommendation{
			Type:    RecCommunity,
			Message: "Connecting with others might help. Join a support community.",
			Action:  ActionShowCommunities,
		})
	}

	if scores[lexicon.Anxiety] > 3 {
		recs = append(recs, Recommendation{
			Type:    RecCopingTechnique,
			Message: "Try breathing exercises or mindfulness to manage anxiety",
			Action:  ActionShowCopingTools,
		})
	}

	if scores[lexicon.Coping] > 2 {
		recs = append(recs, Recommendation{
			Type:    RecPositive,
			Message: "Great job using healthy coping strategies!",
			Action:  ActionEncourage,
		})
	}

	return recs
}
