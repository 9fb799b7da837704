package triage

import (
	"strings"

	"github.com/nmorris876/yaadmind/internal/lexicon"
)

// Normalize lowercases the text and collapses runs of whitespace to single
// spaces. Done once per input; every phrase match runs against this form.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// ScoreCategories counts, for each risk category, how many distinct
// lexicon phrases occur as substrings of the normalized text, and tests
// the crisis phrase sets for presence.
//
// A phrase contributes at most 1 regardless of repeat occurrences: the
// score measures how many distinct concerning signals are present, so one
// repeated word cannot dominate. All-zero scores are a valid neutral
// signal, never an error.
func ScoreCategories(normalized string, lang lexicon.Language) (CategoryScores, CrisisFlags) {
	scores := make(CategoryScores, len(lexicon.Categories))
	for _, cat := range lexicon.Categories {
		n := 0
		for _, phrase := range lexicon.PhrasesFor(cat, lang) {
			if strings.Contains(normalized, phrase) {
				n++
			}
		}
		scores[cat] = n
	}

	flags := CrisisFlags{
		SuicideRisk:  lexicon.ContainsAny(normalized, lexicon.SuicidePhrases(lang)),
		SelfHarmRisk: lexicon.ContainsAny(normalized, lexicon.SelfHarmPhrases(lang)),
	}
	return scores, flags
}
