// Package responses holds the culturally aware support lines returned
// alongside analyses. These are static strings per mood and language, with
// English as the fallback; generative replies are a separate system.
package responses

import (
	"time"

	"github.com/nmorris876/yaadmind/internal/lexicon"
	"github.com/nmorris876/yaadmind/internal/triage"
)

var supportLines = map[triage.Mood]map[lexicon.Language]string{
	triage.MoodHappy: {
		lexicon.LangEnglish: "That's wonderful! I'm glad to hear you're feeling good.",
		lexicon.LangPatois:  "Dat nice! Mi glad fi hear seh yuh gwaan good.",
	},
	triage.MoodSad: {
		lexicon.LangEnglish: "I hear you. It's okay to feel this way. You're not alone.",
		lexicon.LangPatois:  "Mi hear yuh. It alright fi feel suh. Yuh nah alone.",
	},
	triage.MoodAngry: {
		lexicon.LangEnglish: "I understand you're upset. Take your time to breathe.",
		lexicon.LangPatois:  "Mi understand seh yuh vex. Tek yuh time and breathe.",
	},
	triage.MoodAnxious: {
		lexicon.LangEnglish: "I'm here with you. Let's take this one step at a time.",
		lexicon.LangPatois:  "Mi deh yah wid yuh. Mek wi tek it one step at a time.",
	},
	triage.MoodNeutral: {
		lexicon.LangEnglish: "I'm listening. How can I support you today?",
		lexicon.LangPatois:  "Mi a listen. How mi can support yuh today?",
	},
}

// ForMood returns the support line for a mood and language. Unknown moods
// fall back to neutral; unknown languages fall back to English.
func ForMood(mood triage.Mood, lang lexicon.Language) string {
	lines, ok := supportLines[mood]
	if !ok {
		lines = supportLines[triage.MoodNeutral]
	}
	if line, ok := lines[lang]; ok {
		return line
	}
	return lines[lexicon.LangEnglish]
}

// TimeOfDay buckets an hour into the greeting periods.
func TimeOfDay(t time.Time) string {
	hour := t.UTC().Hour()
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}

var greetings = map[string]map[lexicon.Language]string{
	"morning": {
		lexicon.LangEnglish: "Good morning",
		lexicon.LangPatois:  "Mawnin",
	},
	"afternoon": {
		lexicon.LangEnglish: "Good afternoon",
		// Jamaicans often say evening for afternoon.
		lexicon.LangPatois: "Good evening",
	},
	"evening": {
		lexicon.LangEnglish: "Good evening",
		lexicon.LangPatois:  "Good evening",
	},
	"night": {
		lexicon.LangEnglish: "Good evening",
		lexicon.LangPatois:  "Wah gwaan",
	},
}

// Greeting returns a time-appropriate greeting for a language.
func Greeting(t time.Time, lang lexicon.Language) string {
	period := greetings[TimeOfDay(t)]
	if g, ok := period[lang]; ok {
		return g
	}
	return period[lexicon.LangEnglish]
}
