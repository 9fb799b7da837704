package responses

import (
	"testing"
	"time"

	"github.com/nmorris876/yaadmind/internal/lexicon"
	"github.com/nmorris876/yaadmind/internal/triage"
)

func TestForMood(t *testing.T) {
	if got := ForMood(triage.MoodSad, lexicon.LangPatois); got != "Mi hear yuh. It alright fi feel suh. Yuh nah alone." {
		t.Errorf("unexpected patois line: %q", got)
	}
	if got := ForMood(triage.MoodHappy, lexicon.LangEnglish); got == "" {
		t.Error("expected english line")
	}
}

func TestForMoodFallbacks(t *testing.T) {
	// Unknown mood falls back to neutral; unknown language to English.
	neutral := ForMood(triage.MoodNeutral, lexicon.LangEnglish)
	if got := ForMood(triage.Mood("confused"), lexicon.LangEnglish); got != neutral {
		t.Errorf("unknown mood must fall back to neutral, got %q", got)
	}
	if got := ForMood(triage.MoodSad, lexicon.Language("fr")); got != ForMood(triage.MoodSad, lexicon.LangEnglish) {
		t.Errorf("unknown language must fall back to English, got %q", got)
	}
}

func TestTimeOfDay(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{5, "morning"},
		{11, "morning"},
		{12, "afternoon"},
		{16, "afternoon"},
		{17, "evening"},
		{20, "evening"},
		{21, "night"},
		{3, "night"},
	}
	for _, tc := range cases {
		at := time.Date(2025, 6, 1, tc.hour, 0, 0, 0, time.UTC)
		if got := TimeOfDay(at); got != tc.want {
			t.Errorf("TimeOfDay(hour=%d) = %s, want %s", tc.hour, got, tc.want)
		}
	}
}

func TestGreeting(t *testing.T) {
	morning := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	if got := Greeting(morning, lexicon.LangPatois); got != "Mawnin" {
		t.Errorf("expected patois morning greeting, got %q", got)
	}
	night := time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC)
	if got := Greeting(night, lexicon.LangPatois); got != "Wah gwaan" {
		t.Errorf("expected patois night greeting, got %q", got)
	}
}
