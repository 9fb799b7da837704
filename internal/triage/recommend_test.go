package triage

import (
	"testing"

	"github.com/nmorris876/yaadmind/internal/lexicon"
)

func TestRecommendEmptyIsValid(t *testing.T) {
	recs := Recommend(CrisisFlags{}, 0.1, CategoryScores{})
	if len(recs) != 0 {
		t.Errorf("expected no recommendations, got %+v", recs)
	}
}

func TestRecommendCrisisFirst(t *testing.T) {
	// Fire every rule at once; crisis must still be index 0 and the rest
	// must keep rule-evaluation order.
	scores := CategoryScores{
		lexicon.Depression: 4,
		lexicon.Isolation:  3,
		lexicon.Anxiety:    4,
		lexicon.Coping:     3,
	}
	recs := Recommend(CrisisFlags{SuicideRisk: true}, 0.9, scores)

	wantOrder := []string{RecCrisis, RecProfessionalHelp, RecCommunity, RecCopingTechnique, RecPositive}
	if len(recs) != len(wantOrder) {
		t.Fatalf("expected %d recommendations, got %d", len(wantOrder), len(recs))
	}
	for i, want := range wantOrder {
		if recs[i].Type != want {
			t.Errorf("recs[%d].Type = %s, want %s", i, recs[i].Type, want)
		}
	}
}

func TestRecommendCrisisFromScoreAlone(t *testing.T) {
	recs := Recommend(CrisisFlags{}, 0.81, CategoryScores{})
	if len(recs) != 1 || recs[0].Type != RecCrisis {
		t.Errorf("score > 0.8 alone must fire the crisis rule, got %+v", recs)
	}

	recs = Recommend(CrisisFlags{}, 0.8, CategoryScores{})
	if len(recs) != 0 {
		t.Errorf("0.8 exactly must not fire the crisis rule (strict >), got %+v", recs)
	}
}

func TestRecommendRuleThresholds(t *testing.T) {
	// Each rule's threshold is strict.
	if recs := Recommend(CrisisFlags{}, 0, CategoryScores{lexicon.Depression: 3}); len(recs) != 0 {
		t.Error("depression=3 must not fire professional_help")
	}
	if recs := Recommend(CrisisFlags{}, 0, CategoryScores{lexicon.Isolation: 2}); len(recs) != 0 {
		t.Error("isolation=2 must not fire community")
	}
	if recs := Recommend(CrisisFlags{}, 0, CategoryScores{lexicon.Coping: 2}); len(recs) != 0 {
		t.Error("coping=2 must not fire positive_reinforcement")
	}
	if recs := Recommend(CrisisFlags{}, 0, CategoryScores{lexicon.Coping: 3}); len(recs) != 1 || recs[0].Type != RecPositive {
		t.Error("coping=3 must fire positive_reinforcement")
	}
}
