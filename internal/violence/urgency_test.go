package violence

import "testing"

func TestMessageUrgency(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"a calm description of the town square", 0.0},
		{"somebody has a gun", 0.5},
		{"it is happening right now", 0.3},
		{"please send help", 0.2},
		{"gun violence happening now, send help urgent", 1.0}, // 0.5+0.3+0.2 clamped
	}
	for _, tc := range cases {
		if got := MessageUrgency(tc.text); got != tc.want {
			t.Errorf("MessageUrgency(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestReportUrgency(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"someone was rude to me last week", 0.0},
		{"it happened today", 0.4},
		{"a man with a knife", 0.3},
		{"there was a shooting", 0.4},
		{"several people involved", 0.2},
		{"shooting happening today with a gun, multiple victims", 1.0}, // 0.4+0.3+0.4+0.2 clamped
	}
	for _, tc := range cases {
		if got := ReportUrgency(tc.text); got != tc.want {
			t.Errorf("ReportUrgency(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestFormulasAreDistinct(t *testing.T) {
	// "kill" is a violence keyword for messages but a severity keyword for
	// reports; the two calibrations must keep diverging on the same text.
	text := "he said he would kill him"
	if MessageUrgency(text) != 0.5 {
		t.Errorf("MessageUrgency = %v, want 0.5", MessageUrgency(text))
	}
	if ReportUrgency(text) != 0.4 {
		t.Errorf("ReportUrgency = %v, want 0.4", ReportUrgency(text))
	}
}

func TestShouldEscalate(t *testing.T) {
	cases := []struct {
		name       string
		urgency    float64
		reportType ReportType
		text       string
		want       bool
	}{
		{"high urgency", 0.8, TypeOther, "something", true},
		{"below threshold", 0.79, TypeOther, "something", false},
		{"murder at half", 0.5, TypeMurder, "something", true},
		{"planned violence at half", 0.5, TypePlannedViolence, "something", true},
		{"gang at half", 0.5, TypeGang, "something", false},
		{"weapon plus immediacy short-circuit", 0.0, TypeOther, "a gun fight happening now", true},
		{"weapon without immediacy", 0.0, TypeOther, "someone owns a machete", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldEscalate(tc.urgency, tc.reportType, tc.text); got != tc.want {
				t.Errorf("ShouldEscalate = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGangReportNearSchoolScenario(t *testing.T) {
	text := "gun fight happening now near the school"

	// Weapon + immediacy short-circuits escalation regardless of score.
	if !ShouldEscalate(0.0, TypeGang, text) {
		t.Error("expected escalation from weapon+immediacy rule")
	}

	urgency := ReportUrgency(text)
	agencies := RouteAgencies(urgency, TypeGang, text)

	if !containsAgency(agencies, AgencyCommunity) {
		t.Errorf("gang report must route to community intervention, got %v", agencies)
	}
	if !containsAgency(agencies, AgencyYouthServices) {
		t.Errorf("school marker must route to youth services, got %v", agencies)
	}
}

func TestRouteAgenciesNeverEmpty(t *testing.T) {
	agencies := RouteAgencies(0.0, TypeOther, "nothing notable here")
	if len(agencies) != 1 || agencies[0] != AgencyCommunity {
		t.Errorf("expected default PMI routing, got %v", agencies)
	}
}

func TestRouteAgenciesDomestic(t *testing.T) {
	// Low urgency: crisis centre only, no police.
	agencies := RouteAgencies(0.2, TypeDomestic, "")
	if !containsAgency(agencies, AgencyWomensCrisis) {
		t.Errorf("domestic report must route to the crisis centre, got %v", agencies)
	}
	if containsAgency(agencies, AgencyPolice) {
		t.Errorf("low-urgency domestic report must not route to police, got %v", agencies)
	}

	// High urgency adds police.
	agencies = RouteAgencies(0.5, TypeDomestic, "")
	if !containsAgency(agencies, AgencyPolice) {
		t.Errorf("urgency 0.5 domestic report must add police, got %v", agencies)
	}
}

func TestRouteAgenciesDeduplicates(t *testing.T) {
	// Murder type and urgency >= 0.6 both add police; it must appear once.
	agencies := RouteAgencies(0.9, TypeMurder, "")
	seen := 0
	for _, a := range agencies {
		if a == AgencyPolice {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("police should appear exactly once, got %v", agencies)
	}
}

func TestRouteAgenciesMidBandCommunity(t *testing.T) {
	if !containsAgency(RouteAgencies(0.3, TypeOther, ""), AgencyCommunity) {
		t.Error("urgency 0.3 must route to community intervention")
	}
	if containsAgency(RouteAgencies(0.7, TypeOther, ""), AgencyCommunity) {
		t.Error("urgency 0.7 is outside the community mid-band")
	}
}

func containsAgency(agencies []Agency, want Agency) bool {
	for _, a := range agencies {
		if a == want {
			return true
		}
	}
	return false
}
