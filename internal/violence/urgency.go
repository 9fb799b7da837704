package violence

import (
	"strings"

	"github.com/nmorris876/yaadmind/internal/lexicon"
)

// Two urgency calibrations exist and are deliberately kept separate:
// MessageUrgency was tuned for free-form chat messages flagged as
// violent, ReportUrgency for the dedicated report-submission path. They
// were calibrated independently and must not be unified.

// MessageUrgency scores a violence mention inside an ordinary message.
// +0.5 weapon/violence, +0.3 immediacy, +0.2 help/danger; clamped to [0,1].
func MessageUrgency(text string) float64 {
	lower := strings.ToLower(text)

	score := 0.0
	if lexicon.ContainsAny(lower, lexicon.ViolenceKeywords) {
		score += 0.5
	}
	if lexicon.ContainsAny(lower, lexicon.ImmediacyKeywords) {
		score += 0.3
	}
	if lexicon.ContainsAny(lower, lexicon.HelpDangerKeywords) {
		score += 0.2
	}
	return clamp(score)
}

// ReportUrgency scores a dedicated violence report.
// +0.4 immediacy, +0.3 weapon, +0.4 severity, +0.2 multiple victims;
// clamped to [0,1].
func ReportUrgency(text string) float64 {
	lower := strings.ToLower(text)

	score := 0.0
	if lexicon.ContainsAny(lower, lexicon.ImmediacyKeywords) {
		score += 0.4
	}
	if lexicon.ContainsAny(lower, lexicon.WeaponKeywords) {
		score += 0.3
	}
	if lexicon.ContainsAny(lower, lexicon.SeverityKeywords) {
		score += 0.4
	}
	if lexicon.ContainsAny(lower, lexicon.MultipleVictimKeywords) {
		score += 0.2
	}
	return clamp(score)
}

// ShouldEscalate decides immediate escalation: urgency at or above 0.8;
// murder/planned violence at or above 0.5; or a weapon named alongside an
// immediate timeframe, regardless of the numeric score.
func ShouldEscalate(urgency float64, reportType ReportType, text string) bool {
	if urgency >= 0.8 {
		return true
	}
	if (reportType == TypeMurder || reportType == TypePlannedViolence) && urgency >= 0.5 {
		return true
	}

	lower := strings.ToLower(text)
	hasWeapon := lexicon.ContainsAny(lower, lexicon.WeaponKeywords)
	hasImmediate := lexicon.ContainsAny(lower, lexicon.ImmediacyKeywords)
	return hasWeapon && hasImmediate
}

// RouteAgencies maps a report's signals to the ordered, duplicate-free
// set of agencies that should receive it. Never returns an empty set: the
// community-intervention agency is the default recipient.
func RouteAgencies(urgency float64, reportType ReportType, text string) []Agency {
	var agencies []Agency
	add := func(a Agency) {
		for _, existing := range agencies {
			if existing == a {
				return
			}
		}
		agencies = append(agencies, a)
	}

	if urgency >= 0.6 || reportType == TypeMurder || reportType == TypeFirearms || reportType == TypePlannedViolence {
		add(AgencyPolice)
	}

	if reportType == TypeGang || reportType == TypeCommunityViolence || (urgency >= 0.3 && urgency < 0.7) {
		add(AgencyCommunity)
	}

	if reportType == TypeDomestic {
		add(AgencyWomensCrisis)
		if urgency >= 0.5 {
			add(AgencyPolice)
		}
	}

	if lexicon.ContainsAny(strings.ToLower(text), lexicon.YouthKeywords) {
		add(AgencyYouthServices)
	}

	if len(agencies) == 0 {
		agencies = []Agency{AgencyCommunity}
	}
	return agencies
}

func clamp(score float64) float64 {
	if score > 1.0 {
		return 1.0
	}
	if score < 0.0 {
		return 0.0
	}
	return score
}
