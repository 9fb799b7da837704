package lexicon

import "strings"

// Patois mood-override markers. When the input language is Patois these
// take precedence over the classifier-derived mood: they encode dialect
// idioms the base sentiment model misreads.
var (
	PatoisPositiveMarkers = []string{"blessed", "irie", "good vibes", "gwaan good"}
	PatoisNegativeMarkers = []string{"mash up", "bruk dung", "bawl", "sad bad"}
	PatoisAngerMarkers    = []string{"vex", "angry", "mad"}
)

// Violence / urgency keyword sets shared by the two urgency formulas and
// the routing rules.
var (
	WeaponKeywords         = []string{"gun", "knife", "weapon", "machete", "firearm"}
	ViolenceKeywords       = []string{"murder", "kill", "gun", "weapon", "threat", "violence"}
	ImmediacyKeywords      = []string{"now", "right now", "happening", "currently", "today", "tonight"}
	SeverityKeywords       = []string{"murder", "kill", "death", "shooting", "stabbing"}
	MultipleVictimKeywords = []string{"multiple", "many", "several", "group"}
	HelpDangerKeywords     = []string{"help", "emergency", "urgent", "danger"}
	YouthKeywords          = []string{"youth", "child", "student", "school"}
)

// patoisDetectMarkers are single tokens common in written Patois, used by
// IsPatois for language sniffing when a client does not declare a language.
var patoisDetectMarkers = map[string]struct{}{
	"mi": {}, "yuh": {}, "dem": {}, "inna": {}, "deh": {}, "di": {},
	"fi": {}, "nuh": {}, "weh": {}, "wah": {}, "mek": {}, "tek": {},
	"suh": {}, "pon": {}, "bout": {}, "ting": {}, "gwaan": {}, "dun": {},
	"nah": {}, "yah": {}, "ya": {}, "cyaa": {},
}

// IsPatois reports whether the text reads as Jamaican Patois: 20% or more
// of its whitespace-separated words are known Patois markers.
func IsPatois(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return false
	}
	hits := 0
	for _, w := range words {
		if _, ok := patoisDetectMarkers[w]; ok {
			hits++
		}
	}
	return float64(hits)/float64(len(words)) >= 0.2
}

// ContainsAny reports whether any keyword occurs as a substring of text.
// Text is expected to already be lowercased.
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
