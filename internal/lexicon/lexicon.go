// Package lexicon holds the bilingual (English / Jamaican Patois) trigger
// phrase tables used by the triage and violence-report engines.
//
// The tables are process-wide static configuration: built once at init,
// never mutated afterwards, safe for unlimited concurrent readers. Phrases
// are lowercase and matched as substrings of normalized input, so
// multi-word phrases like "kill myself" match anywhere in the text.
package lexicon

// Category identifies one graded risk dimension. Coping is the only
// mitigating category: hits there reduce the composite score.
type Category string

const (
	Depression Category = "depression"
	Anxiety    Category = "anxiety"
	Anger      Category = "anger"
	Trauma     Category = "trauma"
	Isolation  Category = "isolation"
	Coping     Category = "coping"
)

// Categories lists every graded category in stable order.
var Categories = []Category{Depression, Anxiety, Anger, Trauma, Isolation, Coping}

// Language selects which phrase sets apply to an input.
type Language string

const (
	LangEnglish Language = "en"
	LangPatois  Language = "patois"
)

// Supported reports whether the language tag is one of the two we accept.
func Supported(lang Language) bool {
	return lang == LangEnglish || lang == LangPatois
}

// phraseSet pairs the standard-English phrases with their Patois
// counterparts for one category or crisis flag.
type phraseSet struct {
	english []string
	patois  []string
}

var categoryPhrases = map[Category]phraseSet{
	Depression: {
		english: []string{
			"hopeless", "worthless", "empty", "numb", "tired of life",
			"no energy", "can't get out of bed", "everything is dark",
			"lost interest", "don't care anymore", "exhausted", "drained",
		},
		patois: []string{
			"mi feel empty", "nutten nuh mek sense", "mi tired a life",
			"cyaan manage", "everything dark", "life hard", "mi give up",
		},
	},
	Anxiety: {
		english: []string{
			"anxious", "worried", "panic", "scared", "overwhelmed",
			"can't breathe", "racing thoughts", "terrified", "nervous",
			"fear", "stressed", "tense", "on edge",
		},
		patois: []string{
			"mi frighten", "mi scared", "heart a beat fast",
			"cyaan calm down", "worried bad", "fret up",
		},
	},
	Anger: {
		english: []string{
			"angry", "furious", "hate", "rage", "violent thoughts",
			"want to hurt", "destroy", "revenge", "mad", "pissed",
		},
		patois: []string{
			"mi vex", "mi mad", "want fi buss dem", "mi angry bad",
			"blood a boil", "ready fi war",
		},
	},
	Trauma: {
		english: []string{
			"flashback", "nightmare", "can't forget", "haunted",
			"violated", "abused", "attacked", "traumatized", "ptsd",
		},
		patois: nil,
	},
	Isolation: {
		english: []string{
			"alone", "lonely", "nobody cares", "no friends", "isolated",
			"abandoned", "rejected", "left out", "by myself",
		},
		patois: []string{
			"mi one", "nobaddy nuh care", "mi all alone", "everybody lef mi",
		},
	},
	Coping: {
		english: []string{
			"grateful", "thankful", "hope", "better", "improving",
			"trying", "working on", "therapy", "support", "helped",
			"blessed", "proud", "achieved", "accomplished",
		},
		patois: []string{
			"blessed", "irie", "give thanks", "a try", "better dan before",
			"god a help mi", "family deh yah", "friends support mi",
		},
	},
}

// Crisis flag phrase sets. These drive the binary suicide/self-harm flags
// and are deliberately separate from the graded categories.
var suicidePhrases = phraseSet{
	english: []string{
		"kill myself", "end it all", "don't want to live", "suicide",
		"no reason to live", "better off dead", "end my life", "can't go on",
	},
	patois: []string{
		"mi cyaan tek it", "mi done", "life nuh worth it",
		"mi waan dead", "kill miself", "end it now",
	},
}

var selfHarmPhrases = phraseSet{
	english: []string{
		"cut myself", "hurt myself", "self harm", "harm myself",
		"want to hurt", "cutting", "burning myself",
	},
	patois: []string{
		"hurt miself", "cut miself", "harm miself",
	},
}

// forLanguage returns the English set, plus the Patois set when the input
// language is Patois. The returned slice must not be mutated.
func (p phraseSet) forLanguage(lang Language) []string {
	if lang != LangPatois || len(p.patois) == 0 {
		return p.english
	}
	combined := make([]string, 0, len(p.english)+len(p.patois))
	combined = append(combined, p.english...)
	combined = append(combined, p.patois...)
	return combined
}

// PhrasesFor returns the trigger phrases for a graded category in the given
// language. A missing category is a programming error and panics.
func PhrasesFor(cat Category, lang Language) []string {
	set, ok := categoryPhrases[cat]
	if !ok {
		panic("lexicon: unknown category " + string(cat))
	}
	return set.forLanguage(lang)
}

// SuicidePhrases returns the suicide crisis phrases for the given language.
func SuicidePhrases(lang Language) []string {
	return suicidePhrases.forLanguage(lang)
}

// SelfHarmPhrases returns the self-harm crisis phrases for the given language.
func SelfHarmPhrases(lang Language) []string {
	return selfHarmPhrases.forLanguage(lang)
}
