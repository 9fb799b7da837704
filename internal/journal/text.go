package journal

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// readingSpeedWPM is the assumed average reading speed.
const readingSpeedWPM = 200

// DefaultKeywordLimit caps keyword suggestions per entry.
const DefaultKeywordLimit = 10

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadingTime estimates reading time in whole minutes, never less than one.
func ReadingTime(wordCount int) int {
	minutes := int(math.Round(float64(wordCount) / readingSpeedWPM))
	if minutes < 1 {
		return 1
	}
	return minutes
}

var keywordRegex = regexp.MustCompile(`\b[a-z]{4,}\b`)

// stopWords are excluded from keyword suggestions.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "were": {},
	"been": {}, "be": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "can": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "i": {}, "you": {}, "he": {},
	"she": {}, "it": {}, "we": {}, "they": {}, "my": {}, "your": {},
}

// ExtractKeywords suggests tags by word frequency. Words shorter than four
// letters and stop words are skipped; ties keep first-seen order so the
// output is deterministic.
func ExtractKeywords(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultKeywordLimit
	}

	words := keywordRegex.FindAllString(strings.ToLower(text), -1)
	freq := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, word := range words {
		if _, skip := stopWords[word]; skip {
			continue
		}
		if _, seen := freq[word]; !seen {
			firstSeen[word] = i
		}
		freq[word]++
	}

	keywords := make([]string, 0, len(freq))
	for word := range freq {
		keywords = append(keywords, word)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if freq[keywords[i]] != freq[keywords[j]] {
			return freq[keywords[i]] > freq[keywords[j]]
		}
		return firstSeen[keywords[i]] < firstSeen[keywords[j]]
	})

	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords
}
