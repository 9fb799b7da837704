// Package privacy scrubs personally identifiable information from report
// text and location strings before persistence. Violence reports may be
// anonymous; what the reporter typed must not deanonymize them.
package privacy

import (
	"regexp"
	"strings"
)

var (
	phoneRegex = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	// Jamaican TRN and similar 9-digit identifiers.
	idRegex = regexp.MustCompile(`\b\d{9}\b`)

	houseNumberRegex = regexp.MustCompile(`\b\d+[A-Za-z]?\b`)
	spaceRegex       = regexp.MustCompile(`\s+`)
)

// ScrubPII replaces phone numbers, email addresses and ID numbers with
// placeholders. Phone numbers are scrubbed before ID numbers so a
// 10-digit phone is not half-matched as a TRN.
func ScrubPII(text string) string {
	text = phoneRegex.ReplaceAllString(text, "[PHONE]")
	text = emailRegex.ReplaceAllString(text, "[EMAIL]")
	text = idRegex.ReplaceAllString(text, "[ID]")
	return text
}

// SanitizeLocation strips house numbers from a location string, keeping
// the general area.
func SanitizeLocation(location string) string {
	sanitized := houseNumberRegex.ReplaceAllString(location, "")
	return strings.TrimSpace(spaceRegex.ReplaceAllString(sanitized, " "))
}
