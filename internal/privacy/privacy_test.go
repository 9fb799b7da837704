package privacy

import (
	"strings"
	"testing"
)

func TestScrubPII(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"phone dashes", "call 876-555-1234 tonight", "call [PHONE] tonight"},
		{"phone dots", "call 876.555.1234", "call [PHONE]"},
		{"email", "reach me at tips@example.com please", "reach me at [EMAIL] please"},
		{"trn", "his TRN is 123456789", "his TRN is [ID]"},
		{"clean text untouched", "a fight near the market", "a fight near the market"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ScrubPII(tc.in); got != tc.want {
				t.Errorf("ScrubPII(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestScrubPIIPrefersPhoneOverID(t *testing.T) {
	got := ScrubPII("8765551234")
	if strings.Contains(got, "[ID]") {
		t.Errorf("10-digit number must scrub as phone, not ID: %q", got)
	}
}

func TestSanitizeLocation(t *testing.T) {
	cases := []struct{ in, want string }{
		{"12 Half Way Tree Road", "Half Way Tree Road"},
		{"45B Orange Street, Kingston", "Orange Street, Kingston"},
		{"Trench Town", "Trench Town"},
	}
	for _, tc := range cases {
		if got := SanitizeLocation(tc.in); got != tc.want {
			t.Errorf("SanitizeLocation(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
