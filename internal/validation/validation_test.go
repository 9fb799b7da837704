package validation

import (
	"testing"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"hello", 10, "hello"},
		{"  hello  ", 10, "hello"},
		{"hello world", 5, "hello"},
		{"hello\x00world", 20, "helloworld"},
	}

	for _, tc := range tests {
		result := SanitizeString(tc.input, tc.maxLen)
		if result != tc.expected {
			t.Errorf("SanitizeString(%q, %d) = %q, want %q", tc.input, tc.maxLen, result, tc.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	// Test valid input
	errors := Validate(
		Required("content", "mi feel alright today"),
		ValidLanguage("language", "patois"),
		ValidReportType("type", "gang"),
	)
	if len(errors) != 0 {
		t.Errorf("Expected no errors, got %v", errors)
	}

	// Test invalid input
	errors = Validate(
		Required("content", ""),
		ValidLanguage("language", "fr"),
		ValidReportType("type", "vandalism"),
	)
	if len(errors) != 3 {
		t.Errorf("Expected 3 errors, got %d", len(errors))
	}
}

func TestValidLanguage(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"en", true},
		{"patois", true},
		{"", true}, // empty means sniff

		{"fr", false},
		{"jamaican", false},
	}

	for _, tc := range tests {
		err := ValidLanguage("language", tc.value)()
		valid := err == nil
		if valid != tc.valid {
			t.Errorf("ValidLanguage(%q) valid=%v, want %v", tc.value, valid, tc.valid)
		}
	}
}

func TestValidReportType(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"murder", true},
		{"domestic", true},
		{"other", true},
		{"", true}, // Use Required for required fields

		{"vandalism", false},
		{"MURDER", false},
	}

	for _, tc := range tests {
		err := ValidReportType("type", tc.value)()
		valid := err == nil
		if valid != tc.valid {
			t.Errorf("ValidReportType(%q) valid=%v, want %v", tc.value, valid, tc.valid)
		}
	}
}

func TestMaxLength(t *testing.T) {
	// Under limit
	err := MaxLength("field", "hello", 10)()
	if err != nil {
		t.Error("Expected no error for string under limit")
	}

	// At limit
	err = MaxLength("field", "hello", 5)()
	if err != nil {
		t.Error("Expected no error for string at limit")
	}

	// Over limit
	err = MaxLength("field", "hello world", 5)()
	if err == nil {
		t.Error("Expected error for string over limit")
	}
}
