package privacy

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "email redaction",
			input:    "My email is john.doe@example.com",
			expected: "My email is [EMAIL]",
		},
		{
			name:     "phone redaction",
			input:    "Call me at 555-123-4567",
			expected: "Call me at [PHONE]",
		},
		{
			name:     "SSN redaction",
			input:    "My SSN is 123-45-6789",
			expected: "My SSN is [SSN]",
		},
		{
			name:     "credit card redaction",
			input:    "Card: 4532-1234-5678-9010",
			expected: "Card: [CARD]",
		},
		{
			name:     "medical record number",
			input:    "my mrn: AB123456 please",
			expected: "my [MEDICAL_ID] please",
		},
		{
			name:     "multiple PII types",
			input:    "Email: test@test.com, Phone: 555-1234",
			expected: "Email: [EMAIL], Phone: [PHONE]",
		},
		{
			name:     "no PII",
			input:    "I have chest pain and need a doctor",
			expected: "I have chest pain and need a doctor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Redact(tt.input); got != tt.expected {
				t.Errorf("Redact() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSanitizeForLogging(t *testing.T) {
	long := strings.Repeat("é", 300)
	got := SanitizeForLogging(long)

	if n := utf8.RuneCountInString(got); n != maxLogLength {
		t.Errorf("sanitized length = %d runes, want %d", n, maxLogLength)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected truncation marker, got %q", got[len(got)-10:])
	}
	if !utf8.ValidString(got) {
		t.Error("truncation split a rune")
	}

	if got := SanitizeForLogging("track order for a@b.io"); got != "track order for [EMAIL]" {
		t.Errorf("SanitizeForLogging() = %q", got)
	}
}

func TestContainsPII(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"reach me on +1-555-123-4567", true},
		{"jane@example.org", true},
		{"patient id 99887766", true},
		{"book an appointment", false},
		{"I am 32 weeks along", false},
	}

	for _, tt := range tests {
		if got := ContainsPII(tt.input); got != tt.want {
			t.Errorf("ContainsPII(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
