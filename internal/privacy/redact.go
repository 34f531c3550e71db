// Package privacy strips personal data from chat text before it is logged.
package privacy

import (
	"regexp"
	"unicode/utf8"
)

// maxLogLength bounds sanitized text in log lines, in runes
const maxLogLength = 200

type redaction struct {
	pattern     *regexp.Regexp
	replacement string
}

// redactions run in order; card and SSN numbers go before the looser phone
// pattern can split them
var redactions = []redaction{
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[EMAIL]"},
	{regexp.MustCompile(`\b\d{4}[-\s]\d{4}[-\s]\d{4}[-\s]\d{4}\b`), "[CARD]"},
	{regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), "[SSN]"},
	{regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]\d{4}|\b\d{3}[-.\s]\d{4}\b`), "[PHONE]"},
	{regexp.MustCompile(`(?i)\b(mrn|medical record|patient id)[-:#\s]*[A-Z0-9]{6,}\b`), "[MEDICAL_ID]"},
}

// Redact replaces emails, card numbers, SSNs, phone numbers and medical record
// numbers with placeholders
func Redact(text string) string {
	for _, r := range redactions {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	return text
}

// SanitizeForLogging redacts text and truncates it for a log line
func SanitizeForLogging(text string) string {
	redacted := Redact(text)
	if utf8.RuneCountInString(redacted) <= maxLogLength {
		return redacted
	}
	runes := []rune(redacted)
	return string(runes[:maxLogLength-3]) + "..."
}

// ContainsPII reports whether any redaction pattern matches text
func ContainsPII(text string) bool {
	for _, r := range redactions {
		if r.pattern.MatchString(text) {
			return true
		}
	}
	return false
}
