// Package specialist recommends a medical specialty for free-text symptom
// descriptions using an ordered keyword table.
package specialist

import "strings"

// Classifier maps symptom text to a specialty. It is safe for concurrent use;
// the rule table is copied on construction and never changes afterwards.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier over rules. A nil or empty slice selects
// DefaultRules.
func NewClassifier(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules
	}

	owned := make([]Rule, 0, len(rules))
	for _, r := range rules {
		keyword := strings.ToLower(strings.TrimSpace(r.Keyword))
		if keyword == "" || r.Specialty == "" {
			continue
		}
		owned = append(owned, Rule{Keyword: keyword, Specialty: r.Specialty})
	}

	return &Classifier{rules: owned}
}

// Classify returns the specialty of the first rule whose keyword occurs in
// text. ok is false when nothing matches; callers should ask the user for more
// detail rather than guess.
func (c *Classifier) Classify(text string) (specialty string, ok bool) {
	lower := strings.ToLower(text)
	for _, r := range c.rules {
		if strings.Contains(lower, r.Keyword) {
			return r.Specialty, true
		}
	}
	return "", false
}

// Rules returns a copy of the table in precedence order
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Specialties lists each distinct specialty once, in first-appearance order
func (c *Classifier) Specialties() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range c.rules {
		if !seen[r.Specialty] {
			seen[r.Specialty] = true
			out = append(out, r.Specialty)
		}
	}
	return out
}
