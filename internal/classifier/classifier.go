// Package classifier resolves free-text chat messages to intents with ordered
// keyword rules.
package classifier

import (
	"regexp"
	"strings"

	"github.com/themobileprof/careportal-assistant/internal/conversation"
)

// Rule is one ordered keyword rule. With All set every keyword must occur,
// otherwise any one is enough. WholeWord keywords must stand alone; Substring
// keywords match anywhere, so "flu" hits "influenza"; the rest match at the
// start of a word, so "pain" also matches "painful".
type Rule struct {
	Intent    Intent
	Keywords  []string
	All       bool
	WholeWord bool
	Substring bool

	patterns []*regexp.Regexp
}

func (r *Rule) compile() {
	r.patterns = make([]*regexp.Regexp, 0, len(r.Keywords))
	for _, k := range r.Keywords {
		expr := `\b` + regexp.QuoteMeta(strings.ToLower(k))
		if r.Substring {
			expr = regexp.QuoteMeta(strings.ToLower(k))
		} else if r.WholeWord {
			expr += `\b`
		}
		r.patterns = append(r.patterns, regexp.MustCompile(expr))
	}
}

func (r *Rule) matches(text string) bool {
	if len(r.patterns) == 0 {
		return false
	}
	for _, p := range r.patterns {
		hit := p.MatchString(text)
		if r.All && !hit {
			return false
		}
		if !r.All && hit {
			return true
		}
	}
	return r.All
}

// Classifier is the local intent matcher. It holds no mutable state.
type Classifier struct {
	symptomRule     Rule
	greetingRule    Rule
	commandRules    []Rule
	spaceNormalizer *regexp.Regexp
}

// NewClassifier creates a matcher over the built-in keyword tables
func NewClassifier() *Classifier {
	return newClassifier(symptomKeywords, greetingKeywords, commandRules)
}

func newClassifier(symptoms, greetings []string, commands []Rule) *Classifier {
	c := &Classifier{
		spaceNormalizer: regexp.MustCompile(`\s+`),
		symptomRule:     Rule{Intent: IntentDescribeSymptoms, Keywords: symptoms, Substring: true},
		greetingRule:    Rule{Intent: IntentGreeting, Keywords: greetings, WholeWord: true},
		commandRules:    make([]Rule, len(commands)),
	}
	c.symptomRule.compile()
	c.greetingRule.compile()

	copy(c.commandRules, commands)
	for i := range c.commandRules {
		c.commandRules[i].compile()
	}
	return c
}

// Match determines the intent of text given the conversation state. The first
// rule to fire wins:
//  1. awaiting symptoms forces DescribeSymptoms for any text
//  2. symptom keywords (checked before greetings and commands)
//  3. greetings
//  4. command groups, in table order
//
// ok is false when nothing applies and the caller should ask the remote
// service instead.
func (c *Classifier) Match(text string, state conversation.State) (Intent, bool) {
	if state.AwaitingSymptoms {
		return IntentDescribeSymptoms, true
	}

	normalized := c.normalizeText(text)
	if normalized == "" {
		return IntentDefault, false
	}

	if c.symptomRule.matches(normalized) {
		return IntentDescribeSymptoms, true
	}

	if c.greetingRule.matches(normalized) {
		return IntentGreeting, true
	}

	for i := range c.commandRules {
		if c.commandRules[i].matches(normalized) {
			return c.commandRules[i].Intent, true
		}
	}

	return IntentDefault, false
}

// normalizeText preprocesses input text for matching
func (c *Classifier) normalizeText(input string) string {
	text := strings.ToLower(input)
	text = strings.TrimSpace(text)
	text = c.spaceNormalizer.ReplaceAllString(text, " ")
	text = strings.TrimRight(text, "!?.,;:")
	return text
}
