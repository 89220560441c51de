// Package moderation flags user messages that should redirect or end an
// interview: profanity, harassment, spam and degenerate one-character input.
package moderation

import (
	"regexp"
	"strings"
)

var profanityTerms = []string{
	"fuck", "shit", "bitch", "ass", "damn", "hell", "stupid ai", "dumb ai", "idiot",
}

var spamTerms = []string{
	"spam", "buy now", "click here", "win prize",
}

var harassmentTerms = []string{
	"hate you", "kill", "threat", "attack",
}

var (
	profanityPattern = compileTerms(profanityTerms, harassmentTerms)
	spamPattern      = compileTerms(spamTerms)
	redirectPattern  = compileTerms(profanityTerms, harassmentTerms, spamTerms)
)

// compileTerms builds a single case-insensitive pattern matching any term on
// word boundaries, so "hell" does not fire on "hello".
func compileTerms(lists ...[]string) *regexp.Regexp {
	var quoted []string
	for _, list := range lists {
		for _, term := range list {
			quoted = append(quoted, regexp.QuoteMeta(term))
		}
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// Flags is the classification result for one message.
type Flags struct {
	Inappropriate    bool `json:"is_inappropriate"`
	Spam             bool `json:"is_spam"`
	TooShort         bool `json:"is_too_short"`
	NeedsRedirection bool `json:"needs_redirection"`
}

// Classify inspects a message. Pure and deterministic. TooShort is
// informational only and never contributes to NeedsRedirection.
func Classify(text string) Flags {
	return Flags{
		Inappropriate:    profanityPattern.MatchString(text),
		Spam:             spamPattern.MatchString(text),
		TooShort:         len(strings.TrimSpace(text)) <= 2,
		NeedsRedirection: redirectPattern.MatchString(text),
	}
}
