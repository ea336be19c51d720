// Package utterance cleans raw recognized speech and classifies short replies.
//
// Normalize strips the optional wake phrase and collapses the text into a
// canonical lowercase form. The predicate helpers test a normalized utterance
// against fixed keyword sets; they are pure and return false on empty input.
// A false negative is harmless: the dialogue engine re-prompts.
package utterance

import (
	"regexp"
	"strings"
)

// WakePhrase is the optional prefix users may say before a command.
const WakePhrase = "hey tracy"

var (
	wakeRe        = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(WakePhrase))
	whitespaceRe  = regexp.MustCompile(`\s+`)
	affirmativeRe = regexp.MustCompile(`\b(yes|yeah|yep|correct|right|confirm|ok|okay)\b`)
	negativeRe    = regexp.MustCompile(`\b(no|nope|wrong|incorrect|cancel)\b`)
	skipRe        = regexp.MustCompile(`\b(skip|leave it|not now|none)\b`)
	keepRe        = regexp.MustCompile(`\b(keep|leave|same)\b`)
	changeRe      = regexp.MustCompile(`\b(change|update|replace|edit)\b`)
)

// Normalize lowercases, trims, collapses whitespace and strips the wake phrase.
func Normalize(raw string) string {
	text := wakeRe.ReplaceAllString(raw, "")
	text = strings.ToLower(strings.TrimSpace(text))
	return whitespaceRe.ReplaceAllString(text, " ")
}

// StripWake removes the wake phrase but preserves the original casing,
// for places that need the verbatim transcript (field values).
func StripWake(raw string) string {
	return strings.TrimSpace(wakeRe.ReplaceAllString(raw, ""))
}

// IsAffirmative reports whether the text is a yes-like reply.
func IsAffirmative(text string) bool {
	return text != "" && affirmativeRe.MatchString(text)
}

// IsNegative reports whether the text is a no-like reply.
func IsNegative(text string) bool {
	return text != "" && negativeRe.MatchString(text)
}

// IsSkip reports whether the text asks to skip the current field.
func IsSkip(text string) bool {
	return text != "" && skipRe.MatchString(text)
}

// IsKeep reports whether the text asks to keep an existing value.
func IsKeep(text string) bool {
	return text != "" && keepRe.MatchString(text)
}

// IsChange reports whether the text asks to change an existing value.
func IsChange(text string) bool {
	return text != "" && changeRe.MatchString(text)
}
