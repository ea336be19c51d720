// Package extract turns free-form utterances into typed field values.
//
// Extraction is best-effort and never fails: unparseable input degrades to
// the verbatim trimmed text, because the dialogue engine always asks the user
// to confirm a value before committing it. The zero-value Extractor is not
// usable; construct one with New.
package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Field identifiers with type-specific extraction rules.
const (
	FieldSenderPhone   = "senderPhone"
	FieldReceiverPhone = "receiverPhone"
	FieldWeight        = "weight"
	FieldPickupDate    = "pickupDate"
	FieldPickupTime    = "pickupTime"
	FieldPickupCity    = "pickupCity"
	FieldDropoffCity   = "dropoffCity"
)

// DefaultMinPhoneDigits is the minimum digit count for a scrubbed phone value.
const DefaultMinPhoneDigits = 10

// DefaultCities is the gazetteer of known cities, matched case-insensitively.
var DefaultCities = []string{
	"Karachi", "Lahore", "Islamabad", "Rawalpindi",
	"Faisalabad", "Multan", "Peshawar", "Quetta",
}

var (
	digitsRe = regexp.MustCompile(`\D+`)
	numberRe = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	isoRe    = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	slashRe  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	ampmRe   = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	hhmmRe   = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
)

// freeTextDateLayouts are tried in order for natural-language dates.
var freeTextDateLayouts = []string{
	"2 January 2006",
	"January 2 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
}

// Extractor converts raw utterances into typed field values.
type Extractor struct {
	minPhoneDigits int
	cities         []string
	now            func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMinPhoneDigits sets the minimum digit count for phone acceptance.
func WithMinPhoneDigits(n int) Option {
	return func(e *Extractor) { e.minPhoneDigits = n }
}

// WithCities replaces the default city gazetteer.
func WithCities(cities []string) Option {
	return func(e *Extractor) { e.cities = cities }
}

// WithClock overrides the time source, used for deterministic today/tomorrow.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// New creates an Extractor with defaults suitable for the booking flow.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		minPhoneDigits: DefaultMinPhoneDigits,
		cities:         DefaultCities,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the best-effort typed value for the field, or "" when the
// input is empty. It never returns an error; unparseable input comes back
// verbatim so the caller can offer it for confirmation.
func (e *Extractor) Extract(fieldID, raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	switch fieldID {
	case FieldSenderPhone, FieldReceiverPhone:
		return e.extractPhone(text)
	case FieldWeight:
		if m := numberRe.FindString(text); m != "" {
			return m
		}
		return text
	case FieldPickupDate:
		if iso := e.extractDate(text); iso != "" {
			return iso
		}
		return text
	case FieldPickupTime:
		if hhmm := extractTime(text); hhmm != "" {
			return hhmm
		}
		return text
	case FieldPickupCity, FieldDropoffCity:
		if city := e.extractCity(text); city != "" {
			return city
		}
		return text
	default:
		return text
	}
}

// extractPhone strips non-digits; short results fall back to the raw text so
// the engine can still offer them for confirmation.
func (e *Extractor) extractPhone(text string) string {
	digits := digitsRe.ReplaceAllString(text, "")
	if len(digits) >= e.minPhoneDigits {
		return digits
	}
	return text
}

// extractDate recognizes today/tomorrow, ISO, DD/MM/YYYY and a few
// free-text layouts. Returns "" when nothing matches.
func (e *Extractor) extractDate(text string) string {
	v := strings.ToLower(strings.TrimSpace(text))

	switch v {
	case "today":
		return e.now().Format("2006-01-02")
	case "tomorrow":
		return e.now().AddDate(0, 0, 1).Format("2006-01-02")
	}

	if m := isoRe.FindString(v); m != "" {
		return m
	}

	// DD/MM/YYYY
	if m := slashRe.FindStringSubmatch(v); m != nil {
		return fmt.Sprintf("%s-%02d-%02d", m[3], atoi(m[2]), atoi(m[1]))
	}

	// Free-text dates like "23 december 2025". Year-less layouts are too
	// ambiguous to guess; the engine confirms the verbatim text instead.
	for _, layout := range freeTextDateLayouts {
		if d, err := time.Parse(layout, titleCase(v)); err == nil {
			return d.Format("2006-01-02")
		}
	}

	return ""
}

// extractTime recognizes "2 pm", "2:30pm" and bare "14:30" forms,
// converting 12-hour notation to 24-hour HH:MM. Returns "" when no match.
func extractTime(text string) string {
	v := strings.ToLower(strings.TrimSpace(text))

	if m := ampmRe.FindStringSubmatch(v); m != nil {
		hh := atoi(m[1])
		mm := 0
		if m[2] != "" {
			mm = atoi(m[2])
		}
		switch m[3] {
		case "pm":
			if hh < 12 {
				hh += 12
			}
		case "am":
			if hh == 12 {
				hh = 0
			}
		}
		return fmt.Sprintf("%02d:%02d", clamp(hh, 0, 23), clamp(mm, 0, 59))
	}

	if m := hhmmRe.FindStringSubmatch(v); m != nil {
		return fmt.Sprintf("%02d:%02d", clamp(atoi(m[1]), 0, 23), clamp(atoi(m[2]), 0, 59))
	}

	return ""
}

// extractCity matches the gazetteer by case-insensitive substring.
func (e *Extractor) extractCity(text string) string {
	lower := strings.ToLower(text)
	for _, city := range e.cities {
		if strings.Contains(lower, strings.ToLower(city)) {
			return city
		}
	}
	return ""
}

// DD/MM/YYYY month/day values arrive via regex so they are digits only.
func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// titleCase uppercases the first letter of each word so month names match
// Go's reference layouts.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 && w[0] >= 'a' && w[0] <= 'z' {
			words[i] = string(w[0]-'a'+'A') + w[1:]
		}
	}
	return strings.Join(words, " ")
}
