package nlu

import (
	"context"
	"regexp"
	"strings"
)

var (
	greetingRe = regexp.MustCompile(`\b(hey|hi|hello|tracy)\b`)
	bookingRe  = regexp.MustCompile(`\b(book|booking|parcel|package|delivery|courier|send|ship)\b`)
	homeRe     = regexp.MustCompile(`\b(dashboard|home)\b`)
	profileRe  = regexp.MustCompile(`\b(profile|account)\b`)
	pricingRe  = regexp.MustCompile(`\b(cost|price|rate|charge|fee)\b`)
	paymentRe  = regexp.MustCompile(`\b(pay|payment|checkout)\b`)
)

// OfflineResolver is a keyword heuristic that needs no network. It is
// the terminal link of the chain so the assistant stays useful when
// every remote provider is down.
type OfflineResolver struct{}

// NewOfflineResolver creates the heuristic resolver.
func NewOfflineResolver() *OfflineResolver { return &OfflineResolver{} }

func (r *OfflineResolver) Name() string { return "offline" }

// Resolve never fails; unmatched input degrades to the safe default.
func (r *OfflineResolver) Resolve(_ context.Context, req Request) (Result, error) {
	lower := strings.ToLower(req.UserText)

	switch {
	case bookingRe.MatchString(lower):
		return Result{
			Intent:     "startBooking",
			Action:     &Action{Type: "navigate", NavigateTo: "/booking"},
			Response:   "Great! Let's book your delivery.",
			Confidence: 0.95,
		}, nil

	case strings.Contains(lower, "track"):
		return Result{
			Intent:     "navigate",
			Action:     &Action{Type: "navigate", NavigateTo: "/tracking"},
			Response:   "Opening tracking page!",
			Confidence: 0.95,
		}, nil

	case homeRe.MatchString(lower):
		return Result{
			Intent:     "navigate",
			Action:     &Action{Type: "navigate", NavigateTo: "/"},
			Response:   "Going to dashboard!",
			Confidence: 0.95,
		}, nil

	case profileRe.MatchString(lower):
		return Result{
			Intent:     "navigate",
			Action:     &Action{Type: "navigate", NavigateTo: "/profile"},
			Response:   "Opening your profile!",
			Confidence: 0.95,
		}, nil

	case paymentRe.MatchString(lower):
		return Result{
			Intent:     "navigate",
			Action:     &Action{Type: "navigate", NavigateTo: "/payment"},
			Response:   "Opening payment page!",
			Confidence: 0.9,
		}, nil

	case pricingRe.MatchString(lower):
		return Result{
			Intent:     "help",
			Response:   "Rates depend on distance and speed. Documents start from PKR 150, parcels from PKR 250. Want to book?",
			Confidence: 0.9,
		}, nil

	case greetingRe.MatchString(lower):
		return Result{
			Intent:     "help",
			Response:   "Hi! I'm Tracy, your courier assistant. How can I help you today?",
			Confidence: 0.95,
		}, nil
	}

	return SafeDefault(), nil
}

var _ Resolver = (*OfflineResolver)(nil)
