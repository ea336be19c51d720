package intent

import (
	"regexp"
	"strings"

	"github.com/acetransit/voicekit/pkg/booking"
	"github.com/acetransit/voicekit/pkg/utterance"
)

// Known routes the assistant can navigate to.
const (
	RouteHome    = "/"
	RouteBooking = "/booking"
	RouteTrack   = "/tracking"
	RouteProfile = "/profile"
	RoutePayment = "/payment"
	RouteChat    = "/chat"
	RouteLogin   = "/auth/login"
	RouteSignup  = "/auth/signup"
)

var (
	stopRe         = regexp.MustCompile(`(^|\b)(stop|cancel|nevermind|never mind|quiet)\b`)
	helpRe         = regexp.MustCompile(`(^|\b)(help|what can you do|commands)\b`)
	startBookingRe = regexp.MustCompile(`\b(start booking|book a delivery|place an order|create a booking)\b`)
	nextRe         = regexp.MustCompile(`\b(next|continue)\b`)
	backRe         = regexp.MustCompile(`\b(back|previous|go back)\b`)
	submitRe       = regexp.MustCompile(`\b(submit|confirm booking|finish booking|proceed to payment)\b`)
	payRe          = regexp.MustCompile(`\b(pay|pay now|confirm payment|make payment|complete payment)\b`)
	goToRe         = regexp.MustCompile(`\b(go to|open|navigate to)\s+([a-z\-/ ]+)\b`)

	// DetectLocationRe also serves the dialogue engine, which accepts this
	// phrasing while asking for the pickup address.
	DetectLocationRe = regexp.MustCompile(`\b(detect|use|get) (my )?(current )?location\b|\b(auto|current) location\b|\b(pickup )?location\b`)
)

// routeAliases map spoken page names to routes, checked in order.
var routeAliases = []struct {
	re   *regexp.Regexp
	path string
}{
	{regexp.MustCompile(`\b(login|sign in)\b`), RouteLogin},
	{regexp.MustCompile(`\b(sign up|signup|register|create account)\b`), RouteSignup},
	{regexp.MustCompile(`\b(dashboard|home)\b`), RouteHome},
	{regexp.MustCompile(`\bbooking|book( a)? delivery|place( an)? order\b`), RouteBooking},
	{regexp.MustCompile(`\btracking|track( my)? (order|delivery|package)\b`), RouteTrack},
	{regexp.MustCompile(`\bprofile\b`), RouteProfile},
	{regexp.MustCompile(`\bpayment|checkout\b`), RoutePayment},
	{regexp.MustCompile(`\bchat\b`), RouteChat},
}

// fieldPatterns match labeled "<label> is <value>" utterances, checked in
// order. Booking labels come first so generic labels (email, name) resolve
// to the auth scopes only when no booking label matched.
var fieldPatterns = []struct {
	re    *regexp.Regexp
	scope booking.Scope
	field string
}{
	{regexp.MustCompile(`(?i)\b(sender name)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "senderName"},
	{regexp.MustCompile(`(?i)\b(sender phone|sender number)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "senderPhone"},
	{regexp.MustCompile(`(?i)\b(pickup address)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "pickupAddress"},
	{regexp.MustCompile(`(?i)\b(pickup city)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "pickupCity"},
	{regexp.MustCompile(`(?i)\b(receiver name)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "receiverName"},
	{regexp.MustCompile(`(?i)\b(receiver phone|receiver number)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "receiverPhone"},
	{regexp.MustCompile(`(?i)\b(dropoff address|drop off address|delivery address)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "dropoffAddress"},
	{regexp.MustCompile(`(?i)\b(dropoff city|drop off city|delivery city)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "dropoffCity"},
	{regexp.MustCompile(`(?i)\b(weight)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "weight"},
	{regexp.MustCompile(`(?i)\b(package type)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "packageType"},
	{regexp.MustCompile(`(?i)\b(delivery speed|speed)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "deliverySpeed"},
	{regexp.MustCompile(`(?i)\b(length)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "dimensions.length"},
	{regexp.MustCompile(`(?i)\b(width)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "dimensions.width"},
	{regexp.MustCompile(`(?i)\b(height)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "dimensions.height"},
	{regexp.MustCompile(`(?i)\b(pickup date|pick up date)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "pickupDate"},
	{regexp.MustCompile(`(?i)\b(pickup time|pick up time)\s*(is|to)?\s*(.+)$`), booking.ScopeBooking, "pickupTime"},

	{regexp.MustCompile(`(?i)\b(email)\s*(is|to)?\s*(.+)$`), booking.ScopeLogin, "email"},
	{regexp.MustCompile(`(?i)\b(password)\s*(is|to)?\s*(.+)$`), booking.ScopeLogin, "password"},

	{regexp.MustCompile(`(?i)\b(name|full name)\s*(is|to)?\s*(.+)$`), booking.ScopeSignup, "name"},
}

// Parse classifies a raw utterance. The text is normalized internally;
// field-set values keep the raw casing of the original utterance.
func Parse(raw string) Intent {
	text := utterance.Normalize(raw)
	if text == "" {
		return Unknown
	}

	// 1. Control words
	if stopRe.MatchString(text) {
		return Intent{Type: TypeStop}
	}
	if helpRe.MatchString(text) {
		return Intent{Type: TypeHelp}
	}

	// 2. Explicit booking start
	if startBookingRe.MatchString(text) {
		return Intent{Type: TypeStartBooking}
	}

	// 3. Booking navigation commands
	if nextRe.MatchString(text) {
		return BookingAction(booking.ActionNext)
	}
	if backRe.MatchString(text) {
		return BookingAction(booking.ActionBack)
	}
	if DetectLocationRe.MatchString(text) {
		return BookingAction(booking.ActionDetectLocation)
	}
	if submitRe.MatchString(text) {
		return BookingAction(booking.ActionSubmit)
	}

	// 4. Payment
	if payRe.MatchString(text) {
		return PaymentAction(booking.ActionPay)
	}

	// 5. Direct navigation
	for _, r := range routeAliases {
		if r.re.MatchString(text) {
			return Navigate(r.path)
		}
	}
	if m := goToRe.FindStringSubmatch(text); m != nil {
		target := strings.TrimSpace(m[2])
		if strings.HasPrefix(target, "/") {
			return Navigate(target)
		}
	}

	// 6. Labeled field sets; match against the raw text to keep value casing.
	stripped := utterance.StripWake(raw)
	for _, p := range fieldPatterns {
		m := p.re.FindStringSubmatch(stripped)
		if m == nil {
			continue
		}
		val := strings.TrimSpace(m[3])
		// A bare connector means the label had no value after it.
		if val == "" || strings.EqualFold(val, "is") || strings.EqualFold(val, "to") {
			continue
		}
		return SetField(p.scope, p.field, val)
	}

	return Unknown
}
