// Package intent classifies normalized utterances into a closed set of
// commands using ordered pattern matching.
//
// Rule order models priority of commands over data: a user saying "next"
// must always advance the flow even if a later field-label pattern could
// spuriously match the same text. Unknown is not an error; callers decide
// whether to escalate to the NLU fallback or re-prompt.
package intent

import "github.com/acetransit/voicekit/pkg/booking"

// Type discriminates the Intent variants.
type Type string

const (
	TypeNavigate      Type = "navigate"
	TypeStartBooking  Type = "startBooking"
	TypeBookingAction Type = "bookingAction"
	TypePaymentAction Type = "paymentAction"
	TypeSetField      Type = "setField"
	TypeStop          Type = "stop"
	TypeHelp          Type = "help"
	TypeUnknown       Type = "unknown"
)

// Intent is the parsed purpose of one utterance. Only the fields relevant
// to the Type are populated. Intents are transient: produced by Parse,
// consumed once by the dialogue engine, never persisted.
type Intent struct {
	Type   Type
	Path   string         // TypeNavigate
	Action booking.Action // TypeBookingAction, TypePaymentAction
	Scope  booking.Scope  // TypeSetField
	Field  string         // TypeSetField
	Value  string         // TypeSetField
}

// Navigate builds a navigation intent.
func Navigate(path string) Intent {
	return Intent{Type: TypeNavigate, Path: path}
}

// BookingAction builds a booking action intent.
func BookingAction(action booking.Action) Intent {
	return Intent{Type: TypeBookingAction, Action: action}
}

// PaymentAction builds a payment action intent.
func PaymentAction(action booking.Action) Intent {
	return Intent{Type: TypePaymentAction, Action: action}
}

// SetField builds a field-set intent.
func SetField(scope booking.Scope, field, value string) Intent {
	return Intent{Type: TypeSetField, Scope: scope, Field: field, Value: value}
}

// Unknown is the catch-all intent.
var Unknown = Intent{Type: TypeUnknown}
