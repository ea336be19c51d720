// Package booking defines the booking form vocabulary shared by the
// assistant: scopes, actions, the guided field flow, and the form store
// boundary the host application implements.
package booking

// Scope identifies which form an event targets.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeBooking Scope = "booking"
	ScopeLogin   Scope = "login"
	ScopeSignup  Scope = "signup"
	ScopePayment Scope = "payment"
)

// Action is a form-level command the host executes.
type Action string

const (
	ActionNext           Action = "next"
	ActionBack           Action = "back"
	ActionDetectLocation Action = "detect-location"
	ActionSubmit         Action = "submit"
	ActionPay            Action = "pay"
	ActionLoginSubmit    Action = "login-submit"
	ActionSignupSubmit   Action = "signup-submit"
)

// SetFieldEvent asks the host to write a field value. Field identifiers use
// dotted paths for nested structures (e.g. "dimensions.length").
type SetFieldEvent struct {
	Scope Scope  `json:"scope"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// ActionEvent asks the host to run a form action.
type ActionEvent struct {
	Scope  Scope  `json:"scope"`
	Action Action `json:"action"`
}

// StepChange is fired by the host whenever its step index changes by any means.
type StepChange struct {
	Step int `json:"step"`
}

// DetectedLocation is fired by the host after geolocation + reverse geocoding.
type DetectedLocation struct {
	Address string `json:"address"`
	City    string `json:"city"`
}

// FormStore is the host-side form the assistant reads current values from.
// Writes happen through SetFieldEvent, not through this interface; the host
// guarantees last-write-wins per field.
type FormStore interface {
	GetField(id string) string
}
