package dialogue

import "github.com/acetransit/voicekit/pkg/booking"

// Awaiting is the sub-state describing what kind of reply is expected for
// the field currently in flight. At most one field is in flight at a time.
type Awaiting int

const (
	// AwaitingNone means no field is in flight.
	AwaitingNone Awaiting = iota

	// AwaitingKeepOrChange is offered when the field already holds a value.
	AwaitingKeepOrChange

	// AwaitingValue means the engine asked for the field's value.
	AwaitingValue

	// AwaitingConfirm means a candidate value was spoken back for approval.
	AwaitingConfirm

	// AwaitingDetectedLocation means a detected address+city is pending
	// confirmation for the pickup-address field.
	AwaitingDetectedLocation
)

func (a Awaiting) String() string {
	switch a {
	case AwaitingNone:
		return "none"
	case AwaitingKeepOrChange:
		return "keepOrChange"
	case AwaitingValue:
		return "value"
	case AwaitingConfirm:
		return "confirm"
	case AwaitingDetectedLocation:
		return "confirmDetectedLocation"
	default:
		return "unknown"
	}
}

// State is the guided-booking dialogue state, owned exclusively by the
// Engine and mutated only by its transition methods.
type State struct {
	// Enabled is true while guided booking is active.
	Enabled bool

	// Step is the current booking step (1..4).
	Step int

	// Index is the position within the step's field list.
	Index int

	// Awaiting describes the expected reply for the in-flight field.
	Awaiting Awaiting

	// Field and Label identify the in-flight field, empty when none.
	Field string
	Label string

	// Candidate is the unconfirmed value pending user approval.
	Candidate string

	// Prefilled is the value the field held when it was asked, if any.
	Prefilled string

	// Detected is the address+city pending confirmation, if any.
	Detected *booking.DetectedLocation
}

// reset returns a fresh state for the given step, keeping guided mode on.
func resetState(step int) State {
	return State{Enabled: true, Step: step, Index: 0, Awaiting: AwaitingNone}
}

// clearInFlight drops the in-flight field without leaving guided mode.
func (s *State) clearInFlight() {
	s.Awaiting = AwaitingNone
	s.Field = ""
	s.Label = ""
	s.Candidate = ""
	s.Prefilled = ""
	s.Detected = nil
}
