// Package dialogue implements the guided-booking conversation engine.
//
// The engine walks the booking form field by field: it asks, hears an
// answer, speaks the candidate back, and commits only on confirmation.
// It performs no I/O of its own. Speech goes out through a Speaker, form
// writes and actions go out as events, and the host reports step changes
// and detected locations back in. The engine never moves between steps
// itself; it announces step completion and waits for the host's step
// change signal.
//
// Engine methods are not safe for concurrent use. The caller serializes
// all input, which matches the one-utterance-at-a-time nature of speech.
package dialogue

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/acetransit/voicekit/pkg/booking"
	"github.com/acetransit/voicekit/pkg/bus"
	"github.com/acetransit/voicekit/pkg/extract"
	"github.com/acetransit/voicekit/pkg/intent"
	"github.com/acetransit/voicekit/pkg/utterance"
)

// Speaker voices assistant replies. Implementations must not block on
// playback completion.
type Speaker interface {
	Speak(text string)
}

// SpeakerFunc adapts a function to the Speaker interface.
type SpeakerFunc func(text string)

func (f SpeakerFunc) Speak(text string) { f(text) }

// Events carries the engine's outbound topics. The host subscribes to
// apply form writes, run form actions, and change pages.
type Events struct {
	SetField *bus.Topic[booking.SetFieldEvent]
	Action   *bus.Topic[booking.ActionEvent]
	Navigate *bus.Topic[string]
}

// changeRe detects explicit overwrite wording in a direct field-set
// utterance targeting an already-filled field.
var changeRe = regexp.MustCompile(`\b(change|update|replace|correct)\b`)

// Engine drives the guided booking dialogue.
type Engine struct {
	form    booking.FormStore
	ex      *extract.Extractor
	speaker Speaker
	events  *Events
	logger  *slog.Logger

	state State
}

// New creates an engine bound to the host form. The extractor may be nil,
// in which case a default one is used.
func New(form booking.FormStore, ex *extract.Extractor, speaker Speaker) *Engine {
	if ex == nil {
		ex = extract.New()
	}
	return &Engine{
		form:    form,
		ex:      ex,
		speaker: speaker,
		events: &Events{
			SetField: bus.NewTopic[booking.SetFieldEvent](),
			Action:   bus.NewTopic[booking.ActionEvent](),
			Navigate: bus.NewTopic[string](),
		},
		logger: slog.Default().With("component", "dialogue"),
	}
}

// Events exposes the outbound topics for host subscription.
func (e *Engine) Events() *Events { return e.events }

// Enabled reports whether guided booking is active.
func (e *Engine) Enabled() bool { return e.state.Enabled }

// Snapshot returns a copy of the current dialogue state.
func (e *Engine) Snapshot() State { return e.state }

// Start enters guided mode at the given step and asks the first field.
func (e *Engine) Start(step int) {
	if step < booking.FirstStep || step > booking.LastStep {
		step = booking.FirstStep
	}
	e.state = resetState(step)
	e.logger.Info("guided booking started", "step", step)
	e.askCurrent()
}

// Stop leaves guided mode and drops any in-flight field.
func (e *Engine) Stop() {
	if e.state.Enabled {
		e.logger.Info("guided booking stopped", "step", e.state.Step)
	}
	e.state = State{}
}

// OnStepChanged is called by the host whenever the form's step index
// changes, regardless of what caused the change. Outside guided mode it
// is a no-op.
func (e *Engine) OnStepChanged(step int) {
	if !e.state.Enabled {
		return
	}
	e.state = resetState(step)
	e.askCurrent()
}

// OnLocationDetected is called by the host after geolocation resolves.
// The result is only offered while the engine is waiting for a pickup
// address; otherwise it is discarded.
func (e *Engine) OnLocationDetected(loc booking.DetectedLocation) {
	if !e.state.Enabled || e.state.Awaiting != AwaitingValue || e.state.Field != "pickupAddress" {
		return
	}
	if strings.TrimSpace(loc.Address) == "" || strings.TrimSpace(loc.City) == "" {
		e.speak("I couldn't detect your location. Please say the pickup address.")
		return
	}
	e.state.Detected = &loc
	e.state.Awaiting = AwaitingDetectedLocation
	e.speak(fmt.Sprintf("I detected pickup address %s in %s. Say yes to use it, or no to enter manually.", loc.Address, loc.City))
}

// HandleIntent processes one parsed utterance together with its raw text.
// It returns false when the utterance was not consumed, letting the
// caller escalate to a fallback resolver.
func (e *Engine) HandleIntent(it intent.Intent, raw string) bool {
	switch it.Type {
	case intent.TypeNavigate:
		e.events.Navigate.Publish(it.Path)
		if it.Path == intent.RouteBooking {
			e.speak("Opening booking. I'll ask each field. After you answer, say yes to confirm, or no to repeat.")
			e.Start(booking.FirstStep)
			return true
		}
		e.speak("Opening " + pageName(it.Path) + ".")
		return true

	case intent.TypeStartBooking:
		e.events.Navigate.Publish(intent.RouteBooking)
		e.speak("Opening booking. I'll ask each field. After you answer, say yes to confirm, or no to repeat.")
		e.Start(booking.FirstStep)
		return true

	case intent.TypeBookingAction:
		e.events.Action.Publish(booking.ActionEvent{Scope: booking.ScopeBooking, Action: it.Action})
		switch it.Action {
		case booking.ActionNext:
			e.speak("Okay, next.")
		case booking.ActionBack:
			e.speak("Okay, going back.")
		case booking.ActionDetectLocation:
			e.speak("Okay, detecting your pickup location.")
		case booking.ActionSubmit:
			e.speak("Okay. Proceeding to payment.")
		}
		return true

	case intent.TypePaymentAction:
		e.events.Action.Publish(booking.ActionEvent{Scope: booking.ScopePayment, Action: it.Action})
		e.speak("Okay. Processing payment now.")
		return true
	}

	// Guided replies win over direct field sets: while a field is in
	// flight, any remaining utterance is an answer to the open question.
	if e.state.Enabled && e.state.Awaiting != AwaitingNone {
		e.handleGuidedReply(raw)
		return true
	}

	if it.Type == intent.TypeSetField {
		e.handleSetField(it, raw)
		return true
	}

	return false
}

// handleSetField applies a direct "<label> is <value>" utterance. Filled
// booking fields are guarded against accidental overwrite.
func (e *Engine) handleSetField(it intent.Intent, raw string) {
	if it.Scope == booking.ScopeBooking {
		if cur := e.form.GetField(it.Field); strings.TrimSpace(cur) != "" &&
			!changeRe.MatchString(utterance.Normalize(raw)) {
			e.speak(fmt.Sprintf("That field is already set to %s. Say change %s to update it.", cur, spokenLabel(it.Field)))
			return
		}
	}
	value := e.ex.Extract(it.Field, it.Value)
	e.events.SetField.Publish(booking.SetFieldEvent{Scope: it.Scope, Field: it.Field, Value: value})
	e.speak("Got it.")
}

// handleGuidedReply consumes the user's answer to the open question.
func (e *Engine) handleGuidedReply(raw string) {
	norm := utterance.Normalize(raw)

	switch e.state.Awaiting {
	case AwaitingKeepOrChange:
		e.handleKeepOrChange(norm)
	case AwaitingValue:
		e.handleValue(raw, norm)
	case AwaitingConfirm:
		e.handleConfirm(raw, norm)
	case AwaitingDetectedLocation:
		e.handleDetectedLocation(norm)
	}
}

func (e *Engine) handleKeepOrChange(norm string) {
	switch {
	case utterance.IsKeep(norm) || utterance.IsAffirmative(norm):
		e.speak("Okay, keeping it.")
		e.advance()
	case utterance.IsChange(norm):
		field, ok := e.currentField()
		if !ok {
			e.advance()
			return
		}
		e.state.Awaiting = AwaitingValue
		e.speak("Okay. " + field.Prompt)
	default:
		e.speak("Please say keep, or change.")
	}
}

func (e *Engine) handleValue(raw, norm string) {
	field, ok := e.currentField()
	if !ok {
		e.advance()
		return
	}

	if field.Optional && utterance.IsSkip(norm) {
		e.speak("Okay, skipped.")
		e.advance()
		return
	}

	if field.ID == "pickupAddress" && intent.DetectLocationRe.MatchString(norm) {
		e.events.Action.Publish(booking.ActionEvent{Scope: booking.ScopeBooking, Action: booking.ActionDetectLocation})
		e.speak("Okay. Detecting your pickup location now.")
		return
	}

	value := e.ex.Extract(field.ID, strings.TrimSpace(raw))
	if value == "" {
		e.speak(field.Prompt)
		return
	}
	e.state.Candidate = value
	e.state.Awaiting = AwaitingConfirm
	e.speak(fmt.Sprintf("You said %s. Say yes to confirm, or no to repeat.", value))
}

func (e *Engine) handleConfirm(raw, norm string) {
	switch {
	case utterance.IsAffirmative(norm):
		if e.state.Field != "" && e.state.Candidate != "" {
			e.events.SetField.Publish(booking.SetFieldEvent{
				Scope: booking.ScopeBooking,
				Field: e.state.Field,
				Value: e.state.Candidate,
			})
		}
		e.speak("Saved.")
		e.advance()
	case utterance.IsNegative(norm):
		e.state.Candidate = ""
		e.state.Awaiting = AwaitingValue
		e.speak("Okay. Say it again.")
	default:
		// Treat anything else as a corrected value and re-confirm.
		e.state.Awaiting = AwaitingValue
		e.handleValue(raw, norm)
	}
}

func (e *Engine) handleDetectedLocation(norm string) {
	switch {
	case utterance.IsAffirmative(norm):
		loc := e.state.Detected
		if loc == nil {
			e.state.Awaiting = AwaitingValue
			e.askCurrent()
			return
		}
		e.events.SetField.Publish(booking.SetFieldEvent{Scope: booking.ScopeBooking, Field: "pickupAddress", Value: loc.Address})
		e.events.SetField.Publish(booking.SetFieldEvent{Scope: booking.ScopeBooking, Field: "pickupCity", Value: loc.City})
		e.speak("Okay. Pickup location saved.")
		// The detected result fills both address and city, so both field
		// slots are consumed in one move.
		e.state.Index += 2
		e.state.clearInFlight()
		e.askCurrent()
	case utterance.IsNegative(norm):
		e.state.Detected = nil
		e.state.Awaiting = AwaitingValue
		e.speak("Okay. Please say the pickup address.")
	default:
		e.speak("Please say yes to use it, or no to enter manually.")
	}
}

// askCurrent opens the question for the field at the current index, or
// announces step completion when the step's fields are exhausted.
func (e *Engine) askCurrent() {
	if !e.state.Enabled {
		return
	}
	fields := booking.FieldsForStep(e.state.Step)
	if e.state.Index >= len(fields) {
		e.state.clearInFlight()
		e.speak(fmt.Sprintf("Step %d complete. Say next to continue, or back.", e.state.Step))
		return
	}

	field := fields[e.state.Index]
	e.state.Field = field.ID
	e.state.Label = field.Label
	e.state.Candidate = ""
	e.state.Detected = nil

	if cur := e.form.GetField(field.ID); strings.TrimSpace(cur) != "" {
		e.state.Prefilled = cur
		e.state.Awaiting = AwaitingKeepOrChange
		e.speak(fmt.Sprintf("I found %s already filled as %s. Say keep, or say change.", field.Label, cur))
		return
	}

	e.state.Prefilled = ""
	e.state.Awaiting = AwaitingValue
	e.speak(field.Prompt)
}

// advance moves to the next field slot within the current step.
func (e *Engine) advance() {
	e.state.Index++
	e.state.clearInFlight()
	e.askCurrent()
}

// currentField returns the in-flight field definition.
func (e *Engine) currentField() (booking.Field, bool) {
	fields := booking.FieldsForStep(e.state.Step)
	if e.state.Index < 0 || e.state.Index >= len(fields) {
		return booking.Field{}, false
	}
	return fields[e.state.Index], true
}

func (e *Engine) speak(text string) {
	if e.speaker != nil {
		e.speaker.Speak(text)
	}
}

// pageName turns a route path into a speakable page name.
func pageName(path string) string {
	name := strings.TrimPrefix(path, "/")
	if name == "" {
		return "home"
	}
	return strings.ReplaceAll(name, "/", " ")
}

// spokenLabel turns a dotted field identifier into a speakable label.
func spokenLabel(fieldID string) string {
	for step := booking.FirstStep; step <= booking.LastStep; step++ {
		for _, f := range booking.FieldsForStep(step) {
			if f.ID == fieldID {
				return f.Label
			}
		}
	}
	return fieldID
}
