// Package assistant wires the voice pipeline together: it takes settled
// transcripts, runs local intent parsing, drives the guided-booking
// dialogue, and escalates what it cannot parse to a remote resolver.
//
// One Assistant serves one user session. HandleText is serialized
// internally; at most one remote resolution is in flight at a time, and
// utterances arriving during one are dropped rather than queued, since
// a stale answer to old speech is worse than no answer.
package assistant

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/acetransit/voicekit/pkg/booking"
	"github.com/acetransit/voicekit/pkg/dialogue"
	"github.com/acetransit/voicekit/pkg/extract"
	"github.com/acetransit/voicekit/pkg/intent"
	"github.com/acetransit/voicekit/pkg/nlu"
	"github.com/acetransit/voicekit/pkg/session"
)

const helpText = "You can say: start booking, track my order, open profile, or go to payment. " +
	"During booking I'll ask for each field, and you confirm every answer."

var (
	loginSubmitRe  = regexp.MustCompile(`\b(log ?me ?in|log ?in|sign ?me ?in|submit)\b`)
	signupSubmitRe = regexp.MustCompile(`\b(sign ?me ?up|sign ?up|create|register|submit)\b`)
)

// Assistant orchestrates one conversation.
type Assistant struct {
	engine   *dialogue.Engine
	form     booking.FormStore
	ex       *extract.Extractor
	speaker  dialogue.Speaker
	strategy IntentResolver
	store    session.Store
	logger   *slog.Logger

	mu         sync.Mutex
	sess       *session.Session
	processing bool
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithResolver routes unparsed utterances to the given NLU resolver
// through the hybrid strategy.
func WithResolver(r nlu.Resolver) Option {
	return func(a *Assistant) { a.strategy = NewHybridResolver(r) }
}

// WithIntentResolver sets the escalation strategy directly.
func WithIntentResolver(r IntentResolver) Option {
	return func(a *Assistant) { a.strategy = r }
}

// WithPatternOnly disables escalation entirely; unparsed utterances get
// a re-prompt.
func WithPatternOnly() Option {
	return func(a *Assistant) { a.strategy = PatternResolver{} }
}

// WithStore persists the session after every exchange.
func WithStore(s session.Store) Option {
	return func(a *Assistant) { a.store = s }
}

// WithExtractor overrides the default field extractor.
func WithExtractor(ex *extract.Extractor) Option {
	return func(a *Assistant) { a.ex = ex }
}

// WithSession resumes an existing session instead of starting fresh.
func WithSession(s *session.Session) Option {
	return func(a *Assistant) { a.sess = s }
}

// New creates an assistant over the host form. The speaker voices every
// reply; replies also land in the session history.
func New(form booking.FormStore, speaker dialogue.Speaker, opts ...Option) *Assistant {
	a := &Assistant{
		form:    form,
		speaker: speaker,
		logger:  slog.Default().With("component", "assistant"),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.ex == nil {
		a.ex = extract.New()
	}
	if a.sess == nil {
		a.sess = session.NewSession()
	}
	if a.strategy == nil {
		// Hybrid over the offline heuristic: useful answers with no
		// network and no API keys.
		a.strategy = NewHybridResolver(nlu.NewChain(nlu.NewOfflineResolver()))
	}

	a.engine = dialogue.New(form, a.ex, dialogue.SpeakerFunc(a.speak))
	a.engine.Events().Navigate.Subscribe(func(path string) {
		a.sess.CurrentPage = path
	})
	return a
}

// Engine exposes the dialogue engine, mainly for event subscription.
func (a *Assistant) Engine() *dialogue.Engine { return a.engine }

// Events exposes the outbound event topics.
func (a *Assistant) Events() *dialogue.Events { return a.engine.Events() }

// Session returns the active session.
func (a *Assistant) Session() *session.Session { return a.sess }

// SetPage records a page change made outside the assistant, e.g. a
// manual click in the UI.
func (a *Assistant) SetPage(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sess.CurrentPage = path
}

// OnStepChanged forwards the host's step signal to the dialogue engine.
func (a *Assistant) OnStepChanged(ctx context.Context, step int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sess.CurrentStep = step
	a.engine.OnStepChanged(step)
	a.persist(ctx)
}

// OnLocationDetected forwards the host's geolocation result.
func (a *Assistant) OnLocationDetected(ctx context.Context, loc booking.DetectedLocation) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.engine.OnLocationDetected(loc)
	a.persist(ctx)
}

// HandleText processes one settled transcript end to end.
func (a *Assistant) HandleText(ctx context.Context, raw string) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.sess.AddTurn("user", text)
	it := intent.Parse(raw)

	switch it.Type {
	case intent.TypeStop:
		a.engine.Stop()
		a.speakLocked("Okay.")
		a.resetSessionLocked(ctx)
		return
	case intent.TypeHelp:
		a.speakLocked(helpText)
		a.persist(ctx)
		return
	}

	if a.engine.HandleIntent(it, raw) {
		if it.Type == intent.TypeBookingAction && it.Action == booking.ActionSubmit {
			// Submit completes the booking: guided mode and the
			// conversation both end here.
			a.engine.Stop()
			a.resetSessionLocked(ctx)
			return
		}
		a.persist(ctx)
		return
	}

	if a.handleAuthSubmit(raw) {
		a.persist(ctx)
		return
	}

	a.escalateLocked(ctx, raw)
	a.persist(ctx)
}

// handleAuthSubmit maps otherwise-unparsed submit wording to the form
// of the auth page the user is on.
func (a *Assistant) handleAuthSubmit(raw string) bool {
	norm := strings.ToLower(raw)
	switch a.sess.CurrentPage {
	case intent.RouteLogin:
		if loginSubmitRe.MatchString(norm) {
			a.engine.Events().Action.Publish(booking.ActionEvent{Scope: booking.ScopeLogin, Action: booking.ActionLoginSubmit})
			a.speakLocked("Logging you in.")
			return true
		}
	case intent.RouteSignup:
		if signupSubmitRe.MatchString(norm) {
			a.engine.Events().Action.Publish(booking.ActionEvent{Scope: booking.ScopeSignup, Action: booking.ActionSignupSubmit})
			a.speakLocked("Creating your account.")
			return true
		}
	}
	return false
}

// escalateLocked hands the utterance to the configured strategy. The
// caller holds the lock; resolution itself runs on a fresh goroutine.
func (a *Assistant) escalateLocked(ctx context.Context, raw string) {
	if a.processing {
		a.logger.Debug("resolver busy, utterance dropped", "text", raw)
		return
	}
	a.processing = true

	req := nlu.Request{
		UserText:            strings.TrimSpace(raw),
		CurrentStep:         a.sess.CurrentStep,
		ConversationHistory: append([]nlu.Turn(nil), a.sess.History...),
		FormData:            a.formSnapshot(),
		CurrentPage:         a.sess.CurrentPage,
		SessionID:           a.sess.ID,
	}

	go func() {
		res := a.strategy.Fallback(ctx, req)

		a.mu.Lock()
		defer a.mu.Unlock()
		a.processing = false
		a.applyResolved(res)
		a.persist(ctx)
	}()
}

// applyResolved acts on a remote resolution: speak the reply, then apply
// any side effects it carries.
func (a *Assistant) applyResolved(res nlu.Result) {
	if res.Response != "" {
		a.speakLocked(res.Response)
	}

	act := res.Action
	if act == nil {
		return
	}

	if len(act.ExtractedData) > 0 {
		fields := make([]string, 0, len(act.ExtractedData))
		for f := range act.ExtractedData {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			value := a.ex.Extract(f, act.ExtractedData[f])
			a.engine.Events().SetField.Publish(booking.SetFieldEvent{
				Scope: booking.ScopeBooking,
				Field: f,
				Value: value,
			})
		}
	}

	if act.Type == "navigate" && act.NavigateTo != "" {
		a.engine.Events().Navigate.Publish(act.NavigateTo)
		if act.NavigateTo == intent.RouteBooking && !a.engine.Enabled() {
			a.engine.Start(booking.FirstStep)
		}
	}

	// A resolved step request becomes a form action; the host moves the
	// form and reports the change back through OnStepChanged.
	if act.NextStep > 0 && act.NextStep != a.sess.CurrentStep {
		action := booking.ActionNext
		if act.NextStep < a.sess.CurrentStep {
			action = booking.ActionBack
		}
		a.engine.Events().Action.Publish(booking.ActionEvent{Scope: booking.ScopeBooking, Action: action})
	}
}

// formSnapshot collects the non-empty booking fields for resolver context.
func (a *Assistant) formSnapshot() map[string]string {
	snap := make(map[string]string)
	for step := booking.FirstStep; step <= booking.LastStep; step++ {
		for _, f := range booking.FieldsForStep(step) {
			if v := a.form.GetField(f.ID); strings.TrimSpace(v) != "" {
				snap[f.ID] = v
			}
		}
	}
	if len(snap) == 0 {
		return nil
	}
	return snap
}

// resetSessionLocked destroys the conversation after an explicit stop
// or a completed booking. The page carries over to the fresh session;
// the id and history do not.
func (a *Assistant) resetSessionLocked(ctx context.Context) {
	if a.store != nil {
		if err := a.store.Delete(ctx, a.sess.ID); err != nil {
			a.logger.Warn("session delete failed", "error", err)
		}
	}
	page := a.sess.CurrentPage
	a.sess = session.NewSession()
	a.sess.CurrentPage = page
}

// speak voices text and records it in the history. Used as the engine's
// speaker, so it must tolerate being called with the lock already held.
func (a *Assistant) speak(text string) {
	a.speakLocked(text)
}

func (a *Assistant) speakLocked(text string) {
	a.sess.AddTurn("assistant", text)
	if a.speaker != nil {
		a.speaker.Speak(text)
	}
}

// persist writes the session through the store, best effort.
func (a *Assistant) persist(ctx context.Context) {
	if a.store == nil {
		return
	}
	if err := a.store.Put(ctx, a.sess); err != nil {
		a.logger.Warn("session persist failed", "error", err)
	}
}
