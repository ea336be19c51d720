package speech

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Defaults for the adapter's timing policy.
const (
	// DefaultRestartBase is the initial delay before restarting a session.
	DefaultRestartBase = 250 * time.Millisecond

	// DefaultRestartMax caps the exponential restart backoff.
	DefaultRestartMax = 2500 * time.Millisecond

	// DefaultSettleDelay is how long the newest interim hypothesis is held
	// before it is promoted to a final utterance, for engines that stop
	// revising but never finalize.
	DefaultSettleDelay = 1200 * time.Millisecond
)

// Handler receives settled transcripts, one utterance per call. It is
// invoked from the recognizer's event goroutine or an internal timer
// goroutine.
type Handler func(transcript string)

// Adapter keeps a Recognizer session alive and forwards settled
// transcripts to a single handler.
//
// Final results are dispatched immediately. Interim results sit in a
// single-slot buffer, each hypothesis replacing the last, and the
// newest one is promoted to an utterance when the settle window passes
// without a final. Exactly one utterance goes downstream per settle or
// final event.
//
// Lifecycle policy: when a session ends it is restarted after a delay
// that doubles on every transient error and resets on every final
// result. Terminal errors disable the adapter until Start is called
// again. While the Synthesizer is playing, recognition is aborted and
// buffered transcripts are discarded so the assistant never transcribes
// its own speech.
type Adapter struct {
	rec     Recognizer
	syn     Synthesizer
	handler Handler
	interim Handler
	logger  *slog.Logger

	restartBase time.Duration
	restartMax  time.Duration
	settle      time.Duration

	mu           sync.Mutex
	enabled      bool
	speaking     int
	delay        time.Duration
	pending      string
	settleTimer  *time.Timer
	restartTimer *time.Timer
	ctx          context.Context
	cancel       context.CancelFunc
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithRestartBackoff overrides the restart delay range.
func WithRestartBackoff(base, max time.Duration) AdapterOption {
	return func(a *Adapter) {
		a.restartBase = base
		a.restartMax = max
	}
}

// WithSettleDelay overrides the transcript settle window.
func WithSettleDelay(d time.Duration) AdapterOption {
	return func(a *Adapter) { a.settle = d }
}

// WithInterimHandler registers a callback for interim hypotheses, useful
// for live captioning. Interim text is advisory and may be revised.
func WithInterimHandler(h Handler) AdapterOption {
	return func(a *Adapter) { a.interim = h }
}

// NewAdapter creates an adapter over the given recognizer and
// synthesizer. The handler receives settled final transcripts.
func NewAdapter(rec Recognizer, syn Synthesizer, handler Handler, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		rec:         rec,
		syn:         syn,
		handler:     handler,
		logger:      slog.Default().With("component", "speech"),
		restartBase: DefaultRestartBase,
		restartMax:  DefaultRestartMax,
		settle:      DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start begins continuous listening. Calling Start on a running adapter
// is a no-op.
func (a *Adapter) Start() error {
	a.mu.Lock()
	if a.enabled {
		a.mu.Unlock()
		return nil
	}
	a.enabled = true
	a.delay = a.restartBase
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.mu.Unlock()

	if err := a.rec.Start(a); err != nil {
		a.mu.Lock()
		a.enabled = false
		if a.cancel != nil {
			a.cancel()
		}
		a.mu.Unlock()
		return err
	}
	a.logger.Info("listening started")
	return nil
}

// Stop ends listening and discards any buffered transcript. Stop is
// idempotent and also cancels in-flight speech playback.
func (a *Adapter) Stop() {
	a.mu.Lock()
	if !a.enabled {
		a.mu.Unlock()
		return
	}
	a.enabled = false
	a.pending = ""
	stopTimer(a.settleTimer)
	stopTimer(a.restartTimer)
	if a.cancel != nil {
		a.cancel()
	}
	a.mu.Unlock()

	a.rec.Abort()
	a.logger.Info("listening stopped")
}

// Listening reports whether the adapter is active.
func (a *Adapter) Listening() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// Speak voices text, pausing recognition for the duration of playback.
// It returns immediately; playback happens on an internal goroutine.
func (a *Adapter) Speak(text string) {
	a.mu.Lock()
	a.speaking++
	a.pending = ""
	stopTimer(a.settleTimer)
	stopTimer(a.restartTimer)
	ctx := a.ctx
	a.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	a.rec.Abort()

	go func() {
		if err := a.syn.Speak(ctx, text); err != nil && ctx.Err() == nil {
			a.logger.Error("speech synthesis failed", "error", err)
		}

		a.mu.Lock()
		a.speaking--
		resume := a.speaking == 0 && a.enabled
		a.mu.Unlock()

		if resume {
			if err := a.rec.Start(a); err != nil {
				a.logger.Warn("restart after speech failed", "error", err)
				a.scheduleRestart()
			}
		}
	}()
}

// OnResult implements Sink. Finals are handed off immediately and
// cancel any pending interim; interim text arms the settle timer so a
// stable hypothesis is treated as final when the engine never
// finalizes.
func (a *Adapter) OnResult(r Result) {
	if !r.Final {
		if a.interim != nil {
			a.interim(r.Transcript)
		}
		a.mu.Lock()
		if !a.enabled || a.speaking > 0 {
			a.mu.Unlock()
			return
		}
		// Single-slot buffer: only the most recent hypothesis matters.
		a.pending = r.Transcript
		stopTimer(a.settleTimer)
		a.settleTimer = time.AfterFunc(a.settle, a.flush)
		a.mu.Unlock()
		return
	}

	a.mu.Lock()
	if !a.enabled || a.speaking > 0 {
		a.mu.Unlock()
		return
	}
	a.delay = a.restartBase
	a.pending = ""
	stopTimer(a.settleTimer)
	a.mu.Unlock()

	if text := r.Transcript; text != "" && a.handler != nil {
		a.handler(text)
	}
}

// OnError implements Sink. Transient errors grow the restart backoff;
// terminal errors disable the adapter.
func (a *Adapter) OnError(code ErrCode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.enabled {
		return
	}
	if code == ErrAborted && a.speaking > 0 {
		// Expected: recognition was cut off for playback.
		return
	}
	if !code.Transient() {
		a.enabled = false
		a.pending = ""
		stopTimer(a.settleTimer)
		stopTimer(a.restartTimer)
		a.logger.Error("recognition disabled", "code", string(code))
		return
	}

	a.delay *= 2
	if a.delay > a.restartMax {
		a.delay = a.restartMax
	}
	a.logger.Debug("recognition error", "code", string(code), "restart_in", a.delay)
}

// OnEnd implements Sink. The session is restarted after the current
// backoff delay unless playback is in progress.
func (a *Adapter) OnEnd() {
	a.mu.Lock()
	if !a.enabled || a.speaking > 0 {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()
	a.scheduleRestart()
}

func (a *Adapter) scheduleRestart() {
	a.mu.Lock()
	d := a.delay
	stopTimer(a.restartTimer)
	a.restartTimer = time.AfterFunc(d, func() {
		a.mu.Lock()
		ok := a.enabled && a.speaking == 0
		a.mu.Unlock()
		if !ok {
			return
		}
		if err := a.rec.Start(a); err != nil {
			a.logger.Warn("recognition restart failed", "error", err)
			a.OnError(ErrAudioCapture)
			a.scheduleRestart()
		}
	})
	a.mu.Unlock()
}

// flush promotes the buffered interim hypothesis to an utterance.
func (a *Adapter) flush() {
	a.mu.Lock()
	text := a.pending
	a.pending = ""
	ok := a.enabled && a.speaking == 0
	a.mu.Unlock()

	if ok && text != "" && a.handler != nil {
		a.handler(text)
	}
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}

// Verify the adapter satisfies the recognizer sink at compile time.
var _ Sink = (*Adapter)(nil)
