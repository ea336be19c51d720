package speech

import (
	"context"
	"sync"
	"testing"
	"time"
)

// capture collects handler invocations safely across goroutines.
type capture struct {
	mu  sync.Mutex
	got []string
}

func (c *capture) handler(text string) {
	c.mu.Lock()
	c.got = append(c.got, text)
	c.mu.Unlock()
}

func (c *capture) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.got))
	copy(out, c.got)
	return out
}

func newTestAdapter(t *testing.T, rec *MockRecognizer, syn *MockSynthesizer, c *capture) *Adapter {
	t.Helper()
	a := NewAdapter(rec, syn, c.handler,
		WithSettleDelay(10*time.Millisecond),
		WithRestartBackoff(time.Millisecond, 4*time.Millisecond),
	)
	if err := a.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(a.Stop)
	return a
}

// Final results go downstream right away, with no settle latency.
func TestFinalDispatchedImmediately(t *testing.T) {
	rec := &MockRecognizer{}
	c := &capture{}
	a := NewAdapter(rec, &MockSynthesizer{}, c.handler,
		WithSettleDelay(time.Hour),
	)
	if err := a.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(a.Stop)

	rec.Sink().OnResult(Result{Transcript: "start booking", Final: true})

	got := c.all()
	if len(got) != 1 || got[0] != "start booking" {
		t.Fatalf("handler got %v, want the final with no delay", got)
	}
}

// An engine that keeps revising but never finalizes still produces one
// utterance: the newest hypothesis, after the settle window.
func TestStableInterimPromoted(t *testing.T) {
	rec := &MockRecognizer{}
	c := &capture{}
	newTestAdapter(t, rec, &MockSynthesizer{}, c)

	sink := rec.Sink()
	sink.OnResult(Result{Transcript: "sender name", Final: false})
	sink.OnResult(Result{Transcript: "sender name is ali", Final: false})

	time.Sleep(100 * time.Millisecond)

	got := c.all()
	if len(got) != 1 || got[0] != "sender name is ali" {
		t.Fatalf("handler got %v, want the newest hypothesis promoted", got)
	}
}

// A final that does arrive cancels the buffered interim: one utterance,
// never both.
func TestFinalSupersedesBufferedInterim(t *testing.T) {
	rec := &MockRecognizer{}
	c := &capture{}
	newTestAdapter(t, rec, &MockSynthesizer{}, c)

	sink := rec.Sink()
	sink.OnResult(Result{Transcript: "sender na", Final: false})
	sink.OnResult(Result{Transcript: "sender name", Final: true})

	time.Sleep(100 * time.Millisecond)

	got := c.all()
	if len(got) != 1 || got[0] != "sender name" {
		t.Fatalf("handler got %v, want only the final", got)
	}
}

func TestInterimNotDeliveredBeforeSettle(t *testing.T) {
	rec := &MockRecognizer{}
	c := &capture{}
	interims := &capture{}
	a := NewAdapter(rec, &MockSynthesizer{}, c.handler,
		WithSettleDelay(time.Hour),
		WithInterimHandler(interims.handler),
	)
	if err := a.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(a.Stop)

	rec.Sink().OnResult(Result{Transcript: "sende", Final: false})
	time.Sleep(50 * time.Millisecond)

	if got := c.all(); len(got) != 0 {
		t.Fatalf("unsettled interim reached the handler: %v", got)
	}
	if got := interims.all(); len(got) != 1 || got[0] != "sende" {
		t.Fatalf("interim handler got %v", got)
	}
}

// Repeated no-speech endings restart listening rather than killing it.
func TestNoSpeechSelfHeals(t *testing.T) {
	rec := &MockRecognizer{}
	c := &capture{}
	a := newTestAdapter(t, rec, &MockSynthesizer{}, c)

	for i := 0; i < 5; i++ {
		sink := rec.Sink()
		sink.OnError(ErrNoSpeech)
		sink.OnEnd()
		time.Sleep(20 * time.Millisecond)
	}

	if !a.Listening() {
		t.Fatal("adapter gave up after no-speech errors")
	}
	if rec.Starts() < 6 {
		t.Fatalf("starts = %d, want restarts after each end", rec.Starts())
	}

	// Recognition still works after healing.
	rec.Sink().OnResult(Result{Transcript: "help", Final: true})
	time.Sleep(50 * time.Millisecond)
	if got := c.all(); len(got) != 1 || got[0] != "help" {
		t.Fatalf("handler got %v after recovery", got)
	}
}

func TestPermissionDeniedDisables(t *testing.T) {
	rec := &MockRecognizer{}
	a := newTestAdapter(t, rec, &MockSynthesizer{}, &capture{})

	starts := rec.Starts()
	sink := rec.Sink()
	sink.OnError(ErrNotAllowed)
	sink.OnEnd()
	time.Sleep(30 * time.Millisecond)

	if a.Listening() {
		t.Fatal("adapter still listening after permission denial")
	}
	if rec.Starts() != starts {
		t.Fatal("adapter restarted after a terminal error")
	}
}

// Playback pauses recognition, drops anything heard meanwhile, and
// resumes afterwards.
func TestSpeakPausesRecognition(t *testing.T) {
	release := make(chan struct{})
	syn := &MockSynthesizer{
		SpeakFunc: func(ctx context.Context, text string) error {
			<-release
			return nil
		},
	}
	rec := &MockRecognizer{}
	c := &capture{}
	a := newTestAdapter(t, rec, syn, c)

	startsBefore := rec.Starts()
	a.Speak("Sender name?")

	if rec.Aborts() == 0 {
		t.Fatal("recognition not aborted for playback")
	}

	// Anything recognized mid-playback is an echo and must be dropped.
	sink := rec.Sink()
	sink.OnError(ErrAborted)
	sink.OnEnd()
	sink.OnResult(Result{Transcript: "sender name", Final: true})

	close(release)
	time.Sleep(50 * time.Millisecond)

	if got := c.all(); len(got) != 0 {
		t.Fatalf("echo reached the handler: %v", got)
	}
	if rec.Starts() != startsBefore+1 {
		t.Fatalf("starts = %d, want resume after playback", rec.Starts())
	}
	if got := syn.Spoken(); len(got) != 1 || got[0] != "Sender name?" {
		t.Fatalf("spoken = %v", got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	rec := &MockRecognizer{}
	a := newTestAdapter(t, rec, &MockSynthesizer{}, &capture{})

	a.Stop()
	a.Stop()

	if a.Listening() {
		t.Fatal("still listening after Stop")
	}

	// Stray events after Stop are ignored.
	sink := rec.Sink()
	sink.OnEnd()
	time.Sleep(20 * time.Millisecond)
	if rec.Starts() != 1 {
		t.Fatalf("starts = %d, want no restart after Stop", rec.Starts())
	}
}
