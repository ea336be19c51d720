// Package speech defines the speech I/O boundary and the session adapter
// that keeps continuous recognition alive around it.
//
// Recognizers push interim and final transcripts to a Sink until stopped
// or until a terminal error. Synthesizers play one utterance at a time.
// The Adapter owns the lifecycle policy: auto-restart with exponential
// backoff, transcript settling, and the rule that the assistant never
// listens to its own voice.
package speech

import "context"

// Result is one recognition hypothesis. Interim results may be revised;
// final results are stable and safe to act on.
type Result struct {
	Transcript string
	Final      bool
}

// ErrCode classifies recognition session errors.
type ErrCode string

const (
	// ErrNoSpeech means the session ended without hearing anything.
	ErrNoSpeech ErrCode = "no-speech"

	// ErrAborted means the session was cancelled, usually by Abort.
	ErrAborted ErrCode = "aborted"

	// ErrAudioCapture means the microphone could not be read.
	ErrAudioCapture ErrCode = "audio-capture"

	// ErrNetwork means the recognition backend was unreachable.
	ErrNetwork ErrCode = "network"

	// ErrNotAllowed means microphone permission was denied.
	ErrNotAllowed ErrCode = "not-allowed"
)

// Transient reports whether the session may be retried after this error.
// Permission denials are permanent until the user intervenes.
func (c ErrCode) Transient() bool {
	return c != ErrNotAllowed
}

// Sink receives the event stream of one recognition session. Events for a
// session arrive on a single goroutine; OnEnd is always the last event.
type Sink interface {
	OnResult(r Result)
	OnError(code ErrCode)
	OnEnd()
}

// Recognizer is a single-session speech source. Start begins a session
// that delivers events to the sink until the source ends it or Abort is
// called. A Recognizer runs at most one session at a time.
type Recognizer interface {
	Start(sink Sink) error
	Abort()
}

// Synthesizer voices one utterance, blocking until playback finishes or
// the context is cancelled. Implementations queue internally if needed.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}
