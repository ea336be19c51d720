package speech

import (
	"context"
	"sync"
)

// MockRecognizer is a controllable Recognizer for tests. Tests drive the
// event stream through the sink captured by the last Start call.
type MockRecognizer struct {
	// StartFunc optionally overrides Start behavior.
	StartFunc func(sink Sink) error

	mu     sync.Mutex
	sink   Sink
	starts int
	aborts int
}

func (m *MockRecognizer) Start(sink Sink) error {
	m.mu.Lock()
	m.sink = sink
	m.starts++
	m.mu.Unlock()
	if m.StartFunc != nil {
		return m.StartFunc(sink)
	}
	return nil
}

func (m *MockRecognizer) Abort() {
	m.mu.Lock()
	m.aborts++
	m.mu.Unlock()
}

// Sink returns the sink from the most recent Start call.
func (m *MockRecognizer) Sink() Sink {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sink
}

// Starts returns how many sessions were started.
func (m *MockRecognizer) Starts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.starts
}

// Aborts returns how many times Abort was called.
func (m *MockRecognizer) Aborts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.aborts
}

// MockSynthesizer records spoken text for tests.
type MockSynthesizer struct {
	// SpeakFunc optionally overrides Speak behavior, e.g. to block until
	// released or to return an error.
	SpeakFunc func(ctx context.Context, text string) error

	mu     sync.Mutex
	spoken []string
}

func (m *MockSynthesizer) Speak(ctx context.Context, text string) error {
	m.mu.Lock()
	m.spoken = append(m.spoken, text)
	m.mu.Unlock()
	if m.SpeakFunc != nil {
		return m.SpeakFunc(ctx, text)
	}
	return nil
}

// Spoken returns a copy of everything spoken so far.
func (m *MockSynthesizer) Spoken() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.spoken))
	copy(out, m.spoken)
	return out
}

// Compile-time interface checks.
var (
	_ Recognizer  = (*MockRecognizer)(nil)
	_ Synthesizer = (*MockSynthesizer)(nil)
)
