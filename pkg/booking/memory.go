package booking

import "sync"

// MemoryForm is an in-memory FormStore used by tests and the bridge demo.
// It applies set-field events with last-write-wins semantics and tracks the
// current step the way the host form would.
type MemoryForm struct {
	mu     sync.RWMutex
	fields map[string]string
	step   int
}

// NewMemoryForm creates an empty form at step 1.
func NewMemoryForm() *MemoryForm {
	return &MemoryForm{
		fields: make(map[string]string),
		step:   FirstStep,
	}
}

// GetField returns the current value for a field, or "".
func (f *MemoryForm) GetField(id string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fields[id]
}

// SetField writes a field value.
func (f *MemoryForm) SetField(id, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields[id] = value
}

// Apply applies a set-field event.
func (f *MemoryForm) Apply(ev SetFieldEvent) {
	f.SetField(ev.Field, ev.Value)
}

// Step returns the current step.
func (f *MemoryForm) Step() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.step
}

// Advance moves to the next step, capped at LastStep. Returns the new step.
func (f *MemoryForm) Advance() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step < LastStep {
		f.step++
	}
	return f.step
}

// Back moves to the previous step, floored at FirstStep. Returns the new step.
func (f *MemoryForm) Back() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step > FirstStep {
		f.step--
	}
	return f.step
}

// Verify MemoryForm implements FormStore at compile time.
var _ FormStore = (*MemoryForm)(nil)
