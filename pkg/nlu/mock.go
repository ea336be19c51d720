package nlu

import (
	"context"
	"sync"
)

// MockResolver is a scriptable Resolver for tests.
type MockResolver struct {
	// ResolveFunc overrides Resolve; when nil, SafeDefault is returned.
	ResolveFunc func(ctx context.Context, req Request) (Result, error)

	// NameValue is returned by Name, defaulting to "mock".
	NameValue string

	mu    sync.Mutex
	calls []Request
}

func (m *MockResolver) Resolve(ctx context.Context, req Request) (Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, req)
	}
	return SafeDefault(), nil
}

func (m *MockResolver) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

// Calls returns a copy of the recorded requests.
func (m *MockResolver) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

var _ Resolver = (*MockResolver)(nil)
