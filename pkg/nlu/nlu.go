// Package nlu resolves utterances the local pattern parser could not,
// by asking a language model to classify them.
//
// Resolvers share one request/result envelope so providers are
// interchangeable. A Chain tries providers in order and degrades to a
// safe low-confidence result instead of failing: the assistant must
// always have something to say.
package nlu

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Sentinel errors returned by resolvers.
var (
	// ErrUnavailable means the provider could not be reached or refused
	// the request. The caller may try another resolver.
	ErrUnavailable = errors.New("nlu: provider unavailable")

	// ErrBadResponse means the provider answered with something that is
	// not the expected JSON envelope.
	ErrBadResponse = errors.New("nlu: malformed provider response")
)

// Turn is one prior exchange in the conversation.
type Turn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// Request carries the utterance plus the context a model needs to
// disambiguate it.
type Request struct {
	UserText            string            `json:"userText"`
	CurrentStep         int               `json:"currentStep"`
	ConversationHistory []Turn            `json:"conversationHistory,omitempty"`
	FormData            map[string]string `json:"formDataSnapshot,omitempty"`
	CurrentPage         string            `json:"currentPage"`
	SessionID           string            `json:"sessionId"`
}

// Action is the optional side effect a resolved intent asks for.
type Action struct {
	Type          string            `json:"type,omitempty"`
	NavigateTo    string            `json:"navigateTo,omitempty"`
	ExtractedData map[string]string `json:"extractedData,omitempty"`
	NextStep      int               `json:"nextStep,omitempty"`
}

// Result is the resolved interpretation of one utterance.
type Result struct {
	Intent        string  `json:"intent"`
	Action        *Action `json:"action,omitempty"`
	Response      string  `json:"response"`
	Confidence    float64 `json:"confidence"`
	NeedsMoreInfo bool    `json:"needsMoreInfo,omitempty"`
}

// Resolver interprets one utterance. Implementations must be safe for
// concurrent use.
type Resolver interface {
	// Resolve returns the interpretation or an error the caller can act
	// on. Implementations must respect ctx cancellation.
	Resolve(ctx context.Context, req Request) (Result, error)

	// Name identifies the resolver in logs.
	Name() string
}

// SafeDefault is the canned result used when no resolver can help. The
// low confidence tells the caller not to act on it beyond replying.
func SafeDefault() Result {
	return Result{
		Intent:     "unclear",
		Response:   "Sorry, could you repeat that?",
		Confidence: 0.3,
	}
}

// ParseModelJSON extracts the Result envelope from raw model output,
// tolerating markdown code fences and surrounding prose.
func ParseModelJSON(raw string) (Result, error) {
	text := strings.TrimSpace(raw)
	if i := strings.Index(text, "{"); i >= 0 {
		if j := strings.LastIndex(text, "}"); j > i {
			text = text[i : j+1]
		}
	}

	var res Result
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		return Result{}, ErrBadResponse
	}
	if strings.TrimSpace(res.Intent) == "" {
		return Result{}, ErrBadResponse
	}
	if res.Confidence < 0 {
		res.Confidence = 0
	}
	if res.Confidence > 1 {
		res.Confidence = 1
	}
	if strings.TrimSpace(res.Response) == "" {
		res.Response = SafeDefault().Response
	}
	return res, nil
}
