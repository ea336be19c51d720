package assistant

import (
	"context"

	"github.com/acetransit/voicekit/pkg/nlu"
)

// IntentResolver is the strategy for utterances the local pattern parser
// cannot classify. Two strategies exist: pattern-only, which re-prompts,
// and hybrid, which consults a remote NLU resolver first. Hybrid is the
// default because local parsing already handled the cheap cases.
type IntentResolver interface {
	Name() string

	// Fallback interprets an unparsed utterance. It must always return
	// a speakable result; total failure degrades to nlu.SafeDefault.
	Fallback(ctx context.Context, req nlu.Request) nlu.Result
}

// PatternResolver never escalates. Anything the pattern set does not
// cover gets the canned re-prompt.
type PatternResolver struct{}

func (PatternResolver) Name() string { return "pattern" }

func (PatternResolver) Fallback(context.Context, nlu.Request) nlu.Result {
	return nlu.SafeDefault()
}

// HybridResolver escalates to a remote NLU resolver, usually a chain
// ending in the offline heuristic.
type HybridResolver struct {
	nlu nlu.Resolver
}

// NewHybridResolver wraps an NLU resolver as the escalation strategy.
func NewHybridResolver(r nlu.Resolver) *HybridResolver {
	return &HybridResolver{nlu: r}
}

func (h *HybridResolver) Name() string { return "hybrid" }

func (h *HybridResolver) Fallback(ctx context.Context, req nlu.Request) nlu.Result {
	res, err := h.nlu.Resolve(ctx, req)
	if err != nil {
		return nlu.SafeDefault()
	}
	return res
}

// Compile-time strategy checks.
var (
	_ IntentResolver = (*PatternResolver)(nil)
	_ IntentResolver = (*HybridResolver)(nil)
)
