package nlu

import (
	"context"
	"log/slog"
)

// Chain tries resolvers in order until one succeeds. If every resolver
// fails the chain returns SafeDefault rather than an error, so callers
// always get a speakable result.
type Chain struct {
	resolvers []Resolver
	logger    *slog.Logger
}

// NewChain creates a chain over the given resolvers, tried in order.
func NewChain(resolvers ...Resolver) *Chain {
	return &Chain{
		resolvers: resolvers,
		logger:    slog.Default().With("component", "nlu", "provider", "chain"),
	}
}

func (c *Chain) Name() string { return "chain" }

// Resolve walks the chain. Context cancellation stops the walk and is
// returned as-is so callers can tell shutdown from provider failure.
func (c *Chain) Resolve(ctx context.Context, req Request) (Result, error) {
	for _, r := range c.resolvers {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		res, err := r.Resolve(ctx, req)
		if err == nil {
			c.logger.Debug("resolved", "by", r.Name(), "intent", res.Intent, "confidence", res.Confidence)
			return res, nil
		}
		c.logger.Warn("resolver failed, trying next", "resolver", r.Name(), "error", err)
	}
	return SafeDefault(), nil
}

var _ Resolver = (*Chain)(nil)
