// Package assistant wires the resolve → execute → reduce pipeline behind the
// chat transport. It holds no per-request state; one Assistant serves any
// number of concurrent conversations.
package assistant

import (
	"context"
	"errors"

	contractx "github.com/fiberlux/odoo-assistant/assistant/contract"
	intentx "github.com/fiberlux/odoo-assistant/assistant/intent"
	reducex "github.com/fiberlux/odoo-assistant/assistant/reduce"
)

type Assistant struct {
	gateway contractx.Gateway
}

func New(gateway contractx.Gateway) (*Assistant, error) {
	if gateway == nil {
		return nil, errors.New("backend gateway is required")
	}
	return &Assistant{gateway: gateway}, nil
}

// HandleCommand resolves a structured command and returns the display text:
// either the rejection message or the reduced backend response.
func (a *Assistant) HandleCommand(ctx context.Context, name string, args []string) string {
	q, rejection := intentx.ResolveCommand(name, args)
	if rejection != nil {
		return rejection.Message
	}
	return a.Run(ctx, q)
}

// HandleText resolves free-form text (typed or transcribed) the same way.
func (a *Assistant) HandleText(ctx context.Context, text string) string {
	q, rejection := intentx.ResolveText(text)
	if rejection != nil {
		return rejection.Message
	}
	return a.Run(ctx, q)
}

// Run executes an already-resolved query and reduces its result.
func (a *Assistant) Run(ctx context.Context, q contractx.Query) string {
	result := a.gateway.Execute(ctx, q)
	return reducex.Reduce(result, q.Kind)
}
