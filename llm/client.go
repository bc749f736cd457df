// Client - Simple wrapper around providers.

package llm

import (
	"context"
)

// Client wraps a Provider with a simple interface.
type Client struct {
	provider Provider
}

// NewClient creates a new LLM client from a provider.
func NewClient(provider Provider) *Client {
	return &Client{provider: provider}
}

// Complete sends the conversation to the provider and returns the
// reply text.
func (c *Client) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	return c.provider.Complete(ctx, messages)
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}
