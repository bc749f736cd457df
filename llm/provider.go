// Package llm provides LLM provider abstractions.
//
// LLM Provider interface - the abstract interface for LLM providers.
// Each provider implementation hides:
// - API client initialization and authentication
// - Request/response format conversion
// - Provider-specific error classification

package llm

import (
	"context"
)

// Provider defines the abstract interface for LLM providers.
// Implementations perform exactly one network attempt per Complete
// call and classify failures via RequestError; retry policy belongs to
// the caller.
type Provider interface {
	// Name returns the provider name (for logging/debugging).
	Name() string

	// Model returns the current model being used.
	Model() string

	// Complete turns the ordered conversation into a single text reply.
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}
