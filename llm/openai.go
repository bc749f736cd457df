// OpenAI Provider implementation using go-openai library.
//
// Information Hiding:
// - API endpoint and authentication
// - Request shape selection: chat-capable models get the full turn
//   sequence, legacy models get only the latest prompt
// - Error classification for OpenAI-compatible APIs

package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements the Provider interface for OpenAI.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	chatModels  map[string]struct{}
}

// NewOpenAIProvider creates a new OpenAI provider. chatModels lists the
// model identifiers that speak the multi-turn chat API; any other
// model is driven through the legacy completions API.
func NewOpenAIProvider(apiKey, model string, maxTokens uint32, temperature float32, chatModels []string) *OpenAIProvider {
	set := make(map[string]struct{}, len(chatModels))
	for _, m := range chatModels {
		set[m] = struct{}{}
	}

	return &OpenAIProvider{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   int(maxTokens),
		temperature: temperature,
		chatModels:  set,
	}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Model returns the current model.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Complete sends the conversation and returns the reply text.
func (p *OpenAIProvider) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	if p.isChatModel() {
		return p.chatComplete(ctx, messages)
	}
	return p.promptComplete(ctx, messages)
}

func (p *OpenAIProvider) isChatModel() bool {
	_, ok := p.chatModels[p.model]
	return ok
}

// chatComplete sends the full ordered turn sequence.
func (p *OpenAIProvider) chatComplete(ctx context.Context, messages []ChatMessage) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    convertToOpenAIMessages(messages),
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyOpenAI(fmt.Errorf("chat completion failed: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "", NewRequestError(KindUnknown, errors.New("no choices in chat completion response"))
	}
	return resp.Choices[0].Message.Content, nil
}

// promptComplete sends only the most recent turn's content as a flat
// prompt, with temperature and max tokens from configuration.
func (p *OpenAIProvider) promptComplete(ctx context.Context, messages []ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", NewRequestError(KindInvalidRequest, errors.New("no messages to complete"))
	}

	req := openai.CompletionRequest{
		Model:       p.model,
		Prompt:      messages[len(messages)-1].Content,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	}

	resp, err := p.client.CreateCompletion(ctx, req)
	if err != nil {
		return "", classifyOpenAI(fmt.Errorf("completion failed: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "", NewRequestError(KindUnknown, errors.New("no choices in completion response"))
	}
	return resp.Choices[0].Text, nil
}

// classifyOpenAI maps go-openai failures onto the error taxonomy.
// Shared with the DeepSeek provider, which speaks the same API.
func classifyOpenAI(err error) error {
	if isCancellation(err) {
		return err
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return NewRequestError(classifyStatus(apiErr.HTTPStatusCode), err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return NewRequestError(classifyStatus(reqErr.HTTPStatusCode), err)
	}

	if isConnectionError(err) {
		return NewRequestError(KindTransientConnection, err)
	}
	return NewRequestError(KindUnknown, err)
}

// convertToOpenAIMessages converts our ChatMessage to openai.ChatCompletionMessage
func convertToOpenAIMessages(messages []ChatMessage) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		result[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}
	return result
}

// Verify OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)
