package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorKind
	}{
		{401, KindAuthFailed},
		{403, KindAuthFailed},
		{429, KindRateLimited},
		{529, KindRateLimited},
		{400, KindInvalidRequest},
		{404, KindInvalidRequest},
		{422, KindInvalidRequest},
		{500, KindUnknown},
		{503, KindUnknown},
	}

	for _, c := range cases {
		if got := classifyStatus(c.status); got != c.want {
			t.Errorf("classifyStatus(%d) = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	err := NewRequestError(KindRateLimited, errors.New("quota exhausted"))
	if KindOf(err) != KindRateLimited {
		t.Errorf("expected KindRateLimited, got %v", KindOf(err))
	}

	wrapped := fmt.Errorf("request failed: %w", err)
	if KindOf(wrapped) != KindRateLimited {
		t.Errorf("classification lost through wrapping, got %v", KindOf(wrapped))
	}

	if KindOf(errors.New("plain")) != KindUnknown {
		t.Error("unclassified error should be KindUnknown")
	}
}

func TestRequestErrorPreservesCause(t *testing.T) {
	cause := errors.New("underlying engine error")
	err := NewRequestError(KindUnknown, cause)

	if !errors.Is(err, cause) {
		t.Error("original cause not reachable via errors.Is")
	}
	if err.Error() == cause.Error() {
		t.Error("error message should include the classification")
	}
}

func TestClassifyOpenAIAPIError(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorKind
	}{
		{401, KindAuthFailed},
		{429, KindRateLimited},
		{400, KindInvalidRequest},
		{500, KindUnknown},
	}

	for _, c := range cases {
		apiErr := &openai.APIError{HTTPStatusCode: c.status, Message: "nope"}
		classified := classifyOpenAI(fmt.Errorf("chat completion failed: %w", apiErr))
		if KindOf(classified) != c.want {
			t.Errorf("status %d: expected %v, got %v", c.status, c.want, KindOf(classified))
		}
	}
}

func TestClassifyOpenAINetworkError(t *testing.T) {
	netErr := &url.Error{
		Op:  "Post",
		URL: "https://api.openai.com/v1/chat/completions",
		Err: &net.OpError{Op: "dial", Err: errors.New("connection refused")},
	}
	classified := classifyOpenAI(fmt.Errorf("chat completion failed: %w", netErr))
	if KindOf(classified) != KindTransientConnection {
		t.Errorf("expected KindTransientConnection, got %v", KindOf(classified))
	}
}

func TestClassifyOpenAICancellationNotReclassified(t *testing.T) {
	err := fmt.Errorf("chat completion failed: %w", context.Canceled)
	classified := classifyOpenAI(err)
	if !errors.Is(classified, context.Canceled) {
		t.Error("cancellation should survive classification")
	}
	if KindOf(classified) == KindTransientConnection {
		t.Error("cancellation must not be treated as retryable")
	}
}

func TestClassifyOpenAIUnknownFallback(t *testing.T) {
	classified := classifyOpenAI(errors.New("something odd"))
	if KindOf(classified) != KindUnknown {
		t.Errorf("expected KindUnknown, got %v", KindOf(classified))
	}
}
