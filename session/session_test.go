package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/chatcli/chatcli/llm"
	"github.com/chatcli/chatcli/storage"
)

// scriptedProvider fails a fixed number of times before succeeding.
type scriptedProvider struct {
	failures int
	failWith error
	reply    string
	calls    int
}

func (p *scriptedProvider) Name() string  { return "scripted" }
func (p *scriptedProvider) Model() string { return "test-model" }

func (p *scriptedProvider) Complete(ctx context.Context, messages []llm.ChatMessage) (string, error) {
	p.calls++
	if p.calls <= p.failures {
		return "", p.failWith
	}
	return p.reply, nil
}

func newTestSession(t *testing.T, provider llm.Provider) (*Session, *storage.HistoryStore) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	sess := New(llm.NewClient(provider), store, zerolog.Nop())
	sess.delay = time.Millisecond
	return sess, store
}

func TestAskSuccess(t *testing.T) {
	provider := &scriptedProvider{reply: "4"}
	sess, store := newTestSession(t, provider)
	ctx := context.Background()

	answer, err := sess.Ask(ctx, "2+2?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer != "4" {
		t.Errorf("expected answer '4', got %q", answer)
	}

	turns := sess.Turns()
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != llm.RoleUser || turns[0].Content != "2+2?" {
		t.Errorf("unexpected user turn: %+v", turns[0])
	}
	if turns[1].Role != llm.RoleAssistant || turns[1].Content != "4" {
		t.Errorf("unexpected assistant turn: %+v", turns[1])
	}

	last, err := store.Last(ctx)
	if err != nil {
		t.Fatalf("Last failed: %v", err)
	}
	if last.Question != "2+2?" || last.Answer != "4" {
		t.Errorf("unexpected persisted exchange: %+v", last)
	}
}

func TestAskRetriesTransientFailures(t *testing.T) {
	provider := &scriptedProvider{
		failures: 3,
		failWith: llm.NewRequestError(llm.KindTransientConnection, errors.New("connection reset")),
		reply:    "eventually",
	}
	sess, store := newTestSession(t, provider)
	ctx := context.Background()

	answer, err := sess.Ask(ctx, "are you there?")
	if err != nil {
		t.Fatalf("Ask failed after transient errors: %v", err)
	}
	if answer != "eventually" {
		t.Errorf("expected 'eventually', got %q", answer)
	}
	if provider.calls != 4 {
		t.Errorf("expected 4 attempts, got %d", provider.calls)
	}

	// Exactly one record despite four attempts.
	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected exactly 1 persisted exchange, got %d", len(all))
	}

	// The retried attempts reused the same turn list: one user turn.
	turns := sess.Turns()
	if len(turns) != 2 {
		t.Errorf("expected 2 turns after retries, got %d", len(turns))
	}
}

func TestAskFatalErrorPersistsNothing(t *testing.T) {
	kinds := []llm.ErrorKind{
		llm.KindRateLimited,
		llm.KindAuthFailed,
		llm.KindInvalidRequest,
		llm.KindUnknown,
	}

	for _, kind := range kinds {
		provider := &scriptedProvider{
			failures: 1,
			failWith: llm.NewRequestError(kind, errors.New("boom")),
		}
		sess, store := newTestSession(t, provider)
		ctx := context.Background()

		_, err := sess.Ask(ctx, "question")
		if err == nil {
			t.Fatalf("kind %v: expected error", kind)
		}
		if llm.KindOf(err) != kind {
			t.Errorf("kind %v: classification lost, got %v", kind, llm.KindOf(err))
		}
		if provider.calls != 1 {
			t.Errorf("kind %v: expected single attempt, got %d", kind, provider.calls)
		}
		if _, err := store.All(ctx); !errors.Is(err, storage.ErrEmptyHistory) {
			t.Errorf("kind %v: failed exchange was persisted", kind)
		}
	}
}

func TestAskCancelledDuringRetryWait(t *testing.T) {
	provider := &scriptedProvider{
		failures: 1 << 30, // never succeeds
		failWith: llm.NewRequestError(llm.KindTransientConnection, errors.New("connection refused")),
	}
	sess, store := newTestSession(t, provider)
	sess.delay = time.Minute // cancellation must cut the wait short

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := sess.Ask(ctx, "question")
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Ask did not return after cancellation")
	}

	if _, err := store.All(context.Background()); !errors.Is(err, storage.ErrEmptyHistory) {
		t.Error("cancelled exchange was persisted")
	}
}

func TestAskEmptyTextSentAsIs(t *testing.T) {
	provider := &scriptedProvider{reply: "hmm?"}
	sess, _ := newTestSession(t, provider)

	if _, err := sess.Ask(context.Background(), ""); err != nil {
		t.Fatalf("Ask with empty text failed: %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("expected the empty question to reach the provider, calls = %d", provider.calls)
	}
	turns := sess.Turns()
	if turns[0].Content != "" {
		t.Errorf("empty content was modified: %q", turns[0].Content)
	}
}
