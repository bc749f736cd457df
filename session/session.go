// Package session orchestrates one question/answer exchange at a time.
//
// The session owns the in-memory turn list for the life of the
// process. It drives the completion client, applies the retry policy
// for transient connection failures, and persists successful exchanges
// to the history store. Retry policy lives here and nowhere else: the
// client performs exactly one attempt per call.

package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chatcli/chatcli/llm"
	"github.com/chatcli/chatcli/storage"
)

// retryDelay is the fixed wait between attempts after a transient
// connection failure.
const retryDelay = 3 * time.Second

// Session holds the rolling conversation context. The turn list grows
// for the life of the process and is never truncated or reordered;
// only question/answer pairs are persisted, not the sequence itself.
type Session struct {
	client *llm.Client
	store  *storage.HistoryStore
	turns  []llm.ChatMessage
	log    zerolog.Logger
	delay  time.Duration
}

// New creates a session backed by the given client and store.
func New(client *llm.Client, store *storage.HistoryStore, log zerolog.Logger) *Session {
	return &Session{
		client: client,
		store:  store,
		log:    log.With().Str("session_id", uuid.NewString()).Logger(),
		delay:  retryDelay,
	}
}

// Turns returns a copy of the current turn list.
func (s *Session) Turns() []llm.ChatMessage {
	turns := make([]llm.ChatMessage, len(s.turns))
	copy(turns, s.turns)
	return turns
}

// Ask appends userText as a user turn, obtains a completion and
// persists the exchange. Transient connection failures are retried
// against the same already-appended turn list, without bound, until
// success, a different failure kind, or ctx cancellation. Nothing is
// written to the store unless the exchange succeeds.
func (s *Session) Ask(ctx context.Context, userText string) (string, error) {
	s.turns = append(s.turns, llm.UserMessage(userText))

	for {
		reply, err := s.client.Complete(ctx, s.turns)
		if err == nil {
			s.turns = append(s.turns, llm.AssistantMessage(reply))
			if insertErr := s.store.Insert(ctx, userText, reply); insertErr != nil {
				return "", insertErr
			}
			return reply, nil
		}

		if llm.KindOf(err) != llm.KindTransientConnection {
			return "", err
		}

		s.log.Warn().Err(err).Dur("retry_in", s.delay).Msg("connection error, retrying")
		if waitErr := sleepContext(ctx, s.delay); waitErr != nil {
			return "", waitErr
		}
	}
}

// sleepContext waits for d but returns early when ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
