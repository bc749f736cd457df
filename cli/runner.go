// Command execution for CLI commands.
//
// Information Hiding:
// - Settings/provider/store wiring hidden
// - Output formatting hidden
//
// The ask paths build a full session; the history commands open only
// the store and never touch a provider.

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/chatcli/chatcli/config"
	"github.com/chatcli/chatcli/internal/logging"
	"github.com/chatcli/chatcli/llm"
	"github.com/chatcli/chatcli/session"
	"github.com/chatcli/chatcli/storage"
)

// Options holds CLI execution options. Zero values defer to settings
// loaded from the environment.
type Options struct {
	Provider string
	Model    string
	DBPath   string
	LogLevel string
}

// loadSettings resolves settings from the environment and applies
// flag overrides.
func loadSettings(opts Options) (config.Settings, error) {
	settings, err := config.New(opts.Provider)
	if err != nil {
		return config.Settings{}, err
	}
	if opts.Model != "" {
		settings.LLM.Model = opts.Model
	}
	if opts.DBPath != "" {
		settings.History.Path = opts.DBPath
	}
	if opts.LogLevel != "" {
		settings.LogLevel = opts.LogLevel
	}
	return settings, nil
}

// newSession wires provider, store and logger into a session.
func newSession(opts Options) (*session.Session, error) {
	settings, err := loadSettings(opts)
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(llm.ProviderConfig{
		Provider:    settings.LLM.Provider,
		Model:       settings.LLM.Model,
		APIKey:      settings.LLM.APIKey,
		MaxTokens:   settings.LLM.MaxTokens,
		Temperature: float32(settings.LLM.Temperature),
		ChatModels:  settings.LLM.ChatModels,
	})
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(settings.History.Path)
	if err != nil {
		return nil, err
	}

	log := logging.NewStderr(settings.LogLevel)
	return session.New(llm.NewClient(provider), store, log), nil
}

// openStore opens only the history store, for commands that never
// touch a provider.
func openStore(opts Options) (*storage.HistoryStore, zerolog.Logger, error) {
	settings, err := loadSettings(opts)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	store, err := storage.Open(settings.History.Path)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	return store, logging.NewStderr(settings.LogLevel), nil
}

// Ask answers a single question and exits. An exit keyword ends the
// process successfully before any network call.
func Ask(ctx context.Context, question string, opts Options) error {
	in := session.Parse(question)
	if in.Kind == session.KindQuit {
		return nil
	}

	sess, err := newSession(opts)
	if err != nil {
		return err
	}

	answer, err := sess.Ask(ctx, in.Text)
	if err != nil {
		return err
	}

	renderAnswer(os.Stdout, answer)
	return nil
}

// Interactive runs the prompt/read/answer loop until quit or EOF.
func Interactive(ctx context.Context, opts Options) error {
	sess, err := newSession(opts)
	if err != nil {
		return err
	}
	return runPrompt(ctx, sess, os.Stdin, os.Stdout)
}

// runPrompt drives the read/answer loop. Input lines arrive on a
// channel so an interrupt cuts short a prompt waiting for input, not
// only an exchange in flight.
func runPrompt(ctx context.Context, sess *session.Session, r io.Reader, w io.Writer) error {
	input := readLines(r)
	for {
		fmt.Fprint(w, "Ask a question: ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return ctx.Err()
		case res, ok := <-input:
			if !ok {
				return nil
			}
			if res.err != nil {
				return res.err
			}

			in := session.Parse(res.text)
			if in.Kind == session.KindQuit {
				return nil
			}

			answer, err := sess.Ask(ctx, in.Text)
			if err != nil {
				return err
			}
			renderAnswer(w, answer)
		}
	}
}

// lineResult is one scanned line or the scanner's terminal error.
type lineResult struct {
	text string
	err  error
}

// readLines scans r line by line into a channel, closing it on EOF.
// When the receiver stops reading the goroutine stays blocked in Read;
// the process is exiting in that case.
func readLines(r io.Reader) <-chan lineResult {
	ch := make(chan lineResult)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			ch <- lineResult{text: scanner.Text()}
		}
		if err := scanner.Err(); err != nil {
			ch <- lineResult{err: err}
		}
	}()
	return ch
}

// History prints every stored exchange, oldest first.
func History(ctx context.Context, opts Options) error {
	store, _, err := openStore(opts)
	if err != nil {
		return err
	}

	exchanges, err := store.All(ctx)
	if err != nil {
		return err
	}

	renderHistory(os.Stdout, exchanges)
	return nil
}

// Last prints the most recent exchange.
func Last(ctx context.Context, opts Options) error {
	store, _, err := openStore(opts)
	if err != nil {
		return err
	}

	exchange, err := store.Last(ctx)
	if err != nil {
		return err
	}

	renderHistory(os.Stdout, []storage.Exchange{exchange})
	return nil
}

// DeleteLast removes the most recent exchange.
func DeleteLast(ctx context.Context, opts Options) error {
	store, log, err := openStore(opts)
	if err != nil {
		return err
	}

	if err := store.DeleteLast(ctx); err != nil {
		return err
	}

	log.Info().Msg("last exchange deleted")
	return nil
}

// Clear removes every stored exchange. Succeeds on an empty store.
func Clear(ctx context.Context, opts Options) error {
	store, log, err := openStore(opts)
	if err != nil {
		return err
	}

	if err := store.Clear(ctx); err != nil {
		return err
	}

	log.Info().Msg("message history cleared")
	return nil
}
