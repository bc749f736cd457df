// User input classification.
//
// Quitting is an ordinary result of parsing input, not an error or a
// process exit buried in the exchange path. The REPL and one-shot
// entry points consume the Input before anything touches the network
// or the store.

package session

import "strings"

// InputKind distinguishes ordinary questions from a quit request.
type InputKind int

const (
	// KindContinue means the text should be sent as a question.
	KindContinue InputKind = iota
	// KindQuit means the user asked to end the session.
	KindQuit
)

// Input is the classified result of one piece of user input.
type Input struct {
	Kind InputKind
	Text string
}

// exitKeywords end the session when typed on their own.
var exitKeywords = map[string]struct{}{
	":q!":    {},
	"q":      {},
	"exit":   {},
	"exit()": {},
	"quit":   {},
}

// Parse classifies raw user input. Exit keywords are matched after
// trimming and lowercasing; everything else, including empty input,
// passes through unchanged.
func Parse(text string) Input {
	if _, ok := exitKeywords[strings.ToLower(strings.TrimSpace(text))]; ok {
		return Input{Kind: KindQuit}
	}
	return Input{Kind: KindContinue, Text: text}
}
