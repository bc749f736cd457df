// Terminal rendering for answers and history.
//
// Presentation only: the session and store expose plain strings and
// records, this file decides how they look.

package cli

import (
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/chatcli/chatcli/storage"
)

// markdownPattern matches common markdown markers, including code fences.
var markdownPattern = regexp.MustCompile("[\\*_\\[>\\]#`]{1,3}")

// typeDelay is the per-character delay for animated plain-text answers.
const typeDelay = 30 * time.Millisecond

const separator = "-------------------"

// timestampLayout formats stored timestamps for display.
const timestampLayout = "2006-01-02 15:04:05"

// hasMarkdown reports whether text contains markdown markers.
func hasMarkdown(text string) bool {
	return markdownPattern.MatchString(text)
}

// renderAnswer prints the answer, animating plain text character by
// character and printing markdown in one piece.
func renderAnswer(w io.Writer, answer string) {
	fmt.Fprintln(w, "> Answer:")
	if hasMarkdown(answer) {
		fmt.Fprintln(w, answer)
		return
	}
	typewrite(w, answer, typeDelay)
}

// typewrite prints text one rune at a time with a fixed delay.
func typewrite(w io.Writer, text string, delay time.Duration) {
	for _, r := range text {
		fmt.Fprintf(w, "%c", r)
		time.Sleep(delay)
	}
	fmt.Fprintln(w)
}

// renderHistory prints exchanges separated by rules, oldest first.
func renderHistory(w io.Writer, exchanges []storage.Exchange) {
	for _, e := range exchanges {
		fmt.Fprintln(w, separator)
		renderExchange(w, e)
	}
	fmt.Fprintln(w, separator)
}

// renderExchange prints one stored question/answer pair.
func renderExchange(w io.Writer, e storage.Exchange) {
	fmt.Fprintf(w, "> Question:\n%s\n", e.Question)
	fmt.Fprintf(w, "> Answer:\n%s\n", e.Answer)
	fmt.Fprintf(w, "> Timestamp:\n%s\n", e.Time().Format(timestampLayout))
}
