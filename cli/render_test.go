package cli

import (
	"strings"
	"testing"

	"github.com/chatcli/chatcli/storage"
)

func TestHasMarkdown(t *testing.T) {
	markdown := []string{
		"use `fmt.Println`",
		"# Heading",
		"**bold** claim",
		"> quoted",
		"[link](https://example.com)",
	}
	for _, text := range markdown {
		if !hasMarkdown(text) {
			t.Errorf("expected markdown detection for %q", text)
		}
	}

	plain := []string{
		"just a plain sentence.",
		"numbers 1, 2 and 3",
		"",
	}
	for _, text := range plain {
		if hasMarkdown(text) {
			t.Errorf("false markdown detection for %q", text)
		}
	}
}

func TestRenderHistory(t *testing.T) {
	var buf strings.Builder
	renderHistory(&buf, []storage.Exchange{
		{ID: 1, Question: "2+2?", Answer: "4", Timestamp: 1700000000},
	})

	out := buf.String()
	for _, want := range []string{"> Question:", "2+2?", "> Answer:", "4", "> Timestamp:", "2023-11-14"} {
		if !strings.Contains(out, want) {
			t.Errorf("history output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, separator) != 2 {
		t.Errorf("expected 2 separators around a single record, got %d", strings.Count(out, separator))
	}
}

func TestTypewriteWritesAllRunes(t *testing.T) {
	var buf strings.Builder
	typewrite(&buf, "héllo", 0)
	if got := buf.String(); got != "héllo\n" {
		t.Errorf("typewrite output = %q", got)
	}
}
