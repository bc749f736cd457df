package session

import "testing"

func TestParseExitKeywords(t *testing.T) {
	for _, text := range []string{":q!", "q", "exit", "exit()", "quit"} {
		if in := Parse(text); in.Kind != KindQuit {
			t.Errorf("Parse(%q): expected quit, got continue", text)
		}
	}
}

func TestParseExitKeywordCaseAndWhitespace(t *testing.T) {
	for _, text := range []string{"QUIT", "  exit  ", "\tQ\n", "Exit()"} {
		if in := Parse(text); in.Kind != KindQuit {
			t.Errorf("Parse(%q): expected quit, got continue", text)
		}
	}
}

func TestParseOrdinaryInput(t *testing.T) {
	in := Parse("what is the capital of France?")
	if in.Kind != KindContinue {
		t.Fatal("expected continue")
	}
	if in.Text != "what is the capital of France?" {
		t.Errorf("text was modified: %q", in.Text)
	}
}

func TestParseEmptyInputContinues(t *testing.T) {
	// Empty input is ordinary content, not a quit and not an error.
	if in := Parse(""); in.Kind != KindContinue {
		t.Error("expected empty input to continue")
	}
	if in := Parse("   "); in.Kind != KindContinue {
		t.Error("expected whitespace input to continue")
	}
}

func TestParseKeywordInsideSentenceContinues(t *testing.T) {
	if in := Parse("how do I exit vim?"); in.Kind != KindContinue {
		t.Error("keyword embedded in a sentence should not quit")
	}
}
