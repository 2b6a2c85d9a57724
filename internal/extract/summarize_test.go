package extract

import (
	"context"
	"strings"
	"testing"
)

func TestSummarizeShortTextSkipped(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{reply: "should not be called"}
	s := NewSummarizer(completer, nil)

	got, err := s.Summarize(context.Background(), "too short to bother")
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
	if completer.calls != 0 {
		t.Fatal("completer must not be invoked for short texts")
	}
}

func TestSummarizeLongText(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{reply: "  A concise neutral summary.  "}
	s := NewSummarizer(completer, nil)

	text := strings.Repeat("word ", 200)
	got, err := s.Summarize(context.Background(), text)
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if got != "A concise neutral summary." {
		t.Fatalf("unexpected summary: %q", got)
	}
	if completer.calls != 1 {
		t.Fatalf("expected 1 completer call, got %d", completer.calls)
	}
}
