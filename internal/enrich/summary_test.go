package enrich

import (
	"strings"
	"testing"
)

func TestSummarizeShortInputUnchanged(t *testing.T) {
	text := "First sentence here. Second sentence here. Third sentence here."
	got := Summarize(text, 3)
	if got != text {
		t.Errorf("expected input returned unchanged, got %q", got)
	}
}

func TestSummarizeSingleSentence(t *testing.T) {
	text := "Just one sentence without much going on."
	if got := Summarize(text, 3); got != text {
		t.Errorf("expected input returned unchanged, got %q", got)
	}
}

func TestSummarizeBoundsLongInput(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 8; i++ {
		b.WriteString("Sentence number ")
		b.WriteString(strings.Repeat("word ", i+1))
		b.WriteString("ends here. ")
	}
	got := Summarize(b.String(), 3)

	// Counting terminators is a reliable sentence count for this input.
	if n := strings.Count(got, "."); n != 3 {
		t.Errorf("expected 3 sentences in summary, got %d: %q", n, got)
	}
}

func TestSummarizeStartsWithFirstSentence(t *testing.T) {
	text := "Opening line. Second thing happened. Third thing happened. Fourth thing happened."
	got := Summarize(text, 2)
	if !strings.HasPrefix(got, "Opening line.") {
		t.Errorf("expected summary to start with the first sentence, got %q", got)
	}
}

func TestSummarizePreservesOriginalOrder(t *testing.T) {
	// s3 carries the medium-length bonus (0.25 + 0.5 = 0.75) and outscores
	// s1 (0.5) and s2 (0.33), so the pick is {s0, s3} in that order.
	s0 := "Start."
	s1 := "Second."
	s2 := "Third."
	s3 := "This medium length sentence has exactly eleven words inside it okay."
	got := Summarize(s0+" "+s1+" "+s2+" "+s3, 2)

	want := s0 + " " + s3
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	if got := Summarize("", 3); got != "" {
		t.Errorf("expected empty summary for empty input, got %q", got)
	}
}

func TestSummarizeZeroMaxUsesDefault(t *testing.T) {
	text := "One. Two. Three. Four. Five. Six."
	got := Summarize(text, 0)
	if n := strings.Count(got, "."); n != DefaultMaxSentences {
		t.Errorf("expected %d sentences with default max, got %d", DefaultMaxSentences, n)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 600)
	got := truncate(long, 500)
	if len(got) != 503 || !strings.HasSuffix(got, "...") {
		t.Errorf("expected 500-char truncation with ellipsis, got %d chars", len(got))
	}
	if truncate("short", 500) != "short" {
		t.Error("short input should not be truncated")
	}
}
