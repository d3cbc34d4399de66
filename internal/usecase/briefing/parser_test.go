package briefing

import (
	"testing"
	"unicode/utf8"
)

func TestParseAnalysis(t *testing.T) {
	m := MessagesFor("en")

	t.Run("fenced json", func(t *testing.T) {
		a, err := ParseAnalysis("```json\n"+fullAnalysis+"\n```", m)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if a.Summary != "Two errands." || len(a.ActionItems) != 2 {
			t.Fatalf("unexpected analysis %+v", a)
		}
	})

	t.Run("prose around object", func(t *testing.T) {
		a, err := ParseAnalysis("Here you go: {\"summary\":\"s\"} thanks", m)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if a.Summary != "s" {
			t.Fatalf("unexpected summary %q", a.Summary)
		}
	})

	t.Run("nulls and blanks", func(t *testing.T) {
		a, err := ParseAnalysis(`{"summary":"  ","mainThemes":null,"keyPoints":[" a ",""],"sentiment":null}`, m)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if a.Summary != m.SummaryFallback || a.Sentiment != m.SentimentFallback {
			t.Fatalf("fallbacks not applied: %+v", a)
		}
		if a.MainThemes == nil || len(a.MainThemes) != 0 {
			t.Fatalf("expected empty themes, got %#v", a.MainThemes)
		}
		if len(a.KeyPoints) != 1 || a.KeyPoints[0] != "a" {
			t.Fatalf("expected trimmed key points, got %#v", a.KeyPoints)
		}
	})

	errorCases := map[string]string{
		"empty":        "   ",
		"array":        `["a","b"]`,
		"wrong type":   `{"mainThemes":"not a list"}`,
		"broken":       `{"summary":`,
		"plain string": "Sorry, I cannot help.",
	}
	for name, raw := range errorCases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseAnalysis(raw, m); err == nil {
				t.Fatalf("expected error for %q", raw)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 0); got != "hello" {
		t.Fatalf("zero budget should disable truncation, got %q", got)
	}
	if got := Truncate("hello", 10); got != "hello" {
		t.Fatalf("short input changed: %q", got)
	}
	got := Truncate("привет", 3)
	if got != "при" || !utf8.ValidString(got) {
		t.Fatalf("unexpected truncation %q", got)
	}
}
