package ai

import (
	"testing"

	"github.com/johnquangdev/voxly/pkg/config"
)

func TestNewTranscriberSelectsProvider(t *testing.T) {
	cases := map[string]string{
		"":           "gemini",
		"gemini":     "gemini",
		"groq":       "groq",
		"assemblyai": "assemblyai",
	}
	for provider, want := range cases {
		tr, err := NewTranscriber(&config.AIConfig{TranscriptionProvider: provider, APIKey: "k"})
		if err != nil {
			t.Fatalf("provider %q: %v", provider, err)
		}
		if tr.Name() != want {
			t.Fatalf("provider %q: expected %s, got %s", provider, want, tr.Name())
		}
	}

	if _, err := NewTranscriber(&config.AIConfig{TranscriptionProvider: "fax"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestNewAnalyzerSelectsProvider(t *testing.T) {
	an, err := NewAnalyzer(&config.AIConfig{AnalysisProvider: "groq"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if an.Name() != "groq" {
		t.Fatalf("expected groq, got %s", an.Name())
	}

	if _, err := NewAnalyzer(&config.AIConfig{AnalysisProvider: "assemblyai"}); err == nil {
		t.Fatalf("assemblyai cannot analyze")
	}
}
