package ai

import (
	"context"
	"fmt"

	"github.com/johnquangdev/voxly/pkg/config"
)

// Transcriber turns audio into plain text
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	Name() string
}

// Analyzer returns the raw structured briefing text for a transcript
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) (string, error)
	Name() string
}

// NewTranscriber builds the speech-to-text client named by cfg.TranscriptionProvider
func NewTranscriber(cfg *config.AIConfig) (Transcriber, error) {
	switch cfg.TranscriptionProvider {
	case "", "gemini":
		return NewGeminiClient(cfg), nil
	case "groq":
		return NewGroqClient(cfg), nil
	case "assemblyai":
		return NewAssemblyAIClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown transcription provider %q", cfg.TranscriptionProvider)
	}
}

// NewAnalyzer builds the language model client named by cfg.AnalysisProvider
func NewAnalyzer(cfg *config.AIConfig) (Analyzer, error) {
	switch cfg.AnalysisProvider {
	case "", "gemini":
		return NewGeminiClient(cfg), nil
	case "groq":
		return NewGroqClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown analysis provider %q", cfg.AnalysisProvider)
	}
}
