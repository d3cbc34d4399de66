package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/voxly/pkg/config"
)

// AssemblyAIClient transcribes audio through the official AssemblyAI SDK.
// Audio is uploaded, transcribed with speaker labels and polled to completion.
type AssemblyAIClient struct {
	apiKey   string
	language string
	sdk      *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AIConfig) *AssemblyAIClient {
	var apiKey, baseURL string
	language := "ru"
	timeout := 10 * time.Minute
	if cfg != nil {
		apiKey = cfg.Assembly.APIKey
		baseURL = cfg.Assembly.BaseURL
		if cfg.Language != "" {
			language = cfg.Language
		}
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}

	opts := []aai.ClientOption{
		aai.WithAPIKey(apiKey),
		aai.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, aai.WithBaseURL(baseURL))
	}

	return &AssemblyAIClient{
		apiKey:   apiKey,
		language: language,
		sdk:      aai.NewClientWithOptions(opts...),
	}
}

// Name identifies the provider in logs
func (c *AssemblyAIClient) Name() string { return "assemblyai" }

// Transcribe uploads audio and waits for the finished transcript.
// Speaker utterances are rendered as "Speaker X: text" lines.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	params := &aai.TranscriptOptionalParams{
		LanguageCode:  aai.TranscriptLanguageCode(c.language),
		SpeakerLabels: aai.Bool(true),
	}

	transcript, err := c.sdk.Transcripts.TranscribeFromReader(ctx, bytes.NewReader(audio), params)
	if err != nil {
		var apiErr *aai.APIError
		if errors.As(err, &apiErr) && apiErr.Status != 0 {
			return "", &StatusError{Provider: "assemblyai", StatusCode: apiErr.Status, Body: apiErr.Message}
		}
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		reason := "unknown error"
		if transcript.Error != nil {
			reason = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai transcript failed: %s", reason)
	}

	text := renderUtterances(transcript.Utterances)
	if text == "" && transcript.Text != nil {
		text = *transcript.Text
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func renderUtterances(utterances []aai.TranscriptUtterance) string {
	if len(utterances) == 0 {
		return ""
	}
	lines := make([]string, 0, len(utterances))
	for _, u := range utterances {
		if u.Text == nil || strings.TrimSpace(*u.Text) == "" {
			continue
		}
		speaker := "?"
		if u.Speaker != nil && *u.Speaker != "" {
			speaker = *u.Speaker
		}
		lines = append(lines, fmt.Sprintf("Speaker %s: %s", speaker, strings.TrimSpace(*u.Text)))
	}
	return strings.Join(lines, "\n")
}
