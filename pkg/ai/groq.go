package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/johnquangdev/voxly/pkg/config"
)

// GroqClient is a minimal client for Groq's OpenAI-compatible API.
// It serves whisper transcription and JSON-mode chat analysis.
type GroqClient struct {
	apiKey          string
	baseURL         string
	transcribeModel string
	analysisModel   string
	language        string
	analysisPrompt  string
	client          *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.AIConfig) *GroqClient {
	g := &GroqClient{
		transcribeModel: config.DefaultGroqTranscribeModel,
		analysisModel:   config.DefaultGroqAnalysisModel,
		language:        "ru",
		client:          &http.Client{Timeout: 2 * time.Minute},
	}
	if cfg != nil {
		g.apiKey = cfg.Groq.APIKey
		g.baseURL = cfg.Groq.BaseURL
		if cfg.Groq.TranscribeModel != "" {
			g.transcribeModel = cfg.Groq.TranscribeModel
		}
		if cfg.Groq.AnalysisModel != "" {
			g.analysisModel = cfg.Groq.AnalysisModel
		}
		if cfg.Language != "" {
			g.language = cfg.Language
		}
		if cfg.HTTPTimeout > 0 {
			g.client.Timeout = cfg.HTTPTimeout
		}
		g.analysisPrompt = cfg.AnalysisPrompt
	}
	if g.apiKey == "" {
		g.apiKey = os.Getenv("GROQ_API_KEY")
	}
	if g.apiKey == "" {
		g.apiKey, _ = config.ResolveAPIKey(os.Getenv)
	}
	if g.baseURL == "" {
		g.baseURL = os.Getenv("GROQ_API_URL")
		if g.baseURL == "" {
			g.baseURL = "https://api.groq.com"
		}
	}
	g.baseURL = strings.TrimRight(g.baseURL, "/")
	return g
}

// Name identifies the provider in logs
func (g *GroqClient) Name() string { return "groq" }

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string            `json:"model,omitempty"`
	Messages       []ChatMessage     `json:"messages,omitempty"`
	Temperature    float64           `json:"temperature,omitempty"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

// ChatMessage is a single chat turn
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads audio to the whisper endpoint and returns the transcript
func (g *GroqClient) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("model", g.transcribeModel); err != nil {
		return "", err
	}
	if err := writer.WriteField("language", g.language); err != nil {
		return "", err
	}
	if err := writer.WriteField("response_format", "json"); err != nil {
		return "", err
	}
	part, err := writer.CreateFormFile("file", "audio"+ExtensionForMime(mimeType))
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling groq: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", newStatusError("groq", resp)
	}

	var tr transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decoding groq response: %w", err)
	}
	if strings.TrimSpace(tr.Text) == "" {
		return "", ErrEmptyResponse
	}
	return tr.Text, nil
}

// Analyze sends the transcript to a chat model in JSON mode and returns the raw content
func (g *GroqClient) Analyze(ctx context.Context, transcript string) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	reqBody := ChatRequest{
		Model: g.analysisModel,
		Messages: []ChatMessage{
			{Role: "system", Content: "You reply with a single JSON object containing exactly the keys: " + strings.Join(AnalysisKeys, ", ") + "."},
			{Role: "user", Content: BuildAnalysisPrompt(g.analysisPrompt, transcript, g.language)},
		},
		Temperature:    0.3,
		MaxTokens:      8000,
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling groq: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", newStatusError("groq", resp)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decoding groq response: %w", err)
	}
	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return cr.Choices[0].Message.Content, nil
}
