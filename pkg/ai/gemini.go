package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/johnquangdev/voxly/pkg/config"
)

// GeminiClient is a minimal client for the Gemini generateContent API.
// It serves both transcription (inline audio) and schema-constrained analysis.
type GeminiClient struct {
	apiKey           string
	baseURL          string
	transcribeModel  string
	analysisModel    string
	thinkingBudget   int
	language         string
	transcribePrompt string
	analysisPrompt   string
	client           *http.Client
}

// NewGeminiClient creates a Gemini client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGeminiClient(cfg *config.AIConfig) *GeminiClient {
	c := &GeminiClient{
		baseURL:         "https://generativelanguage.googleapis.com",
		transcribeModel: config.DefaultGeminiTranscribeModel,
		analysisModel:   config.DefaultGeminiAnalysisModel,
		language:        "ru",
		client:          &http.Client{Timeout: 2 * time.Minute},
	}
	if cfg != nil {
		c.apiKey = cfg.Gemini.APIKey
		if cfg.Gemini.BaseURL != "" {
			c.baseURL = cfg.Gemini.BaseURL
		}
		if cfg.Gemini.TranscribeModel != "" {
			c.transcribeModel = cfg.Gemini.TranscribeModel
		}
		if cfg.Gemini.AnalysisModel != "" {
			c.analysisModel = cfg.Gemini.AnalysisModel
		}
		if cfg.Language != "" {
			c.language = cfg.Language
		}
		if cfg.HTTPTimeout > 0 {
			c.client.Timeout = cfg.HTTPTimeout
		}
		c.thinkingBudget = cfg.Gemini.ThinkingBudget
		c.transcribePrompt = cfg.TranscribePrompt
		c.analysisPrompt = cfg.AnalysisPrompt
	}
	if c.apiKey == "" {
		c.apiKey, _ = config.ResolveAPIKey(os.Getenv)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// Name identifies the provider in logs
func (g *GeminiClient) Name() string { return "gemini" }

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiSchema struct {
	Type       string                  `json:"type"`
	Properties map[string]geminiSchema `json:"properties,omitempty"`
	Items      *geminiSchema           `json:"items,omitempty"`
	Required   []string                `json:"required,omitempty"`
}

type geminiThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string                `json:"responseMimeType,omitempty"`
	ResponseSchema   *geminiSchema         `json:"responseSchema,omitempty"`
	ThinkingConfig   *geminiThinkingConfig `json:"thinkingConfig,omitempty"`
}

// GeminiRequest is the generateContent request body
type GeminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

// GeminiResponse is a minimal generateContent response shape
type GeminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

// Text concatenates the text parts of the first candidate
func (r *GeminiResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// briefingSchema constrains analysis output to the five briefing keys
var briefingSchema = &geminiSchema{
	Type: "OBJECT",
	Properties: map[string]geminiSchema{
		"summary":     {Type: "STRING"},
		"mainThemes":  {Type: "ARRAY", Items: &geminiSchema{Type: "STRING"}},
		"keyPoints":   {Type: "ARRAY", Items: &geminiSchema{Type: "STRING"}},
		"actionItems": {Type: "ARRAY", Items: &geminiSchema{Type: "STRING"}},
		"sentiment":   {Type: "STRING"},
	},
	Required: AnalysisKeys,
}

// Transcribe sends inline audio with the stenographer prompt and returns the transcript
func (g *GeminiClient) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	reqBody := GeminiRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{InlineData: &geminiInlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(audio)}},
				{Text: BuildTranscribePrompt(g.transcribePrompt, g.language)},
			},
		}},
	}

	text, err := g.generate(ctx, g.transcribeModel, reqBody)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Analyze sends the transcript with the briefing prompt and returns the raw JSON text
func (g *GeminiClient) Analyze(ctx context.Context, transcript string) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	genCfg := &geminiGenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   briefingSchema,
	}
	if g.thinkingBudget > 0 {
		genCfg.ThinkingConfig = &geminiThinkingConfig{ThinkingBudget: g.thinkingBudget}
	}

	reqBody := GeminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: BuildAnalysisPrompt(g.analysisPrompt, transcript, g.language)}},
		}},
		GenerationConfig: genCfg,
	}

	text, err := g.generate(ctx, g.analysisModel, reqBody)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (g *GeminiClient) generate(ctx context.Context, model string, reqBody GeminiRequest) (string, error) {
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", newStatusError("gemini", resp)
	}

	var gr GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("decoding gemini response: %w", err)
	}
	if gr.PromptFeedback != nil && gr.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini blocked the prompt: %s", gr.PromptFeedback.BlockReason)
	}
	return gr.Text(), nil
}
