package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnquangdev/voxly/pkg/config"
)

func newTestGemini(url, key string) *GeminiClient {
	return NewGeminiClient(&config.AIConfig{
		Language: "ru",
		Gemini: config.GeminiConfig{
			APIKey:          key,
			BaseURL:         url,
			TranscribeModel: "flash",
			AnalysisModel:   "pro",
			ThinkingBudget:  1024,
		},
	})
}

func TestGeminiTranscribe_Success(t *testing.T) {
	audio := []byte("fake-webm-bytes")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/v1beta/models/flash:generateContent" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Fatalf("missing api key header")
		}
		var req GeminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		parts := req.Contents[0].Parts
		if len(parts) != 2 || parts[0].InlineData == nil {
			t.Fatalf("expected inline audio part followed by prompt, got %+v", parts)
		}
		if parts[0].InlineData.MimeType != "audio/webm" {
			t.Fatalf("unexpected mime %q", parts[0].InlineData.MimeType)
		}
		if parts[0].InlineData.Data != base64.StdEncoding.EncodeToString(audio) {
			t.Fatalf("audio not base64 encoded")
		}
		if !strings.Contains(parts[1].Text, "Russian") {
			t.Fatalf("prompt lacks language hint: %q", parts[1].Text)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{{
				"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "Speaker 1: "}, {"text": "привет"}},
				},
			}},
		})
	}))
	defer ts.Close()

	text, err := newTestGemini(ts.URL, "test-key").Transcribe(context.Background(), audio, "audio/webm")
	if err != nil {
		t.Fatalf("transcribe failed: %v", err)
	}
	if text != "Speaker 1: привет" {
		t.Fatalf("unexpected transcript %q", text)
	}
}

func TestGeminiTranscribe_EmptyResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"   \n"}]}}]}`))
	}))
	defer ts.Close()

	_, err := newTestGemini(ts.URL, "test-key").Transcribe(context.Background(), []byte("x"), "audio/webm")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGeminiAnalyze_RequestsSchema(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/pro:generateContent" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req GeminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		gc := req.GenerationConfig
		if gc == nil || gc.ResponseMimeType != "application/json" || gc.ResponseSchema == nil {
			t.Fatalf("expected json schema config, got %+v", gc)
		}
		if len(gc.ResponseSchema.Required) != 5 {
			t.Fatalf("expected five required keys, got %v", gc.ResponseSchema.Required)
		}
		if gc.ThinkingConfig == nil || gc.ThinkingConfig.ThinkingBudget != 1024 {
			t.Fatalf("expected thinking budget")
		}
		if !strings.Contains(req.Contents[0].Parts[0].Text, "Buy milk.") {
			t.Fatalf("prompt lacks transcript")
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"summary\":\"ok\"}"}]}}]}`))
	}))
	defer ts.Close()

	raw, err := newTestGemini(ts.URL, "test-key").Analyze(context.Background(), "Buy milk.")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if raw != `{"summary":"ok"}` {
		t.Fatalf("unexpected raw response %q", raw)
	}
}

func TestGeminiStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota"}}`))
	}))
	defer ts.Close()

	_, err := newTestGemini(ts.URL, "test-key").Analyze(context.Background(), "text")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != 429 || !strings.Contains(err.Error(), "HTTP 429") {
		t.Fatalf("unexpected status error %v", err)
	}
}

func TestGeminiMissingKey(t *testing.T) {
	for _, name := range config.APIKeyNames {
		t.Setenv(name, "")
	}
	c := newTestGemini("http://127.0.0.1:0", "")
	if _, err := c.Transcribe(context.Background(), []byte("x"), "audio/webm"); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if _, err := c.Analyze(context.Background(), "x"); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
