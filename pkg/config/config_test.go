package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveAPIKeyPriority(t *testing.T) {
	env := map[string]string{
		"API_KEY":      "second",
		"GROQ_API_KEY": "last",
	}
	key, source := ResolveAPIKey(func(k string) string { return env[k] })
	if key != "second" || source != "API_KEY" {
		t.Fatalf("expected API_KEY to win, got %q from %q", key, source)
	}

	env["VITE_API_KEY"] = "  first  "
	key, source = ResolveAPIKey(func(k string) string { return env[k] })
	if key != "first" || source != "VITE_API_KEY" {
		t.Fatalf("expected VITE_API_KEY to win, got %q from %q", key, source)
	}
}

func TestResolveAPIKeyMissing(t *testing.T) {
	key, source := ResolveAPIKey(func(string) string { return "" })
	if key != "" || source != "" {
		t.Fatalf("expected no key, got %q from %q", key, source)
	}
}

func TestMaskKey(t *testing.T) {
	if got := MaskKey(""); got != "NO" {
		t.Fatalf("unexpected mask for empty key: %q", got)
	}
	got := MaskKey("secret-abcd")
	if got != "YES (ends with ...abcd)" {
		t.Fatalf("unexpected mask: %q", got)
	}
	if strings.Contains(got, "secret") {
		t.Fatalf("mask leaks key prefix: %q", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)
	t.Setenv("REACT_APP_API_KEY", "key-1234")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("unexpected port %q", cfg.Server.Port)
	}
	if cfg.AI.TranscriptionProvider != "gemini" || cfg.AI.AnalysisProvider != "gemini" {
		t.Fatalf("unexpected providers %q/%q", cfg.AI.TranscriptionProvider, cfg.AI.AnalysisProvider)
	}
	if cfg.AI.Gemini.TranscribeModel != DefaultGeminiTranscribeModel {
		t.Fatalf("unexpected transcribe model %q", cfg.AI.Gemini.TranscribeModel)
	}
	if cfg.AI.APIKeySource != "REACT_APP_API_KEY" || cfg.AI.Gemini.APIKey != "key-1234" {
		t.Fatalf("shared key not propagated: source=%q gemini=%q", cfg.AI.APIKeySource, cfg.AI.Gemini.APIKey)
	}
	if cfg.Pipeline.MaxTranscriptChars != 30000 {
		t.Fatalf("unexpected truncation budget %d", cfg.Pipeline.MaxTranscriptChars)
	}
}

func TestLoadWithoutKeySucceeds(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.AI.APIKey != "" || cfg.KeyStatus() != "NO" {
		t.Fatalf("expected no key, got %q", cfg.KeyStatus())
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	isolateEnv(t)
	t.Setenv("TRANSCRIPTION_PROVIDER", "carrier-pigeon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadFileOverlay(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
locale = "en"

[prompts]
analysis = "custom prompt"

[gemini]
analysis_model = "file-model"

[groq]
transcribe_model = "file-whisper"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("VOXLY_CONFIG", path)
	t.Setenv("GROQ_TRANSCRIBE_MODEL", "env-whisper")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Pipeline.Locale != "en" {
		t.Fatalf("expected locale from file, got %q", cfg.Pipeline.Locale)
	}
	if cfg.AI.Gemini.AnalysisModel != "file-model" {
		t.Fatalf("expected analysis model from file, got %q", cfg.AI.Gemini.AnalysisModel)
	}
	if cfg.AI.AnalysisPrompt != "custom prompt" {
		t.Fatalf("expected prompt from file, got %q", cfg.AI.AnalysisPrompt)
	}
	if cfg.AI.Groq.TranscribeModel != "env-whisper" {
		t.Fatalf("environment should win over file, got %q", cfg.AI.Groq.TranscribeModel)
	}
}

// isolateEnv clears variables Load reads so host settings do not leak into tests.
func isolateEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("XDG_CONFIG_HOME", dir)
	keys := append([]string{
		"VOXLY_CONFIG", "TRANSCRIPTION_PROVIDER", "ANALYSIS_PROVIDER", "LOCALE", "LANGUAGE",
		"GEMINI_TRANSCRIBE_MODEL", "GEMINI_ANALYSIS_MODEL", "GROQ_TRANSCRIBE_MODEL", "GROQ_ANALYSIS_MODEL",
		"ASSEMBLYAI_API_KEY", "PORT", "SESSION_STORE", "MAX_TRANSCRIPT_CHARS",
	}, APIKeyNames...)
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}
