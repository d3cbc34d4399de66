package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type fileConfig struct {
	Language string `toml:"language"`
	Locale   string `toml:"locale"`

	Prompts struct {
		Transcribe string `toml:"transcribe"`
		Analysis   string `toml:"analysis"`
	} `toml:"prompts"`

	Gemini struct {
		TranscribeModel string `toml:"transcribe_model"`
		AnalysisModel   string `toml:"analysis_model"`
	} `toml:"gemini"`

	Groq struct {
		TranscribeModel string `toml:"transcribe_model"`
		AnalysisModel   string `toml:"analysis_model"`
	} `toml:"groq"`
}

// FilePath returns the TOML config path, or "" when none exists.
// VOXLY_CONFIG wins over $XDG_CONFIG_HOME/voxly/config.toml and ~/.config/voxly/config.toml.
func FilePath() string {
	if p := os.Getenv("VOXLY_CONFIG"); p != "" {
		return p
	}

	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "voxly")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "voxly")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc, nil
}

// apply copies file values into cfg unless the matching variable is set in the environment
func (fc fileConfig) apply(cfg *Config) {
	setIfUnset(&cfg.AI.Language, "LANGUAGE", fc.Language)
	setIfUnset(&cfg.Pipeline.Locale, "LOCALE", fc.Locale)
	setIfUnset(&cfg.AI.Gemini.TranscribeModel, "GEMINI_TRANSCRIBE_MODEL", fc.Gemini.TranscribeModel)
	setIfUnset(&cfg.AI.Gemini.AnalysisModel, "GEMINI_ANALYSIS_MODEL", fc.Gemini.AnalysisModel)
	setIfUnset(&cfg.AI.Groq.TranscribeModel, "GROQ_TRANSCRIBE_MODEL", fc.Groq.TranscribeModel)
	setIfUnset(&cfg.AI.Groq.AnalysisModel, "GROQ_ANALYSIS_MODEL", fc.Groq.AnalysisModel)

	// prompts are file-only
	if fc.Prompts.Transcribe != "" {
		cfg.AI.TranscribePrompt = fc.Prompts.Transcribe
	}
	if fc.Prompts.Analysis != "" {
		cfg.AI.AnalysisPrompt = fc.Prompts.Analysis
	}
}

func setIfUnset(dst *string, env, value string) {
	if value == "" {
		return
	}
	if _, ok := os.LookupEnv(env); ok {
		return
	}
	*dst = value
}
