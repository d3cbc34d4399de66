package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Pipeline PipelineConfig
	Session  SessionConfig
	Redis    RedisConfig
	Recorder RecorderConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	MaxUploadMB     int      `envconfig:"MAX_UPLOAD_MB" default:"25" validate:"gt=0"`
}

// AIConfig holds settings shared by the remote speech and language clients
type AIConfig struct {
	// APIKey is the shared key resolved from one of APIKeyNames
	APIKey string `ignored:"true"`
	// APIKeySource is the variable APIKey was read from
	APIKeySource string `ignored:"true"`

	TranscriptionProvider string        `envconfig:"TRANSCRIPTION_PROVIDER" default:"gemini" validate:"oneof=gemini groq assemblyai"`
	AnalysisProvider      string        `envconfig:"ANALYSIS_PROVIDER" default:"gemini" validate:"oneof=gemini groq"`
	Language              string        `envconfig:"LANGUAGE" default:"ru" validate:"required"`
	HTTPTimeout           time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"2m"`

	// Prompt overrides, only settable from the config file
	TranscribePrompt string `ignored:"true"`
	AnalysisPrompt   string `ignored:"true"`

	Gemini   GeminiConfig
	Groq     GroqConfig
	Assembly AssemblyAIConfig
}

// GeminiConfig holds Google Gemini settings
type GeminiConfig struct {
	APIKey          string `envconfig:"GEMINI_API_KEY"`
	BaseURL         string `envconfig:"GEMINI_API_URL" default:"https://generativelanguage.googleapis.com"`
	TranscribeModel string `envconfig:"GEMINI_TRANSCRIBE_MODEL"`
	AnalysisModel   string `envconfig:"GEMINI_ANALYSIS_MODEL"`
	ThinkingBudget  int    `envconfig:"GEMINI_THINKING_BUDGET" default:"16000"`
}

// GroqConfig holds Groq settings
type GroqConfig struct {
	APIKey          string `envconfig:"GROQ_API_KEY"`
	BaseURL         string `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	TranscribeModel string `envconfig:"GROQ_TRANSCRIBE_MODEL"`
	AnalysisModel   string `envconfig:"GROQ_ANALYSIS_MODEL"`
}

// AssemblyAIConfig holds AssemblyAI settings
type AssemblyAIConfig struct {
	APIKey  string `envconfig:"ASSEMBLYAI_API_KEY"`
	BaseURL string `envconfig:"ASSEMBLYAI_API_URL"`
}

// PipelineConfig holds briefing pipeline settings
type PipelineConfig struct {
	Locale             string        `envconfig:"LOCALE" default:"ru" validate:"oneof=ru en"`
	MaxTranscriptChars int           `envconfig:"MAX_TRANSCRIPT_CHARS" default:"30000" validate:"gt=0"`
	Timeout            time.Duration `envconfig:"PIPELINE_TIMEOUT" default:"5m"`
}

// SessionConfig holds session snapshot store settings
type SessionConfig struct {
	Store string        `envconfig:"SESSION_STORE" default:"memory" validate:"oneof=memory redis"`
	TTL   time.Duration `envconfig:"SESSION_TTL" default:"1h"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// RecorderConfig holds microphone capture settings
type RecorderConfig struct {
	FFmpegPath  string `envconfig:"FFMPEG_PATH" default:"ffmpeg"`
	InputFormat string `envconfig:"RECORD_INPUT_FORMAT" default:"pulse"`
	InputDevice string `envconfig:"RECORD_INPUT_DEVICE" default:"default"`
}

// Default model names
const (
	DefaultGeminiTranscribeModel = "gemini-3-flash-preview"
	DefaultGeminiAnalysisModel   = "gemini-3-pro-preview"
	DefaultGroqTranscribeModel   = "whisper-large-v3"
	DefaultGroqAnalysisModel     = "llama-3.3-70b-versatile"
)

// APIKeyNames lists the variables the shared API key may be read from, in priority order
var APIKeyNames = []string{
	"VITE_API_KEY",
	"API_KEY",
	"REACT_APP_API_KEY",
	"GEMINI_API_KEY",
	"GROQ_API_KEY",
}

// Load loads configuration from .env, environment variables and the optional TOML file
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{}
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if path := FilePath(); path != "" {
		fc, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		fc.apply(config)
	}

	config.AI.APIKey, config.AI.APIKeySource = ResolveAPIKey(os.Getenv)
	config.applyDefaults()

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ResolveAPIKey returns the first non-empty key from APIKeyNames and its variable name
func ResolveAPIKey(getenv func(string) string) (string, string) {
	for _, name := range APIKeyNames {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v, name
		}
	}
	return "", ""
}

func (c *Config) applyDefaults() {
	if c.AI.Gemini.TranscribeModel == "" {
		c.AI.Gemini.TranscribeModel = DefaultGeminiTranscribeModel
	}
	if c.AI.Gemini.AnalysisModel == "" {
		c.AI.Gemini.AnalysisModel = DefaultGeminiAnalysisModel
	}
	if c.AI.Groq.TranscribeModel == "" {
		c.AI.Groq.TranscribeModel = DefaultGroqTranscribeModel
	}
	if c.AI.Groq.AnalysisModel == "" {
		c.AI.Groq.AnalysisModel = DefaultGroqAnalysisModel
	}
	if c.AI.Gemini.APIKey == "" {
		c.AI.Gemini.APIKey = c.AI.APIKey
	}
	if c.AI.Groq.APIKey == "" {
		c.AI.Groq.APIKey = c.AI.APIKey
	}
	if c.AI.Assembly.APIKey == "" {
		c.AI.Assembly.APIKey = c.AI.APIKey
	}
}

// Validate validates the configuration.
// A missing API key is not a load error; it is reported when a remote call is made.
func (c *Config) Validate() error {
	v := validator.New()
	for _, section := range []interface{}{c.Server, c.AI, c.Pipeline, c.Session} {
		if err := v.Struct(section); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return nil
}

// KeyStatus describes whether an API key was detected without revealing it
func (c *Config) KeyStatus() string {
	return MaskKey(c.AI.APIKey)
}

// MaskKey reports key presence showing only its last four characters
func MaskKey(key string) string {
	if key == "" {
		return "NO"
	}
	tail := key
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return fmt.Sprintf("YES (ends with ...%s)", tail)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns the HTTP listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
