package common

// SuccessResponse is the envelope of every successful JSON response
type SuccessResponse struct {
	Code    int         `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope of every failed JSON response.
// Message is safe to show to the user; Info carries the raw cause.
type ErrorResponse struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse reports service readiness
type HealthResponse struct {
	Status                string `json:"status"`
	Environment           string `json:"environment"`
	APIKeyDetected        bool   `json:"api_key_detected"`
	TranscriptionProvider string `json:"transcription_provider"`
	AnalysisProvider      string `json:"analysis_provider"`
}
