package entities

import (
	"errors"
	"fmt"
)

// Pipeline errors
var (
	ErrBusy     = errors.New("a briefing is already in progress")
	ErrNotReset = errors.New("previous briefing must be reset first")
)

// ConfigurationError reports a missing or invalid API key
type ConfigurationError struct {
	Setting string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Setting, e.Err)
	}
	return fmt.Sprintf("configuration: %s is not set", e.Setting)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// TranscriptionError reports a failed or empty transcription
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// AnalysisError reports a failed analysis call or an unparsable response
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// InputError reports an unusable input payload
type InputError struct {
	Reason string
	Err    error
}

// NewInputError creates an InputError
func NewInputError(reason string, err error) *InputError {
	return &InputError{Reason: reason, Err: err}
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input: %s: %v", e.Reason, e.Err)
	}
	return "invalid input: " + e.Reason
}

func (e *InputError) Unwrap() error { return e.Err }
