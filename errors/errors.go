package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError là custom error type cho application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

// Session Errors
func ErrSessionNotFound(sessionID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_SESSION_NOT_FOUND,
		Message:  "Session not found",
	}.WithDetail("session_id", sessionID)
}

func ErrSessionBusy(sessionID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_SESSION_BUSY,
		Message:  "A briefing is already being processed for this session",
	}.WithDetail("session_id", sessionID)
}

func ErrSessionNotReset(sessionID, step string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_SESSION_NOT_RESET,
		Message:  "Session must be reset before a new briefing",
	}.WithDetail("session_id", sessionID).
		WithDetail("current_step", step)
}

func ErrResultNotReady(sessionID, step string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_RESULT_NOT_READY,
		Message:  "Briefing is not completed",
	}.WithDetail("session_id", sessionID).
		WithDetail("current_step", step)
}

// Input Errors
func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

func ErrEmptyInput(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_EMPTY_INPUT,
		Message:  message,
	}
}

func ErrUploadTooLarge(limitMB int) AppError {
	return AppError{
		HTTPCode: http.StatusRequestEntityTooLarge,
		Code:     ErrorCode_UPLOAD_TOO_LARGE,
		Message:  "Uploaded file is too large",
	}.WithDetail("limit_mb", fmt.Sprintf("%d", limitMB))
}

func ErrUnsupportedFormat(format string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_UNSUPPORTED_FORMAT,
		Message:  "Unsupported report format",
	}.WithDetail("format", format)
}

// Pipeline Errors
//
// message is the localized text shown to the user; the raw cause stays in Raw.
func ErrConfiguration(message string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_CONFIGURATION,
		Message:  message,
	}
}

func ErrTranscriptionFailed(message string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_TRANSCRIPTION_FAILED,
		Message:  message,
	}
}

func ErrAnalysisFailed(message string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_ANALYSIS_FAILED,
		Message:  message,
	}
}

func ErrRateLimited(message string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusTooManyRequests,
		Code:     ErrorCode_RATE_LIMITED,
		Message:  message,
	}
}

// Integration Errors
func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:  fmt.Sprintf("Cache operation failed: %s", operation),
	}
}

func ErrReportExportFailed(format string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_REPORT_EXPORT_FAILED,
		Message:  "Failed to export report",
	}.WithDetail("format", format)
}
