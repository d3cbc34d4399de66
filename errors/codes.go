package errors

// ErrorCode is the machine-readable code returned in error envelopes
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001

	ErrorCode_SESSION_NOT_FOUND ErrorCode = 2000
	ErrorCode_SESSION_BUSY      ErrorCode = 2001
	ErrorCode_SESSION_NOT_RESET ErrorCode = 2002
	ErrorCode_RESULT_NOT_READY  ErrorCode = 2003

	ErrorCode_INVALID_PAYLOAD    ErrorCode = 3000
	ErrorCode_EMPTY_INPUT        ErrorCode = 3001
	ErrorCode_UPLOAD_TOO_LARGE   ErrorCode = 3002
	ErrorCode_UNSUPPORTED_FORMAT ErrorCode = 3003

	ErrorCode_CONFIGURATION        ErrorCode = 4000
	ErrorCode_TRANSCRIPTION_FAILED ErrorCode = 4001
	ErrorCode_ANALYSIS_FAILED      ErrorCode = 4002
	ErrorCode_RATE_LIMITED         ErrorCode = 4003

	ErrorCode_INTEGRATION_CACHE_FAILED ErrorCode = 5000
	ErrorCode_REPORT_EXPORT_FAILED     ErrorCode = 5001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                  "HTTP_OK",
	ErrorCode_INTERNAL:                 "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:         "INVALID_ARGUMENT",
	ErrorCode_SESSION_NOT_FOUND:        "SESSION_NOT_FOUND",
	ErrorCode_SESSION_BUSY:             "SESSION_BUSY",
	ErrorCode_SESSION_NOT_RESET:        "SESSION_NOT_RESET",
	ErrorCode_RESULT_NOT_READY:         "RESULT_NOT_READY",
	ErrorCode_INVALID_PAYLOAD:          "INVALID_PAYLOAD",
	ErrorCode_EMPTY_INPUT:              "EMPTY_INPUT",
	ErrorCode_UPLOAD_TOO_LARGE:         "UPLOAD_TOO_LARGE",
	ErrorCode_UNSUPPORTED_FORMAT:       "UNSUPPORTED_FORMAT",
	ErrorCode_CONFIGURATION:            "CONFIGURATION",
	ErrorCode_TRANSCRIPTION_FAILED:     "TRANSCRIPTION_FAILED",
	ErrorCode_ANALYSIS_FAILED:          "ANALYSIS_FAILED",
	ErrorCode_RATE_LIMITED:             "RATE_LIMITED",
	ErrorCode_INTEGRATION_CACHE_FAILED: "INTEGRATION_CACHE_FAILED",
	ErrorCode_REPORT_EXPORT_FAILED:     "REPORT_EXPORT_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
