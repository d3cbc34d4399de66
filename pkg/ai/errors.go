package ai

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrMissingAPIKey is returned when a client is used without a configured key
var ErrMissingAPIKey = errors.New("API_KEY is not configured")

// ErrEmptyResponse is returned when a provider answers with no usable text
var ErrEmptyResponse = errors.New("model returned an empty response")

// StatusError is returned for non-success HTTP responses.
// Its message always contains "HTTP <code>".
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned HTTP %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s returned HTTP %d: %s", e.Provider, e.StatusCode, e.Body)
}

// maxErrorBody bounds how much of an error body is kept
const maxErrorBody = 2048

func newStatusError(provider string, resp *http.Response) *StatusError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		Provider:   provider,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(b)),
	}
}
