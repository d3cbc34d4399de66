package briefing

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/johnquangdev/voxly/internal/domain/entities"
	"github.com/johnquangdev/voxly/pkg/ai"
)

var statusCodePattern = regexp.MustCompile(`\b(400|403|429)\b`)

// Classify turns a pipeline failure into the message shown to the user.
// Typed errors are inspected first; foreign errors fall back to substring
// matching on the key name and HTTP status codes. Anything unrecognized is
// passed through verbatim.
func Classify(err error, m Messages) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrNoProvider) {
		return m.ProviderMissing
	}
	var cfgErr *entities.ConfigurationError
	if errors.As(err, &cfgErr) || errors.Is(err, ai.ErrMissingAPIKey) {
		return m.KeyMissing
	}

	var statusErr *ai.StatusError
	if errors.As(err, &statusErr) {
		if msg, ok := messageForStatus(statusErr.StatusCode, m); ok {
			return msg
		}
	}

	raw := err.Error()
	if strings.Contains(raw, "API_KEY") {
		return m.KeyMissing
	}
	if code := statusCodePattern.FindString(raw); code != "" {
		switch code {
		case "400":
			return m.BadRequest
		case "403":
			return m.Forbidden
		case "429":
			return m.TooManyRequests
		}
	}

	if strings.TrimSpace(raw) == "" {
		return m.Unknown
	}
	return raw
}

func messageForStatus(code int, m Messages) (string, bool) {
	switch code {
	case http.StatusBadRequest:
		return m.BadRequest, true
	case http.StatusForbidden:
		return m.Forbidden, true
	case http.StatusTooManyRequests:
		return m.TooManyRequests, true
	}
	return "", false
}
