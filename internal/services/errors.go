package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedResponse marks an LLM or catalog reply that could not be parsed
	// into the expected shape.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrNoMatch marks a catalog lookup that produced no results.
	ErrNoMatch = errors.New("no match found")
	// ErrNetwork marks a transport-level failure talking to an external service.
	ErrNetwork = errors.New("network failure")
	// ErrBadStatus marks a non-2xx response from an external service.
	ErrBadStatus = errors.New("bad server response")
	// ErrConfiguration marks missing credentials or invalid settings.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification via errors.Is. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrNetwork
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// HTTPStatusError reports a non-2xx response. It matches ErrBadStatus, and a 404
// additionally matches ErrNoMatch.
type HTTPStatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s: http %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Service, e.StatusCode, body)
}

func (e *HTTPStatusError) Is(target error) bool {
	switch target {
	case ErrBadStatus:
		return true
	case ErrNoMatch:
		return e.StatusCode == 404
	default:
		return false
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
