package client

import (
	"errors"
	"fmt"
)

// Kind classifies API failures so callers can choose between empty states,
// session-expiry handling, retry affordances and plain error banners.
type Kind string

const (
	// KindNotFound: the job or site does not exist server-side. Not retryable.
	KindNotFound Kind = "not_found"
	// KindUnauthorized: token missing or expired. Triggers session-expiry
	// handling, never a local retry.
	KindUnauthorized Kind = "unauthorized"
	// KindServerError: 5xx after the transport's single retry.
	KindServerError Kind = "server_error"
	// KindNetworkError: transport failure (offline, DNS, timeout).
	KindNetworkError Kind = "network_error"
	// KindBadRequest: any other 4xx.
	KindBadRequest Kind = "bad_request"
)

// APIError is the error type surfaced by every client call.
type APIError struct {
	Kind       Kind
	StatusCode int // zero for network errors
	Message    string
	Err        error // underlying transport error, if any
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("api error (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
	case e.Message != "":
		return fmt.Sprintf("api error (%s): %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("api error (%s): %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("api error (%s, status %d)", e.Kind, e.StatusCode)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func errorKind(err error) (Kind, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return "", false
}

// IsNotFound reports whether err is a NotFound API error.
func IsNotFound(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == KindNotFound
}

// IsUnauthorized reports whether err is an Unauthorized API error.
func IsUnauthorized(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == KindUnauthorized
}

// IsServerError reports whether err is a ServerError API error.
func IsServerError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == KindServerError
}

// IsNetworkError reports whether err is a NetworkError API error.
func IsNetworkError(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == KindNetworkError
}
