package client

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure so callers can switch on it instead of
// inspecting status codes.
type Kind int

const (
	// KindValidation is a 4xx rejection of the request payload
	// (duplicate login on register, empty message text, ...).
	KindValidation Kind = iota
	// KindAuth is a bad-credentials rejection on login or register.
	KindAuth
	// KindUnauthorized is a 401 on an authenticated call: the token is
	// absent, invalid, or expired.
	KindUnauthorized
	// KindNetwork is a transport failure — no HTTP response at all.
	KindNetwork
	// KindServer is a 5xx response.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindUnauthorized:
		return "unauthorized"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// APIError is a classified failure from the backend. Message holds the
// server-provided text when there was one, so flows can surface it
// verbatim.
type APIError struct {
	Kind       Kind
	StatusCode int // 0 for network errors
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Kind, e.StatusCode, e.Message)
}

// ErrKind returns the Kind of err, or ok=false if err is not an APIError.
func ErrKind(err error) (Kind, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// IsUnauthorized reports whether err (or any wrapped error) is an
// authorization failure on an authenticated call.
func IsUnauthorized(err error) bool {
	k, ok := ErrKind(err)
	return ok && k == KindUnauthorized
}

// IsValidation reports whether err is a payload rejection.
func IsValidation(err error) bool {
	k, ok := ErrKind(err)
	return ok && k == KindValidation
}

// IsAuth reports whether err is a bad-credentials rejection.
func IsAuth(err error) bool {
	k, ok := ErrKind(err)
	return ok && k == KindAuth
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	k, ok := ErrKind(err)
	return ok && k == KindNetwork
}

// ServerMessage extracts the server-provided message from err, or ""
// when err carries none (network failures, non-API errors).
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
		return apiErr.Message
	}
	return ""
}
