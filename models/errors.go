package models

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError blocks a submission and is shown inline.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// AuthError means the caller should be sent to the login flow.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

var ErrAuthRequired = &AuthError{Message: "Please login first"}

// NetworkError wraps a failed request. Message carries the server's own
// message when the response body had one.
type NetworkError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("request failed: %v", e.Err)
	default:
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UserMessage picks the text to show for err, falling back to generic.
func UserMessage(err error, generic string) string {
	var netErr *NetworkError
	if errors.As(err, &netErr) && netErr.Message != "" {
		return netErr.Message
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return generic
}
