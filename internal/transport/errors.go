package transport

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	// KindNetwork means no response was received at all.
	KindNetwork ErrorKind = "network"
	// KindAuth is an HTTP 401; it forces a logout.
	KindAuth ErrorKind = "auth"
	// KindValidation covers 4xx other than 401.
	KindValidation ErrorKind = "validation"
	// KindServer covers 5xx.
	KindServer ErrorKind = "server"
)

// APIError is the classified form every failed call surfaces. Message is
// always suitable for direct display; nothing propagates unclassified.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	cause   error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.cause }

func networkError(err error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: "Network error. Please check your connection and try again.",
		cause:   err,
	}
}

// classifyStatus maps a non-2xx response to the fixed human-readable
// messages the client shows inline.
func classifyStatus(status int) *APIError {
	kind := KindValidation
	switch {
	case status == http.StatusUnauthorized:
		kind = KindAuth
	case status >= 500:
		kind = KindServer
	}

	var msg string
	switch status {
	case http.StatusBadRequest:
		msg = "Please check your input and try again."
	case http.StatusUnauthorized:
		msg = "Invalid email or password. Please check your credentials and try again."
	case http.StatusForbidden:
		msg = "You do not have permission to perform this action."
	case http.StatusNotFound:
		msg = "The requested resource could not be found."
	case http.StatusConflict:
		msg = "This resource already exists. Please try a different option."
	case http.StatusUnprocessableEntity:
		msg = "Please check your input and ensure all required fields are filled correctly."
	case http.StatusInternalServerError:
		msg = "Server error. Please try again later."
	case http.StatusServiceUnavailable:
		msg = "Service temporarily unavailable. Please try again later."
	default:
		msg = "An error occurred. Please try again."
	}

	return &APIError{Kind: kind, Status: status, Message: msg}
}

// Humanize returns a display string for any error coming out of the client.
func Humanize(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "An unexpected error occurred. Please try again."
}

func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuth
}

func IsNetworkError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}

func IsValidationError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindValidation
}
