package marketdata

import (
	"errors"
	"fmt"
)

// NetworkError means the request could not be sent or no response arrived.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("dashboard request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError is a response with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dashboard API error: %s - %s", e.Status, e.Body)
}

// ParseError means the body was not a usable DashboardData document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to decode dashboard data: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind classifies an error returned by Client for metrics and logs.
func Kind(err error) string {
	var statusErr *StatusError
	var parseErr *ParseError
	var netErr *NetworkError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &statusErr):
		return "http_error"
	case errors.As(err, &parseErr):
		return "parse_error"
	case errors.As(err, &netErr):
		return "network_error"
	default:
		return "error"
	}
}

// Message turns any fetch error into the text shown on the dashboard.
// Only the status variant carries detail; the others stay generic.
func Message(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("HTTP error! status: %d", statusErr.StatusCode)
	}
	return "載入數據失敗"
}
