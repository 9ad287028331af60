package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrFetch matches every error that means a page could not be retrieved.
	ErrFetch = errors.New("fetch failed")

	// ErrInvalidProxyAddress is returned when the proxy address is not host:port.
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")
)

// Error wraps a transport-level failure (DNS, connection, TLS, timeout).
type Error struct {
	// URL is the requested URL.
	URL string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes the error match ErrFetch.
func (e *Error) Is(target error) bool {
	return target == ErrFetch
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	// URL is the requested URL.
	URL string

	// StatusCode is the HTTP status the server returned.
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is makes the error match ErrFetch.
func (e *StatusError) Is(target error) bool {
	return target == ErrFetch
}
