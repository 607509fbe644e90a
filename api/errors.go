// ABOUTME: Error types returned by the REST client
// ABOUTME: Separates missing credentials and HTTP status failures from transport errors
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoToken means no bearer token is stored. No request was sent.
var ErrNoToken = errors.New("no token found")

// HTTPError is a non-2xx response from the backend.
type HTTPError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
	RequestID  string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized
}

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
