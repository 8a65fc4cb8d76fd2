package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// APIError is returned when the backend answers with a non-2xx status.
// The response body is not inspected.
type APIError struct {
	// Prefix is "API Error" or "Upload Error".
	Prefix     string
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Prefix, e.Status)
}

// TransportError is returned when the request could not complete
// (DNS failure, refused connection, cancelled context).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Network error: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a successful response body is not valid JSON
// for the expected type.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// statusText returns the reason phrase of a response status line.
// "500 Internal Server Error" becomes "Internal Server Error".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
