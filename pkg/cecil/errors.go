package cecil

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors surfaced through errors.Is. APIError unwraps to these for
// the matching status codes.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrNotFound       = errors.New("resource not found")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	RequestID  string
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s (request_id=%s)",
		e.Method, e.Path, e.StatusCode, msg, e.RequestID)
}

// Unwrap maps authentication and missing-resource statuses to their
// sentinels so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthentication
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// RequestError is a failure on the SDK side of a call: bad input, request
// encoding, or transport failure. The response never arrived or was never
// sent.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError is a response that arrived with a 2xx status but whose body
// could not be decoded into a valid model.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
