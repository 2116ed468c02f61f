package notion

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-notion-client/internal/transport"
)

// APIError is the base of the error taxonomy and the catch-all kind for
// any non-2xx status without a more specific type. Every API-originated
// error unwraps to an *APIError, so callers can always recover the status
// code and parsed error body:
//
//	var apiErr *notion.APIError
//	if errors.As(err, &apiErr) {
//		log.Println(apiErr.StatusCode, apiErr.Body)
//	}
type APIError struct {
	Message    string
	StatusCode int
	Body       map[string]any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status code: %d)", e.Message, e.StatusCode)
}

// AuthenticationError reports a 401 response.
type AuthenticationError struct{ APIError }

// Unwrap exposes the embedded APIError to errors.As.
func (e *AuthenticationError) Unwrap() error { return &e.APIError }

// ValidationError reports a 400 response, or a request the client
// rejected before sending it.
type ValidationError struct{ APIError }

// Unwrap exposes the embedded APIError to errors.As.
func (e *ValidationError) Unwrap() error { return &e.APIError }

// RateLimitError reports a 429 response that survived the retry budget.
type RateLimitError struct{ APIError }

// Unwrap exposes the embedded APIError to errors.As.
func (e *RateLimitError) Unwrap() error { return &e.APIError }

// NotFoundError reports a 404 response.
type NotFoundError struct{ APIError }

// Unwrap exposes the embedded APIError to errors.As.
func (e *NotFoundError) Unwrap() error { return &e.APIError }

// ConflictError reports a 409 response.
type ConflictError struct{ APIError }

// Unwrap exposes the embedded APIError to errors.As.
func (e *ConflictError) Unwrap() error { return &e.APIError }

// TimeoutError reports a request that timed out before any HTTP status
// was obtained, after the transport's retry budget was spent.
type TimeoutError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TimeoutError) Error() string { return e.Message }

// Unwrap returns the underlying transport error.
func (e *TimeoutError) Unwrap() error { return e.Err }

// ConnectionError reports a transport-level failure (DNS, refused or
// reset connection) after the retry budget was spent.
type ConnectionError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string { return e.Message }

// Unwrap returns the underlying transport error.
func (e *ConnectionError) Unwrap() error { return e.Err }

// Classification helpers.

// IsAuthentication reports whether err is an AuthenticationError.
func IsAuthentication(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsRateLimited reports whether err is a RateLimitError.
func IsRateLimited(err error) bool {
	var target *RateLimitError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsTimeout reports whether err is a TimeoutError.
func IsTimeout(err error) bool {
	var target *TimeoutError
	return errors.As(err, &target)
}

// IsConnection reports whether err is a ConnectionError.
func IsConnection(err error) bool {
	var target *ConnectionError
	return errors.As(err, &target)
}

// errorFromResponse maps a non-2xx response to the error taxonomy. The
// error body is parsed when possible; an unparseable body degrades to the
// raw text with code "unknown".
func errorFromResponse(resp *transport.Response) error {
	var body map[string]any
	message := "unknown error"
	code := "unknown"

	if err := json.Unmarshal(resp.Body, &body); err == nil {
		if m, ok := body["message"].(string); ok && m != "" {
			message = m
		}
		if c, ok := body["code"].(string); ok && c != "" {
			code = c
		}
	} else {
		body = map[string]any{}
		if len(resp.Body) > 0 {
			message = string(resp.Body)
		}
	}

	base := func(prefix string) APIError {
		return APIError{
			Message:    prefix + ": " + message,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &AuthenticationError{base("authentication failed")}
	case http.StatusBadRequest:
		return &ValidationError{base("validation error")}
	case http.StatusTooManyRequests:
		return &RateLimitError{base("rate limit exceeded")}
	case http.StatusNotFound:
		return &NotFoundError{base("resource not found")}
	case http.StatusConflict:
		return &ConflictError{base("conflict")}
	default:
		return &APIError{
			Message:    fmt.Sprintf("api error (%s): %s", code, message),
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}
}

// newValidationError builds a client-side validation failure, raised
// before any request is sent.
func newValidationError(message string) error {
	return &ValidationError{APIError{Message: message}}
}
