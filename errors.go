package operalink

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// LinkError is the error the client returns for any request the server
// rejected, carrying the HTTP status it was rejected with. Transport-level
// failures are reported as a synthetic 503 wrapping the underlying cause.
type LinkError struct {
	StatusCode int
	Reason     string
	Content    string

	cause error
}

// Sentinel errors for the statuses the Link API uses deliberately. Match
// with errors.Is; any other status compares only against a LinkError with
// the same code.
var (
	ErrBadRequest   = &LinkError{StatusCode: http.StatusBadRequest, Reason: "bad request"}
	ErrAccessDenied = &LinkError{StatusCode: http.StatusUnauthorized, Reason: "unauthorized access"}
	ErrNotFound     = &LinkError{StatusCode: http.StatusNotFound, Reason: "not found"}
)

func (e *LinkError) Error() string {
	msg := fmt.Sprintf("link server returned %d (%s)", e.StatusCode, e.Reason)
	if e.Content != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Content)
	}
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.cause.Error())
	}
	return msg
}

func (e *LinkError) Is(target error) bool {
	le, ok := target.(*LinkError)
	return ok && le.StatusCode == e.StatusCode
}

func (e *LinkError) Unwrap() error { return e.cause }

// NewLinkError maps a response status to the error taxonomy. Statuses
// without a dedicated kind become a plain LinkError carrying the reason and
// body the server sent.
func NewLinkError(statusCode int, reason, content string) *LinkError {
	switch statusCode {
	case http.StatusBadRequest:
		return &LinkError{StatusCode: statusCode, Reason: ErrBadRequest.Reason, Content: content}
	case http.StatusUnauthorized:
		return &LinkError{StatusCode: statusCode, Reason: ErrAccessDenied.Reason, Content: content}
	case http.StatusNotFound:
		return &LinkError{StatusCode: statusCode, Reason: ErrNotFound.Reason, Content: content}
	default:
		return &LinkError{StatusCode: statusCode, Reason: reason, Content: content}
	}
}

// NewServiceUnavailableError wraps a transport-level failure (connection
// refused, timeout) as a 503 so callers see one error shape everywhere.
func NewServiceUnavailableError(cause error) *LinkError {
	return &LinkError{
		StatusCode: http.StatusServiceUnavailable,
		Reason:     "service unavailable",
		cause:      cause,
	}
}

func IsBadRequest(err error) bool   { return errors.Is(errors.Cause(err), ErrBadRequest) }
func IsAccessDenied(err error) bool { return errors.Is(errors.Cause(err), ErrAccessDenied) }
func IsNotFound(err error) bool     { return errors.Is(errors.Cause(err), ErrNotFound) }

// IsServiceError reports whether err is a server or transport failure
// outside the named 400/401/404 kinds.
func IsServiceError(err error) bool {
	var le *LinkError
	if !errors.As(errors.Cause(err), &le) {
		return false
	}
	switch le.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound:
		return false
	default:
		return true
	}
}
