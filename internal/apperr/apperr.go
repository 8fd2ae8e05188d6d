// Package apperr classifies component-level failures so the HTTP boundary
// can map them to status codes without inspecting error strings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind is the failure classification.
type Kind int

const (
	// Internal is the default for unclassified failures.
	Internal Kind = iota
	// Validation marks malformed input.
	Validation
	// Unauthenticated marks a missing or invalid token, or bad credentials.
	Unauthenticated
	// Forbidden marks an authenticated caller lacking authorization.
	Forbidden
	// NotFound marks a lookup miss.
	NotFound
	// Conflict marks a duplicate unique key.
	Conflict
	// Corrupt marks an invariant violation in persisted data.
	Corrupt
)

// Error carries a classification, a caller-facing message and an optional
// wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a classified error around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the classification; unclassified errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Status maps a classification to its HTTP status code. Forbidden maps to
// 403; a failed authorisation-gate check answers 401 from the middleware
// itself.
func Status(err error) int {
	switch KindOf(err) {
	case Validation:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the error as the standard body shape. Corrupt and Internal
// details are not leaked to the caller.
func Respond(c *gin.Context, err error) {
	status := Status(err)
	message := "Internal server error"
	if status != http.StatusInternalServerError {
		var e *Error
		if errors.As(err, &e) {
			message = e.Message
		}
	}
	c.JSON(status, gin.H{"error": message})
}
