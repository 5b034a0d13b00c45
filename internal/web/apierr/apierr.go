// Package apierr maps service errors onto the API's JSON error contract.
package apierr

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"
)

// Kind classifies an API failure and decides its default HTTP status code.
type Kind int

const (
	KindServer Kind = iota
	KindValidation
	KindUnauthenticated
	KindInvalidCredential
	KindAccountUnavailable
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated, KindAccountUnavailable:
		return http.StatusUnauthorized
	case KindInvalidCredential, KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is an API-visible failure with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	// Status overrides the kind's default code for the handful of routes
	// whose historical contract disagrees with the taxonomy.
	Status int
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New builds an Error of the given kind with a client-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithStatus overrides the HTTP status code.
func (e *Error) WithStatus(status int) *Error {
	e.Status = status
	return e
}

// Wrap attaches an internal cause. The cause is logged and, for server
// errors, surfaced in the response body (historical contract).
func Wrap(cause error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Abort renders err as the API's JSON error shape and stops the chain.
// Unrecognized errors become 500s whose body embeds the raw error message.
func Abort(c *gin.Context, err error) {
	apiErr := new(Error)
	if !errors.As(err, &apiErr) {
		apiErr = &Error{Kind: KindServer, Message: err.Error()}
	}

	status := apiErr.Status
	if status == 0 {
		status = apiErr.Kind.status()
	}

	message := apiErr.Message
	if apiErr.Kind == KindServer && apiErr.cause != nil {
		message = apiErr.cause.Error()
	}

	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
