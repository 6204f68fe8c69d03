package apierr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mcoot/qrclock-gateway/internal/services/auth"
	"github.com/mcoot/qrclock-gateway/internal/storage"
)

// Kind classifies a failure
type Kind string

// Error kinds
const (
	KindValidation       Kind = "validation"
	KindAuthentication   Kind = "authentication"
	KindNotFound         Kind = "not_found"
	KindMethodNotAllowed Kind = "method_not_allowed"
	KindStore            Kind = "store"
	KindUnhandled        Kind = "unhandled"
)

// User-facing messages
const (
	MsgCredentialsRequired = "Username and password are required"
	MsgPINRequired         = "Admin ID and PIN are required"
	MsgInvalidBody         = "Invalid request body"
	MsgInvalidCredentials  = "Invalid username or password"
	MsgInvalidPIN          = "Invalid PIN"
	MsgDatabaseError       = "Database error"
	MsgConnectionFailed    = "Database connection failed"
	MsgEndpointNotFound    = "Endpoint not found"
	MsgUnhandled           = "An error occurred while processing your request"
)

// AllowedMethods is advertised in the Allow header of 405 responses
var AllowedMethods = []string{http.MethodPost, http.MethodGet, http.MethodPut, http.MethodDelete}

// Error is a classified failure with the HTTP status it maps to
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

// Error implements error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Detail returns the cause's message for operators, or "" if there is none.
// For store failures this is the store's own message.
func (e *Error) Detail() string {
	var se *storage.StoreError
	if errors.As(e.Err, &se) {
		return se.Message()
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

// NewValidationError creates a 400 error
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}

// NewAuthenticationError creates a 401 error
func NewAuthenticationError(message string) *Error {
	return &Error{Kind: KindAuthentication, Status: http.StatusUnauthorized, Message: message}
}

// NewNotFoundError creates a 404 error for unmatched routes
func NewNotFoundError() *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: MsgEndpointNotFound}
}

// NewMethodNotAllowedError creates a 405 error for method
func NewMethodNotAllowedError(method string) *Error {
	return &Error{
		Kind:    KindMethodNotAllowed,
		Status:  http.StatusMethodNotAllowed,
		Message: "Method " + method + " Not Allowed",
	}
}

// NewStoreError creates a 500 error for a credential store failure
func NewStoreError(message string, err error) *Error {
	return &Error{Kind: KindStore, Status: http.StatusInternalServerError, Message: message, Err: err}
}

// NewUnhandledError creates a 500 error for anything no handler anticipated
func NewUnhandledError(err error) *Error {
	return &Error{Kind: KindUnhandled, Status: http.StatusInternalServerError, Message: MsgUnhandled, Err: err}
}

// Classify maps an error from the auth service or a store onto the taxonomy.
// storeMessage is the user-facing message used for store failures.
func Classify(err error, storeMessage string) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	var se *storage.StoreError
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return NewAuthenticationError(MsgInvalidCredentials)
	case errors.Is(err, auth.ErrInvalidPIN):
		return NewAuthenticationError(MsgInvalidPIN)
	case errors.As(err, &se):
		return NewStoreError(storeMessage, err)
	default:
		return NewUnhandledError(err)
	}
}

// AllowHeader returns the Allow header value for 405 responses
func AllowHeader() string {
	return strings.Join(AllowedMethods, ", ")
}
