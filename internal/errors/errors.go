// Package errors provides coded domain errors shared by the store, the services
// and the HTTP layer.
//
// Services return typed errors:
//
//	if followerID == followeeID {
//	    return errors.SelfFollow("cannot follow yourself")
//	}
//
// Callers match on the sentinel, which compares by code:
//
//	if errors.Is(err, errors.ErrDuplicateRelation) {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-exported standard library helpers.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
	New    = errors.New
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeValidation          Code = "VALIDATION"
	CodeConstraintViolation Code = "CONSTRAINT_VIOLATION"
	CodeDuplicateRelation   Code = "DUPLICATE_RELATION"
	CodeSelfFollow          Code = "SELF_FOLLOW"
	CodePermission          Code = "PERMISSION_DENIED"
	CodeNotFound            Code = "NOT_FOUND"
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeInternal            Code = "INTERNAL"
)

// HTTPStatus returns the HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation, CodeDuplicateRelation, CodeSelfFollow:
		return http.StatusBadRequest
	case CodeConstraintViolation:
		return http.StatusConflict
	case CodePermission:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a copy of the error carrying details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details, cause: e.cause}
}

// WithCause returns a copy of the error wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

// Sentinel errors for use with errors.Is().
var (
	ErrValidation          = &Error{Code: CodeValidation, Message: "validation error"}
	ErrConstraintViolation = &Error{Code: CodeConstraintViolation, Message: "constraint violation"}
	ErrDuplicateRelation   = &Error{Code: CodeDuplicateRelation, Message: "relation already exists"}
	ErrSelfFollow          = &Error{Code: CodeSelfFollow, Message: "cannot follow yourself"}
	ErrPermission          = &Error{Code: CodePermission, Message: "permission denied"}
	ErrNotFound            = &Error{Code: CodeNotFound, Message: "not found"}
	ErrUnauthorized        = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrInternal            = &Error{Code: CodeInternal, Message: "internal error"}
)

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ConstraintViolation creates an error naming the violated storage rule.
func ConstraintViolation(rule string, cause error) *Error {
	return &Error{
		Code:    CodeConstraintViolation,
		Message: "constraint violation: " + rule,
		Details: map[string]string{"rule": rule},
		cause:   cause,
	}
}

// DuplicateRelation creates a duplicate membership error.
func DuplicateRelation(msg string) *Error {
	return &Error{Code: CodeDuplicateRelation, Message: msg}
}

// SelfFollow creates a self-follow error.
func SelfFollow(msg string) *Error {
	return &Error{Code: CodeSelfFollow, Message: msg}
}

// Permission creates a permission error.
func Permission(msg string) *Error {
	return &Error{Code: CodePermission, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Internal wraps an unexpected error.
func Internal(msg string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: msg, cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
