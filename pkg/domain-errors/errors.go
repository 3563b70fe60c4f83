// Package domainerrors provides coded errors for the service layer.
//
// Services wrap infrastructure failures and validation problems into a
// DomainError carrying a stable machine-readable code. The HTTP layer maps
// codes to statuses; callers branch on codes with HasCode rather than on
// message text.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the failure class. Codes are part of the API contract.
type Code string

const (
	// CodeValidation: input outside its allowed domain (range, format, size).
	CodeValidation Code = "validation_error"
	// CodeBadRequest: structurally broken request (missing body, bad JSON).
	CodeBadRequest Code = "bad_request"
	// CodeUnauthorized: no authenticated caller.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden: caller authenticated but not permitted (not founder,
	// not an active member, not the dimension authority).
	CodeForbidden Code = "forbidden"
	// CodeNotFound: referenced record does not exist.
	CodeNotFound Code = "not_found"
	// CodeConflict: record already exists (duplicate vote, double claim).
	CodeConflict Code = "conflict"
	// CodeInvalidState: record exists but its lifecycle forbids the
	// operation (market not open, nomination resolved, voting window).
	CodeInvalidState Code = "invalid_state"
	// CodeCapacity: a hard ceiling was hit (max pending nominations).
	CodeCapacity Code = "capacity_exceeded"
	// CodeInternal: unexpected infrastructure failure.
	CodeInternal Code = "internal_error"
)

// DomainError is an error with a classification code. The wrapped cause (if
// any) is preserved for errors.Is / errors.As.
type DomainError struct {
	Code    Code
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.cause
}

// New creates a DomainError with no underlying cause.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// Newf creates a DomainError with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates an existing error with a code and message. A nil err yields
// nil so call sites can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &DomainError{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not come through this package.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the human-readable message, empty for foreign errors.
func MessageOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// ToHTTPStatus maps a code to its HTTP response status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInvalidState:
		return http.StatusConflict
	case CodeCapacity:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
