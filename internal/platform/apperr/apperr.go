// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the gateway's error vocabulary.

Every failure that reaches an HTTP handler is (or is converted into) an
[AppError]: a machine-readable code, a client-safe message and the status it
maps to. Two AppErrors are equal under [errors.Is] when their codes match, so
package-level sentinels keep their identity after [AppError.WithCause].

Downstream failures get their own codes. BAD_GATEWAY and GATEWAY_TIMEOUT mean
the news or comment service could not be used at all, while a rejection it
sent back (404, 403, 409, 400) is carried through with the matching client code.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Codes

const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeInternal       = "INTERNAL_ERROR"
	CodeBadGateway     = "BAD_GATEWAY"
	CodeGatewayTimeout = "GATEWAY_TIMEOUT"
)

// AppError carries everything needed to render a failed request.
//
// Cause is for server-side logs only. It never reaches the client.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an [*AppError] with the same Code.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && other != nil && e.Code == other.Code
}

// WithCause returns a copy carrying cause. Sentinels are shared and never mutated.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// New declares an error with an explicit code and status, typically a
// package-level sentinel:
//
//	var ErrDuplicateLogin = apperr.New("DUPLICATE_LOGIN", "Login already exists", http.StatusConflict)
func New(code, msg string, status int) *AppError {
	return &AppError{Code: code, Message: msg, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound reports a missing resource, e.g. NotFound("News") reads "News not found".
func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found", http.StatusNotFound)
}

func Unauthorized(msg string) *AppError {
	return New(CodeUnauthorized, msg, http.StatusUnauthorized)
}

func Forbidden(msg string) *AppError {
	return New(CodeForbidden, msg, http.StatusForbidden)
}

func Conflict(msg string) *AppError {
	return New(CodeConflict, msg, http.StatusConflict)
}

// ValidationError is a 400 with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	err := New(CodeValidation, msg, http.StatusBadRequest)
	err.Details = details
	return err
}

// # Server Errors (5xx)

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return New(CodeInternal, "An unexpected error occurred", http.StatusInternalServerError).WithCause(cause)
}

// BadGateway reports a downstream service that was unreachable or answered
// with something unusable.
func BadGateway(service string, cause error) *AppError {
	return New(CodeBadGateway, service+" service is unavailable", http.StatusBadGateway).WithCause(cause)
}

// GatewayTimeout reports a downstream call that ran past its deadline.
func GatewayTimeout(service string, cause error) *AppError {
	return New(CodeGatewayTimeout, service+" service did not respond in time", http.StatusGatewayTimeout).WithCause(cause)
}

// # Helpers

// IsAppError reports whether err's chain contains an [*AppError].
func IsAppError(err error) bool {
	return As(err) != nil
}

// As extracts the first [*AppError] from err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// Normalize returns err as an [*AppError], treating anything unrecognized as internal.
func Normalize(err error) *AppError {
	if appError := As(err); appError != nil {
		return appError
	}
	return Internal(err)
}
