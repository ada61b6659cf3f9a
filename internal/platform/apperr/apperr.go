// Copyright (c) 2026 Nevisa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error type that crosses the service/HTTP boundary.

Architecture:

  - AppError: Machine-readable Code, client-safe Message and the HTTP status it maps to.
  - Cause: The wrapped internal error, logged but never serialised.
  - Details: Per-field messages for validation failures.

Services return [AppError] values for anything the client should see. Anything
else reaching the HTTP layer is reported as INTERNAL_ERROR.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeConflict           = "CONFLICT"
	CodeValidation         = "VALIDATION_ERROR"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError is the canonical error type of the Nevisa API.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface with the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap exposes Cause to [errors.Is] and [errors.As].
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause returns a copy of e that wraps cause.
func (e *AppError) WithCause(cause error) *AppError {
	copied := *e
	copied.Cause = cause
	return &copied
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource, e.g. NotFound("Series").
func NotFound(resource string) *AppError {
	return newError(CodeNotFound, resource+" not found", http.StatusNotFound)
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return newError(CodeUnauthorized, msg, http.StatusUnauthorized)
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return newError(CodeForbidden, msg, http.StatusForbidden)
}

// Conflict creates a 409 [AppError] for unique-constraint violations.
func Conflict(msg string) *AppError {
	return newError(CodeConflict, msg, http.StatusConflict)
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	err := newError(CodeValidation, msg, http.StatusBadRequest)
	err.Details = details
	return err
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return newError(CodeRateLimited, fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds), http.StatusTooManyRequests)
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError]. The cause is logged, never returned.
func Internal(cause error) *AppError {
	err := newError(CodeInternal, "An unexpected error occurred", http.StatusInternalServerError)
	err.Cause = cause
	return err
}

// ServiceUnavailable creates a 503 [AppError], used by the readiness probe.
func ServiceUnavailable(msg string) *AppError {
	return newError(CodeServiceUnavailable, msg, http.StatusServiceUnavailable)
}

// # Helpers

// As extracts the [*AppError] from err's chain, or nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

func newError(code, msg string, status int) *AppError {
	return &AppError{Code: code, Message: msg, HTTPStatus: status}
}
