// Package apierr carries the error taxonomy shared by services and the HTTP
// boundary. Services return *Error for domain failures; handlers map Status
// directly onto the response. Persistence failures are wrapped with Store so
// storage detail never reaches a client.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "not_found"
	CodeTypeMismatch = "type_mismatch"
	CodeValidation   = "validation_failure"
	CodeConflict     = "conflict"
	CodeStore        = "store_failure"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func TypeMismatch(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, CodeTypeMismatch, fmt.Errorf(format, args...))
}

func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusUnprocessableEntity, CodeValidation, fmt.Errorf(format, args...))
}

func Conflict(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, CodeConflict, fmt.Errorf(format, args...))
}

// Store wraps an underlying persistence error. The wrapped error is kept for
// logs; the client only ever sees the generic code.
func Store(err error) *Error {
	return New(http.StatusInternalServerError, CodeStore, err)
}

func code(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}

func IsNotFound(err error) bool     { return code(err) == CodeNotFound }
func IsTypeMismatch(err error) bool { return code(err) == CodeTypeMismatch }
func IsValidation(err error) bool   { return code(err) == CodeValidation }
func IsConflict(err error) bool     { return code(err) == CodeConflict }
func IsStore(err error) bool        { return code(err) == CodeStore }
