package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable machine-readable codes clients branch on.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeDuplicate  = "DUPLICATE"
	CodeSaveFailed = "SAVE_FAILED"
)

// Error is the tagged outcome of a failed operation. Exactly one error
// travels per failed request; Fields carries per-field validation messages.
type Error struct {
	Status int
	Code   string
	Err    error
	Fields map[string][]string
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
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(fields map[string][]string) *Error {
	return &Error{
		Status: http.StatusBadRequest,
		Code:   CodeValidation,
		Err:    errors.New("validation failed"),
		Fields: fields,
	}
}

func NotFound(resource, key string) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf("%s %q not found", resource, key))
}

func Duplicate(resource, key string) *Error {
	return New(http.StatusConflict, CodeDuplicate, fmt.Errorf("%s %q already exists", resource, key))
}

// Dependency signals a delete blocked by dependent children. The code is
// dependency-specific ("HAS_BRANCHES", "HAS_EMPLOYEES") so callers can show
// a precise message.
func Dependency(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

func Save(err error) *Error {
	return New(http.StatusInternalServerError, CodeSaveFailed, err)
}

// From extracts the tagged error from any error chain; persistence failures
// that were never tagged come back as SAVE_FAILED.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Save(err)
}
