package utils

import (
	"errors"
	"net/http"
)

// ErrorKind classifies an AppError for status mapping and logging.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindExtraction ErrorKind = "extraction"
	KindUpstream   ErrorKind = "upstream"
	KindInternal   ErrorKind = "internal"
)

// AppError is an error with a client-safe message. Err holds the internal
// cause, which is logged but never written to the client.
type AppError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Kind: KindValidation, StatusCode: http.StatusBadRequest, Message: message}
}

func NewExtractionError(message string, err error) *AppError {
	return &AppError{Kind: KindExtraction, StatusCode: http.StatusInternalServerError, Message: message, Err: err}
}

func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Kind: KindUpstream, StatusCode: http.StatusInternalServerError, Message: message, Err: err}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, StatusCode: http.StatusInternalServerError, Message: message, Err: err}
}

// IsKind reports whether err is, or wraps, an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
