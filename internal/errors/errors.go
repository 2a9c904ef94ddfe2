package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is implemented by every typed failure the service returns.
// Handlers use Category and HTTPStatus to build the response.
type AppError interface {
	Error() string
	Category() string
	HTTPStatus() int
	Unwrap() error
}

// InvalidRequestError covers missing start/destinations and unknown locations or vehicles.
type InvalidRequestError struct {
	Msg string
}

func (e *InvalidRequestError) Error() string    { return fmt.Sprintf("invalid request: %s", e.Msg) }
func (e *InvalidRequestError) Category() string { return "INVALID_REQUEST" }
func (e *InvalidRequestError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *InvalidRequestError) Unwrap() error    { return nil }

func NewInvalidRequestError(format string, args ...any) AppError {
	return &InvalidRequestError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidGraphError reports a degenerate location set.
type InvalidGraphError struct {
	Msg string
}

func (e *InvalidGraphError) Error() string    { return fmt.Sprintf("invalid graph: %s", e.Msg) }
func (e *InvalidGraphError) Category() string { return "INVALID_GRAPH" }
func (e *InvalidGraphError) HTTPStatus() int  { return http.StatusUnprocessableEntity }
func (e *InvalidGraphError) Unwrap() error    { return nil }

func NewInvalidGraphError(format string, args ...any) AppError {
	return &InvalidGraphError{Msg: fmt.Sprintf(format, args...)}
}

type UnsupportedAlgorithmError struct {
	Algorithm string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported algorithm %q (want dijkstra, astar or genetic)", e.Algorithm)
}
func (e *UnsupportedAlgorithmError) Category() string { return "UNSUPPORTED_ALGORITHM" }
func (e *UnsupportedAlgorithmError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *UnsupportedAlgorithmError) Unwrap() error    { return nil }

func NewUnsupportedAlgorithmError(name string) AppError {
	return &UnsupportedAlgorithmError{Algorithm: name}
}

// InsufficientDataError is raised when a forecast has no history to work from.
// The forecaster turns it into a zero forecast; it never reaches a caller.
type InsufficientDataError struct {
	ItemID string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: item %q has no consumption history", e.ItemID)
}
func (e *InsufficientDataError) Category() string { return "INSUFFICIENT_DATA" }
func (e *InsufficientDataError) HTTPStatus() int  { return http.StatusUnprocessableEntity }
func (e *InsufficientDataError) Unwrap() error    { return nil }

type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("not found: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

func NewNotFoundError(format string, args ...any) AppError {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError reports a state change the current data cannot accept (stock going negative).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("conflict: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict }
func (e *ConflictError) Unwrap() error    { return nil }

func NewConflictError(format string, args ...any) AppError {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("internal error: %s", e.Msg)
	}
	return fmt.Sprintf("internal error: %s: %v", e.Msg, e.Err)
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// MapToHTTPStatus returns the status code, category and message for err.
// Wrapped AppErrors keep their category; anything else is an opaque 500.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
}

// Is reports whether err wraps an AppError with the given category.
func Is(err error, category string) bool {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.Category() == category
	}
	return false
}
