package errors

import (
	"errors"
	"net/http"
)

// Error kinds returned by the service layer. Handlers map them to HTTP status
// codes with HTTPStatusFromError; services wrap them with fmt.Errorf("...: %w", kind)
// so callers can classify with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation error")
	ErrInternal     = errors.New("internal server error")

	// ErrConditionFailed is returned by stores when a conditional write loses a
	// race. It never leaves the service layer: services re-read the row and
	// re-classify into ErrInvalidState or ErrConflict.
	ErrConditionFailed = errors.New("conditional write failed")
)

func HTTPStatusFromError(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
