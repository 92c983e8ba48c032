package deviceapi

import (
	"errors"
	"net/http"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidReport   = errors.New("invalid signals report")
)

// HTTPError carries the status and machine-readable code an error is
// rendered with.
type HTTPError struct {
	Status int
	Code   string
	Err    error
}

func (e HTTPError) Error() string { return e.Err.Error() }

func (e HTTPError) Unwrap() error { return e.Err }

// toHTTPError classifies err. Unknown errors become 500 internal_error and
// their message is not exposed.
func toHTTPError(err error) HTTPError {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, ErrSessionNotFound):
		return HTTPError{Status: http.StatusNotFound, Code: "session_not_found", Err: err}
	case errors.Is(err, ErrInvalidReport):
		return HTTPError{Status: http.StatusBadRequest, Code: "invalid_report", Err: err}
	default:
		return HTTPError{Status: http.StatusInternalServerError, Code: "internal_error", Err: errors.New(http.StatusText(http.StatusInternalServerError))}
	}
}
