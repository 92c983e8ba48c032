package deviceapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/devicekit/pkg/logger"
)

// Response renders itself to a ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Envelope is the body of every JSON response.
type Envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type jsonResponse struct {
	status int
	body   Envelope
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON wraps v in the data envelope.
func JSON(status int, v any) Response {
	return jsonResponse{status: status, body: Envelope{Data: v}}
}

// JSONError renders err with the status and code toHTTPError assigns.
func JSONError(err error) Response {
	he := toHTTPError(err)
	return jsonResponse{
		status: he.Status,
		body:   Envelope{Error: &ErrorDetail{Code: he.Code, Message: he.Error()}},
	}
}

type emptyResponse struct{ status int }

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// NoContent renders 204 with no body.
func NoContent() Response { return emptyResponse{status: http.StatusNoContent} }

// handle adapts fn to http.HandlerFunc, logging render failures.
func handle(log *slog.Logger, fn func(r *http.Request) Response) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := fn(r)
		if resp == nil {
			return
		}
		if err := resp.Render(w, r); err != nil {
			log.ErrorContext(r.Context(), "failed to render response",
				logger.Component("deviceapi"),
				logger.Error(err),
			)
		}
	}
}
