package deviceapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/devicekit/pkg/logger"
)

// recoverer turns a handler panic into a 500 JSON error and logs the stack.
func (a *API) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			a.logger.ErrorContext(r.Context(), "panic recovered",
				logger.Component("deviceapi"),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
			_ = JSONError(fmt.Errorf("panic: %v", rec)).Render(w, r)
		}()
		next.ServeHTTP(w, r)
	})
}

// logRequests logs every finished request. Health probes log at debug level.
func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		level := slog.LevelInfo
		if r.URL.Path == "/health" {
			level = slog.LevelDebug
		}
		a.logger.Log(r.Context(), level, "http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			logger.Duration(time.Since(start)),
		)
	})
}
