package fingerprint

import (
	"net/http"

	"github.com/dmitrymomot/devicekit/pkg/signals"
)

// FromRequest fingerprints the signals a request exposes through its
// headers. Requests carry no drawable, so the probe is always omitted.
func FromRequest(r *http.Request) string {
	return Generate(signals.Read(signals.FromRequest(r)))
}

// Middleware stores the request fingerprint in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := SetFingerprintToContext(r.Context(), FromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
