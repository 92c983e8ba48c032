// Package fingerprint derives a session-stable pseudo-identity from client
// signals.
//
// The input string concatenates a rendering probe (ProbeText drawn twice on
// an offscreen surface and serialized to a data URL) with the user agent,
// language, screen size, color depth, timezone offset, platform, cookie
// flag and hardware concurrency. Hash folds it with a 32-bit rolling hash
// and Format renders the absolute value in base 36:
//
//	device_1x2k9f
//
// The value is deterministic for identical inputs. It is not
// cryptographically secure, not collision-free and may change when the
// client updates its browser or graphics stack.
//
// # Memoization
//
// A Generator computes the fingerprint once, on first use, and returns the
// cached value afterwards. Each client session owns its own Generator:
//
//	gen := fingerprint.NewGenerator(source)
//	fp := gen.Fingerprint()
//
// # HTTP
//
// FromRequest fingerprints request headers (client hints included) and
// Middleware stores the result in the request context:
//
//	http.Handle("/", fingerprint.Middleware(handler))
//	fp := fingerprint.GetFingerprintFromContext(r.Context())
//
// LoggerExtractor plugs the context value into the logger.
//
// # Error Handling
//
// Only Probe returns errors (ErrNoCanvas, ErrProbe). Compose treats a probe
// failure as a missing signal and leaves it out.
package fingerprint
