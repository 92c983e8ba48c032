package fingerprint

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/devicekit/pkg/logger"
)

type fingerprintContextKey struct{}

// SetFingerprintToContext stores fp in ctx.
func SetFingerprintToContext(ctx context.Context, fp string) context.Context {
	return context.WithValue(ctx, fingerprintContextKey{}, fp)
}

// GetFingerprintFromContext returns the stored fingerprint or "".
func GetFingerprintFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	fp, _ := ctx.Value(fingerprintContextKey{}).(string)
	return fp
}

// LoggerExtractor adds the request fingerprint to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if fp := GetFingerprintFromContext(ctx); fp != "" {
			return logger.Fingerprint(fp), true
		}
		return slog.Attr{}, false
	}
}
