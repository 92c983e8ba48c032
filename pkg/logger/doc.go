// Package logger builds the service's *slog.Logger and names the attributes
// devicekit logs with.
//
// New takes functional options; WithEnvironment picks the per-environment
// format and level, and WithContextExtractors injects request-scoped values
// (request ID, environment, device fingerprint) at Handle time:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "devicekit"),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			fingerprint.LoggerExtractor(),
//		),
//	)
//	log.InfoContext(ctx, "device info assembled",
//		logger.Component("device"),
//		logger.DeviceType("mobile"),
//	)
//
// Error and Fingerprint return an empty attribute for empty input, which
// slog drops, so callers need no nil checks.
package logger
