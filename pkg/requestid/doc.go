// Package requestid correlates log records of one HTTP request.
//
// Middleware assigns the ID and LoggerExtractor feeds it to
// logger.WithContextExtractors. Invalid client IDs are replaced, never
// rejected.
package requestid
