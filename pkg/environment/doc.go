// Package environment names the deployment a devicekit instance runs in and
// carries it through request contexts and log records.
//
// Parse normalises APP_ENV style values, including the short aliases:
//
//	env := environment.Parse(os.Getenv("APP_ENV")) // "prod" -> Production
//
// Middleware stores the value on every request and LoggerExtractor exposes
// it to logger.WithContextExtractors.
package environment
