// Package deviceapi exposes device descriptors and session events over
// HTTP.
//
// A client agent posts the signals it can read to POST /v1/sessions and gets
// back a session ID and its first descriptor. The session keeps one
// fingerprint for its lifetime; later reports (PUT /v1/sessions/{id}/signals)
// update orientation, viewport and the like. GET /v1/sessions/{id}/events
// streams the session's events as server-sent events. GET /v1/device-info
// describes the caller from request headers without creating a session.
//
// JSON bodies use the envelope {"data": ...} or
// {"error": {"code": ..., "message": ...}}. Unknown sessions are 404
// session_not_found; malformed reports are 400 invalid_report.
package deviceapi
