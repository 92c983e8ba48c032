package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// SessionID records the client session identifier under the key "session_id".
// If id is nil, it returns an empty Attr.
func SessionID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("session_id", id)
}

// Fingerprint records a device fingerprint under the key "fingerprint".
// If fp is empty, it returns an empty Attr.
func Fingerprint(fp string) slog.Attr {
	if fp == "" {
		return slog.Attr{}
	}
	return slog.String("fingerprint", fp)
}

// DeviceType records the device form factor under the key "device_type".
func DeviceType(t string) slog.Attr {
	return slog.String("device_type", t)
}

// Client records a short client label under the key "client".
func Client(label string) slog.Attr {
	return slog.String("client", label)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
